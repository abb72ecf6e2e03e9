package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recsync/internal/domain"
	shoprepo "recsync/internal/repository/shop"
)

type ctxKey string

const shopCtxKey ctxKey = "shop"

// shopMiddleware resolves the shop a request targets from the __shop query
// parameter, falling back to the configured default shop.
func shopMiddleware(repo shoprepo.Repository, defaultShopID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID := defaultShopID
		if raw := c.Query("__shop"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid __shop parameter"})
				return
			}
			shopID = id
		}

		shop, err := repo.GetByID(c.Request.Context(), shopID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "shop not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "shop lookup failed"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), shopCtxKey, shop)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func shopFromContext(c *gin.Context) (*domain.Shop, bool) {
	shop, ok := c.Request.Context().Value(shopCtxKey).(*domain.Shop)
	return shop, ok
}

func productsHandler(svc ExportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, ok := shopFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no shop in context"})
			return
		}

		products, err := svc.ExportProducts(c.Request.Context(), shop.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func productHandler(svc ExportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, ok := shopFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no shop in context"})
			return
		}

		articleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
			return
		}

		product, err := svc.ExportProduct(c.Request.Context(), shop.ID, articleID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func orderHandler(svc ExportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ExportOrder(c.Request.Context(), c.Param("number"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"purchasedItems": items})
	}
}
