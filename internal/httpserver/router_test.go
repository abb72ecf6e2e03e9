package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"recsync/internal/domain"
	"recsync/internal/export"
)

type stubShopRepo struct {
	shop   *domain.Shop
	err    error
	lastID int64
}

func (s *stubShopRepo) GetByID(_ context.Context, id int64) (*domain.Shop, error) {
	s.lastID = id
	return s.shop, s.err
}

type stubExportService struct {
	products []*export.Product
	product  *export.Product
	items    []*export.LineItem
	err      error
}

func (s *stubExportService) ExportProducts(_ context.Context, _ int64) ([]*export.Product, error) {
	return s.products, s.err
}

func (s *stubExportService) ExportProduct(_ context.Context, _, _ int64) (*export.Product, error) {
	return s.product, s.err
}

func (s *stubExportService) ExportOrder(_ context.Context, _ string) ([]*export.LineItem, error) {
	return s.items, s.err
}

func TestShopMiddleware_DefaultShop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &stubShopRepo{shop: &domain.Shop{ID: 1, Host: "shop.example.com"}}
	router := gin.New()
	router.Use(shopMiddleware(repo, 1))
	router.GET("/test", func(c *gin.Context) {
		shop, ok := shopFromContext(c)
		if !ok || shop.ID != 1 {
			t.Fatalf("expected shop 1 in context")
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if repo.lastID != 1 {
		t.Fatalf("expected default shop id lookup, got %d", repo.lastID)
	}
}

func TestShopMiddleware_ShopParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &stubShopRepo{shop: &domain.Shop{ID: 4}}
	router := gin.New()
	router.Use(shopMiddleware(repo, 1))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test?__shop=4", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if repo.lastID != 4 {
		t.Fatalf("expected __shop parameter to win, got lookup for %d", repo.lastID)
	}
}

func TestShopMiddleware_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(shopMiddleware(&stubShopRepo{err: domain.ErrNotFound}, 1))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestShopMiddleware_RepoError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(shopMiddleware(&stubShopRepo{err: errors.New("boom")}, 1))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestShopMiddleware_BadShopParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(shopMiddleware(&stubShopRepo{}, 1))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test?__shop=abc", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
