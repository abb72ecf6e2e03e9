package httpserver

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"recsync/internal/export"
	"recsync/internal/oauth"
	shoprepo "recsync/internal/repository/shop"
)

// ExportService is the slice of the exporter the handlers use.
type ExportService interface {
	ExportProducts(ctx context.Context, shopID int64) ([]*export.Product, error)
	ExportProduct(ctx context.Context, shopID, articleID int64) (*export.Product, error)
	ExportOrder(ctx context.Context, number string) ([]*export.LineItem, error)
}

// Deps carries the collaborators the routes are wired with.
type Deps struct {
	ShopRepo shoprepo.Repository
	Export   ExportService
	// URLs assembles the oauth callback URL for a shop.
	URLs oauth.Router
	// DefaultShopID is used when a request carries no __shop parameter.
	DefaultShopID int64
	// OAuthAuthURL and OAuthTokenURL are the recommendation service's OAuth2
	// endpoints.
	OAuthAuthURL  string
	OAuthTokenURL string
}

// buildRouter wires routes for the plugin API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(zap.NewStdLog(logger).Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	shopScoped := router.Group("/", shopMiddleware(deps.ShopRepo, deps.DefaultShopID))
	shopScoped.GET("/export/products", productsHandler(deps.Export))
	shopScoped.GET("/export/products/:id", productHandler(deps.Export))
	shopScoped.GET("/export/orders/:number", orderHandler(deps.Export))
	shopScoped.GET("/oauth/connect", oauthConnectHandler(deps))
	shopScoped.GET("/oauth/callback", oauthCallbackHandler(deps))

	return router, nil
}
