// Command export dumps the product catalog of a shop, or the line items of a
// single order, as JSON on stdout. It is the batch counterpart of the HTTP
// export endpoints, meant for the initial sync of a freshly connected
// account.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"go.uber.org/zap"

	"recsync/internal/categorypath"
	"recsync/internal/config"
	"recsync/internal/db"
	"recsync/internal/export"
	"recsync/internal/exporter"
	"recsync/internal/images"
	"recsync/internal/price"
	articlerepo "recsync/internal/repository/article"
	categoryrepo "recsync/internal/repository/category"
	orderrepo "recsync/internal/repository/order"
	shoprepo "recsync/internal/repository/shop"
	variantrepo "recsync/internal/repository/variant"
	"recsync/internal/shopurl"
)

func main() {
	var (
		shopID      int64
		orderNumber string
	)
	flag.Int64Var(&shopID, "shop", 0, "Shop id to export products for")
	flag.StringVar(&orderNumber, "order", "", "Order number to export instead of the catalog")
	flag.Parse()

	cfg := config.FromEnv()
	if shopID == 0 {
		shopID = cfg.DefaultShopID
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	shopRepo := shoprepo.NewPostgres(pool, logger)
	articleRepo := articlerepo.NewPostgres(pool, logger)
	variantRepo := variantrepo.NewPostgres(pool, logger)
	categoryRepo := categoryrepo.NewPostgres(pool, logger)
	orderRepo := orderrepo.NewPostgres(pool, logger)

	prices := price.NewCalculator()
	svc := exporter.New(exporter.Deps{
		Shops:    shopRepo,
		Articles: articleRepo,
		Orders:   orderRepo,
		Products: export.NewProductMapper(export.ProductMapperDeps{
			Prices:   prices,
			Images:   images.NewResolver(cfg.MediaHost),
			Paths:    categorypath.NewResolver(categoryRepo),
			Router:   shopurl.NewRouter(),
			Variants: variantRepo,
			Tags:     export.NewTagBuilder(prices, logger),
		}),
		LineItems: export.NewLineItemMapper(articleRepo, prices),
		Logger:    logger,
	})

	var payload any
	if orderNumber != "" {
		items, err := svc.ExportOrder(ctx, orderNumber)
		if err != nil {
			logger.Fatal("export order", zap.String("number", orderNumber), zap.Error(err))
		}
		payload = map[string]any{"purchasedItems": items}
	} else {
		products, err := svc.ExportProducts(ctx, shopID)
		if err != nil {
			logger.Fatal("export products", zap.Int64("shop_id", shopID), zap.Error(err))
		}
		payload = map[string]any{"products": products}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		logger.Fatal("encode payload", zap.Error(err))
	}
}
