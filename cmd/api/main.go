package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"recsync/internal/categorypath"
	"recsync/internal/config"
	"recsync/internal/db"
	"recsync/internal/export"
	"recsync/internal/exporter"
	"recsync/internal/httpserver"
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
	cfg := config.FromEnv()
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	shopRepo := shoprepo.NewPostgres(dbpool, logger)
	articleRepo := articlerepo.NewPostgres(dbpool, logger)
	variantRepo := variantrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	prices := price.NewCalculator()
	urls := shopurl.NewRouter()
	productMapper := export.NewProductMapper(export.ProductMapperDeps{
		Prices:   prices,
		Images:   images.NewResolver(cfg.MediaHost),
		Paths:    categorypath.NewResolver(categoryRepo),
		Router:   urls,
		Variants: variantRepo,
		Tags:     export.NewTagBuilder(prices, logger),
	})
	lineItemMapper := export.NewLineItemMapper(articleRepo, prices)

	exportSvc := exporter.New(exporter.Deps{
		Shops:     shopRepo,
		Articles:  articleRepo,
		Orders:    orderRepo,
		Products:  productMapper,
		LineItems: lineItemMapper,
		Logger:    logger,
	})

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		ShopRepo:      shopRepo,
		Export:        exportSvc,
		URLs:          urls,
		DefaultShopID: cfg.DefaultShopID,
		OAuthAuthURL:  cfg.OAuthAuthURL,
		OAuthTokenURL: cfg.OAuthTokenURL,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
