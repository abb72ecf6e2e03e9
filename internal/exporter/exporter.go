// Package exporter drives batch exports: it walks platform entities, runs
// them through the mappers and collects the outbound payload.
package exporter

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"recsync/internal/export"
	articlerepo "recsync/internal/repository/article"
	orderrepo "recsync/internal/repository/order"
	shoprepo "recsync/internal/repository/shop"
)

// ShippingName is the display name of the synthetic shipping cost line.
const ShippingName = "Shipping"

type Exporter struct {
	shops     shoprepo.Repository
	articles  articlerepo.Repository
	orders    orderrepo.Repository
	products  *export.ProductMapper
	lineItems *export.LineItemMapper
	logger    *zap.Logger
}

type Deps struct {
	Shops     shoprepo.Repository
	Articles  articlerepo.Repository
	Orders    orderrepo.Repository
	Products  *export.ProductMapper
	LineItems *export.LineItemMapper
	Logger    *zap.Logger
}

func New(deps Deps) *Exporter {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		shops:     deps.Shops,
		articles:  deps.Articles,
		orders:    deps.Orders,
		products:  deps.Products,
		lineItems: deps.LineItems,
		logger:    logger,
	}
}

// ExportProducts maps every article for one shop. An article that fails to
// map is logged and skipped; the batch continues.
func (e *Exporter) ExportProducts(ctx context.Context, shopID int64) ([]*export.Product, error) {
	shop, err := e.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("load shop %d: %w", shopID, err)
	}

	ids, err := e.articles.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	products := make([]*export.Product, 0, len(ids))
	for _, id := range ids {
		article, err := e.articles.FindByID(ctx, id)
		if err != nil {
			e.logger.Warn("skipping article", zap.Int64("article_id", id), zap.Error(err))
			continue
		}
		p, err := e.products.Load(ctx, *article, *shop)
		if err != nil {
			e.logger.Warn("skipping article", zap.Int64("article_id", id), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// ExportProduct maps a single article for one shop. Unlike the batch variant
// every failure propagates.
func (e *Exporter) ExportProduct(ctx context.Context, shopID, articleID int64) (*export.Product, error) {
	shop, err := e.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("load shop %d: %w", shopID, err)
	}
	article, err := e.articles.FindByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("load article %d: %w", articleID, err)
	}
	return e.products.Load(ctx, *article, *shop)
}

// ExportOrder maps all purchased lines of an order, appending a synthetic
// shipping line when the order charged shipping.
func (e *Exporter) ExportOrder(ctx context.Context, number string) ([]*export.LineItem, error) {
	order, err := e.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", number, err)
	}

	items := make([]*export.LineItem, 0, len(order.Details)+1)
	for _, detail := range order.Details {
		item, err := e.lineItems.Load(ctx, detail)
		if err != nil {
			return nil, fmt.Errorf("order %s detail %d: %w", number, detail.ID, err)
		}
		items = append(items, item)
	}
	if order.InvoiceShipping.IsPositive() {
		items = append(items, e.lineItems.LoadSpecialItem(ShippingName, order.InvoiceShipping, order.CurrencyCode))
	}
	return items, nil
}
