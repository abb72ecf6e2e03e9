package exporter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"recsync/internal/domain"
	"recsync/internal/export"
)

type stubShops struct {
	shop *domain.Shop
	err  error
}

func (s *stubShops) GetByID(_ context.Context, _ int64) (*domain.Shop, error) {
	return s.shop, s.err
}

type stubArticles struct {
	ids      []int64
	articles map[int64]*domain.Article
	err      error
}

func (s *stubArticles) FindByID(_ context.Context, id int64) (*domain.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (s *stubArticles) ListIDs(_ context.Context) ([]int64, error) {
	return s.ids, s.err
}

type stubOrders struct {
	order *domain.Order
	err   error
}

func (s *stubOrders) GetByNumber(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.err
}

type stubPrices struct{}

func (stubPrices) PriceInclTax(_ context.Context, _ domain.Article, _ export.PriceMode) (decimal.Decimal, error) {
	return decimal.RequireFromString("9.99"), nil
}

func (stubPrices) PricePerUnit(_ context.Context, _ domain.Article, _ domain.Shop) (string, error) {
	return "", nil
}

func (stubPrices) Format(price decimal.Decimal) string { return price.StringFixed(2) }

type stubImages struct{}

func (stubImages) ImageURL(_ context.Context, _ domain.Article, _ domain.Shop) (string, error) {
	return "https://shop.example.com/media/image/x.jpg", nil
}

type stubPaths struct{}

func (stubPaths) Path(_ context.Context, c domain.Category) (string, error) { return c.Name, nil }

type stubRouter struct{}

func (stubRouter) DetailURL(article domain.Article, _ domain.Shop, _ bool) (string, error) {
	return "https://shop.example.com/detail/index/sArticle/5", nil
}

func (stubRouter) OAuthCallbackURL(_ domain.Shop) (string, error) {
	return "https://shop.example.com/recsync/oauth", nil
}

type stubVariants struct{}

func (stubVariants) FindByArticle(_ context.Context, _ int64) ([]domain.Variant, error) {
	return []domain.Variant{{InStock: 1}}, nil
}

func goodArticle(id int64) *domain.Article {
	return &domain.Article{
		ID:          id,
		Name:        "Article",
		Supplier:    &domain.Supplier{ID: 1, Name: "Supplier"},
		MainVariant: &domain.Variant{Number: "SW1"},
		Added:       time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testExporter(shops *stubShops, articles *stubArticles, orders *stubOrders, logger *zap.Logger) *Exporter {
	prices := stubPrices{}
	mapper := export.NewProductMapper(export.ProductMapperDeps{
		Prices:   prices,
		Images:   stubImages{},
		Paths:    stubPaths{},
		Router:   stubRouter{},
		Variants: stubVariants{},
		Tags:     export.NewTagBuilder(prices, nil),
	})
	return New(Deps{
		Shops:     shops,
		Articles:  articles,
		Orders:    orders,
		Products:  mapper,
		LineItems: export.NewLineItemMapper(articles, prices),
		Logger:    logger,
	})
}

func TestExporter_ExportProducts(t *testing.T) {
	shops := &stubShops{shop: &domain.Shop{ID: 1, Host: "shop.example.com", CurrencyCode: "EUR", CategoryID: 3}}
	articles := &stubArticles{
		ids: []int64{1, 2},
		articles: map[int64]*domain.Article{
			1: goodArticle(1),
			2: goodArticle(2),
		},
	}
	e := testExporter(shops, articles, &stubOrders{}, nil)

	products, err := e.ExportProducts(context.Background(), 1)
	if err != nil {
		t.Fatalf("ExportProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
}

func TestExporter_ExportProductsSkipsFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	broken := goodArticle(2)
	broken.MainVariant = nil

	shops := &stubShops{shop: &domain.Shop{ID: 1, Host: "shop.example.com", CurrencyCode: "EUR"}}
	articles := &stubArticles{
		ids: []int64{1, 2, 3}, // 3 has no stored article at all
		articles: map[int64]*domain.Article{
			1: goodArticle(1),
			2: broken,
		},
	}
	e := testExporter(shops, articles, &stubOrders{}, zap.New(core))

	products, err := e.ExportProducts(context.Background(), 1)
	if err != nil {
		t.Fatalf("ExportProducts: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected the batch to continue past failures, got %d products", len(products))
	}
	if logs.Len() != 2 {
		t.Fatalf("expected 2 skip warnings, got %d", logs.Len())
	}
}

func TestExporter_ExportProductsShopFailure(t *testing.T) {
	e := testExporter(&stubShops{err: domain.ErrNotFound}, &stubArticles{}, &stubOrders{}, nil)

	if _, err := e.ExportProducts(context.Background(), 9); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected shop lookup failure to propagate, got %v", err)
	}
}

func TestExporter_ExportOrder(t *testing.T) {
	order := &domain.Order{
		ID:              9,
		Number:          "20001",
		CurrencyCode:    "eur",
		InvoiceShipping: decimal.RequireFromString("4.99"),
	}
	order.Details = []domain.OrderDetail{
		{ID: 1, OrderID: 9, ArticleID: 1, ArticleName: "Article", Quantity: 2, Price: decimal.RequireFromString("9.99"), Order: order},
	}
	articles := &stubArticles{articles: map[int64]*domain.Article{1: goodArticle(1)}}
	e := testExporter(&stubShops{}, articles, &stubOrders{order: order}, nil)

	items, err := e.ExportOrder(context.Background(), "20001")
	if err != nil {
		t.Fatalf("ExportOrder: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected product line plus shipping line, got %d", len(items))
	}
	if got := items[0].ProductID(); got != "SW1" {
		t.Fatalf("unexpected product id %q", got)
	}
	shipping := items[1]
	if shipping.ProductID() != export.NotAProduct || shipping.Name() != ShippingName {
		t.Fatalf("expected synthetic shipping line, got %+v", shipping)
	}
	if shipping.UnitPrice() != "4.99" || shipping.CurrencyCode() != "EUR" {
		t.Fatalf("unexpected shipping line price %q %q", shipping.UnitPrice(), shipping.CurrencyCode())
	}
}

func TestExporter_ExportOrderWithoutShipping(t *testing.T) {
	order := &domain.Order{ID: 9, Number: "20002", CurrencyCode: "EUR"}
	e := testExporter(&stubShops{}, &stubArticles{}, &stubOrders{order: order}, nil)

	items, err := e.ExportOrder(context.Background(), "20002")
	if err != nil {
		t.Fatalf("ExportOrder: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no lines, got %d", len(items))
	}
}

func TestExporter_ExportOrderLineFailurePropagates(t *testing.T) {
	order := &domain.Order{ID: 9, Number: "20003", CurrencyCode: "EUR"}
	order.Details = []domain.OrderDetail{{ID: 1, OrderID: 9}} // no back-pointer
	e := testExporter(&stubShops{}, &stubArticles{}, &stubOrders{order: order}, nil)

	if _, err := e.ExportOrder(context.Background(), "20003"); !errors.Is(err, export.ErrDetachedLine) {
		t.Fatalf("expected detached line failure, got %v", err)
	}
}
