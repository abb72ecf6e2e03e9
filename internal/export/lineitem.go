package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"recsync/internal/domain"
)

// LineItem is one outbound order line: a purchased product or a special
// charge like shipping. It is read-only once loaded.
type LineItem struct {
	productID    string
	quantity     int
	name         string
	unitPrice    string
	currencyCode string
}

func (li *LineItem) ProductID() string    { return li.productID }
func (li *LineItem) Quantity() int        { return li.quantity }
func (li *LineItem) Name() string         { return li.name }
func (li *LineItem) UnitPrice() string    { return li.unitPrice }
func (li *LineItem) CurrencyCode() string { return li.currencyCode }

func (li *LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ProductID    string `json:"productId"`
		Quantity     int    `json:"quantity"`
		Name         string `json:"name"`
		UnitPrice    string `json:"unitPrice"`
		CurrencyCode string `json:"currencyCode"`
	}{
		ProductID:    li.productID,
		Quantity:     li.quantity,
		Name:         li.name,
		UnitPrice:    li.unitPrice,
		CurrencyCode: li.currencyCode,
	})
}

// LineItemMapper assembles order line records from order details.
type LineItemMapper struct {
	articles ArticleRepository
	prices   PriceCalculator
}

func NewLineItemMapper(articles ArticleRepository, prices PriceCalculator) *LineItemMapper {
	return &LineItemMapper{articles: articles, prices: prices}
}

// Load populates a line item from an order detail.
//
// The product id resolves through the parent article even when the purchased
// line references a variant; a line whose article is gone, or that never had
// one, keeps the NotAProduct sentinel. Name and quantity come from the
// detail's purchase-time snapshot. A detail without an owning order or
// currency cannot be exported.
func (m *LineItemMapper) Load(ctx context.Context, detail domain.OrderDetail) (*LineItem, error) {
	if detail.Order == nil {
		return nil, fmt.Errorf("order detail %d: %w", detail.ID, ErrDetachedLine)
	}
	if detail.Order.CurrencyCode == "" {
		return nil, fmt.Errorf("order %d: %w", detail.Order.ID, ErrNoCurrency)
	}

	productID, err := resolveProductID(ctx, m.articles, detail.ArticleID)
	if err != nil {
		return nil, err
	}

	return &LineItem{
		productID:    productID,
		quantity:     int(detail.Quantity),
		name:         detail.ArticleName,
		unitPrice:    m.prices.Format(detail.Price),
		currencyCode: strings.ToUpper(detail.Order.CurrencyCode),
	}, nil
}

// LoadSpecialItem builds a line without a backing product, e.g. shipping
// cost. Quantity is fixed at 1.
func (m *LineItemMapper) LoadSpecialItem(name string, price decimal.Decimal, currency string) *LineItem {
	return &LineItem{
		productID:    NotAProduct,
		quantity:     1,
		name:         name,
		unitPrice:    m.prices.Format(price),
		currencyCode: strings.ToUpper(currency),
	}
}

// resolveProductID maps an order line's article id to the exported product
// id: the main variant number of the owning article. A non-positive id and an
// article that no longer exists both yield the NotAProduct sentinel.
func resolveProductID(ctx context.Context, articles ArticleRepository, articleID int64) (string, error) {
	if articleID <= 0 {
		return NotAProduct, nil
	}
	article, err := articles.FindByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NotAProduct, nil
		}
		return "", err
	}
	if article.MainVariant == nil {
		return "", fmt.Errorf("article %d: %w", article.ID, ErrNoMainVariant)
	}
	return article.MainVariant.Number, nil
}
