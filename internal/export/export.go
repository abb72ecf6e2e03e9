// Package export normalizes shop platform entities into the data model the
// recommendation service consumes. Mappers are request-scoped: construct one,
// load it from a source entity, serialize the result, throw it away.
package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"recsync/internal/domain"
)

// Availability of a product at the recommendation service.
type Availability string

const (
	InStock    Availability = "InStock"
	OutOfStock Availability = "OutOfStock"
)

// AddToCartTag marks products that can be put in the cart straight from a
// recommendation, i.e. articles without a configurator.
const AddToCartTag = "add-to-cart"

// NotAProduct is the product id used for order lines that have no backing
// article, such as shipping cost or discounts.
const NotAProduct = "-1"

// PriceMode selects which of the article's prices a calculator returns.
type PriceMode int

const (
	// PriceModeNormal is the current, possibly discounted price.
	PriceModeNormal PriceMode = iota
	// PriceModeList is the undiscounted list price.
	PriceModeList
)

var (
	ErrNoMainVariant = errors.New("export: article has no main variant")
	ErrNoSupplier    = errors.New("export: article has no supplier")
	ErrDetachedLine  = errors.New("export: order detail has no owning order")
	ErrNoCurrency    = errors.New("export: order has no currency")
)

// CalculationError reports a failed price computation, e.g. an article whose
// unit configuration cannot yield a price per unit.
type CalculationError struct {
	Message string
	Code    int
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("price calculation: %s (%d)", e.Message, e.Code)
}

// PriceCalculator computes and formats article prices. Implemented by the
// price package; stubbed in tests.
type PriceCalculator interface {
	// PriceInclTax returns the article price including tax in the given mode.
	PriceInclTax(ctx context.Context, article domain.Article, mode PriceMode) (decimal.Decimal, error)
	// PricePerUnit returns the display string for the article's price per
	// reference unit, or "" when the article has no unit configuration. It
	// fails with a *CalculationError when the configuration is invalid.
	PricePerUnit(ctx context.Context, article domain.Article, shop domain.Shop) (string, error)
	// Format renders a price with the precision the service expects.
	Format(price decimal.Decimal) string
}

// ImageURLResolver builds the absolute URL of an article's cover image.
type ImageURLResolver interface {
	ImageURL(ctx context.Context, article domain.Article, shop domain.Shop) (string, error)
}

// CategoryPathResolver renders a category as its full root-to-leaf path
// string, e.g. "Clothes / Winter / Coats".
type CategoryPathResolver interface {
	Path(ctx context.Context, category domain.Category) (string, error)
}

// Router assembles storefront URLs for a shop.
type Router interface {
	// DetailURL is the canonical product detail page URL. secure forces the
	// https scheme.
	DetailURL(article domain.Article, shop domain.Shop, secure bool) (string, error)
	// OAuthCallbackURL is the redirect target of the account connect flow.
	OAuthCallbackURL(shop domain.Shop) (string, error)
}

// VariantRepository looks up the purchasable variants of an article.
type VariantRepository interface {
	FindByArticle(ctx context.Context, articleID int64) ([]domain.Variant, error)
}

// ArticleRepository looks up articles by their primary key.
type ArticleRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Article, error)
}

// ProductHook is called synchronously after a product record has been fully
// populated, with the record and its sources. It is the extension seam for
// post-processing the export; a nil hook is a no-op.
type ProductHook func(product *Product, article domain.Article, shop domain.Shop)
