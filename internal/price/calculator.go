// Package price computes and formats the gross prices exported for articles.
package price

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"recsync/internal/domain"
	"recsync/internal/export"
)

var hundred = decimal.NewFromInt(100)

// Calculation error codes.
const (
	CodeNoMainVariant = 1
	CodeInvalidUnit   = 2
)

// Calculator derives tax-inclusive prices from the net prices stored on an
// article's main variant.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// PriceInclTax returns the main variant's price including tax, rounded to two
// decimals. PriceModeList uses the undiscounted pseudo price when the article
// carries one, falling back to the normal price.
func (c *Calculator) PriceInclTax(_ context.Context, article domain.Article, mode export.PriceMode) (decimal.Decimal, error) {
	variant := article.MainVariant
	if variant == nil {
		return decimal.Decimal{}, fmt.Errorf("article %d: %w", article.ID, export.ErrNoMainVariant)
	}

	net := variant.Price
	if mode == export.PriceModeList && variant.PseudoPrice.IsPositive() {
		net = variant.PseudoPrice
	}
	return grossOf(net, article.TaxRate), nil
}

// PricePerUnit returns the display string for the price per reference unit,
// e.g. "5.00 EUR / 1 l". Articles without a unit configuration yield "".
// A unit name with a non-positive purchase or reference quantity is an
// invalid configuration and fails with a *export.CalculationError.
func (c *Calculator) PricePerUnit(_ context.Context, article domain.Article, shop domain.Shop) (string, error) {
	variant := article.MainVariant
	if variant == nil {
		return "", &export.CalculationError{
			Message: fmt.Sprintf("article %d has no main variant", article.ID),
			Code:    CodeNoMainVariant,
		}
	}
	if variant.UnitName == "" {
		return "", nil
	}
	if !variant.PurchaseUnit.IsPositive() || !variant.ReferenceUnit.IsPositive() {
		return "", &export.CalculationError{
			Message: fmt.Sprintf("article %d has an invalid unit configuration", article.ID),
			Code:    CodeInvalidUnit,
		}
	}

	gross := grossOf(variant.Price, article.TaxRate)
	perUnit := gross.Div(variant.PurchaseUnit).Mul(variant.ReferenceUnit).Round(2)
	return fmt.Sprintf("%s %s / %s %s", perUnit.StringFixed(2), shop.CurrencyCode, variant.ReferenceUnit.String(), variant.UnitName), nil
}

// Format renders a price with two decimals, the precision the service
// expects everywhere.
func (c *Calculator) Format(price decimal.Decimal) string {
	return price.StringFixed(2)
}

func grossOf(net, taxRate decimal.Decimal) decimal.Decimal {
	return net.Mul(decimal.NewFromInt(1).Add(taxRate.Div(hundred))).Round(2)
}
