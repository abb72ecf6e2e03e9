package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article is a sellable product as stored by the shop platform. It may carry
// several purchasable variants; MainVariant is the canonical one whose
// merchant number identifies the article externally.
type Article struct {
	ID              int64
	Name            string
	Description     string
	DescriptionLong string
	Image           string
	TaxRate         decimal.Decimal
	ConfiguratorSet bool
	Supplier        *Supplier
	MainVariant     *Variant
	Categories      []Category
	Added           time.Time
}

// Supplier is the article's brand/manufacturer.
type Supplier struct {
	ID   int64
	Name string
}

// Variant is one purchasable configuration of an article with its own
// merchant number and stock count.
type Variant struct {
	ID            int64
	ArticleID     int64
	Number        string
	IsMain        bool
	InStock       int
	Price         decimal.Decimal
	PseudoPrice   decimal.Decimal
	PurchaseUnit  decimal.Decimal
	ReferenceUnit decimal.Decimal
	UnitName      string
}
