package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a placed order with its purchased lines.
type Order struct {
	ID           int64
	Number       string
	CurrencyCode string
	// InvoiceShipping is the shipping cost charged on the order, gross.
	InvoiceShipping decimal.Decimal
	OrderTime       time.Time
	Details         []OrderDetail
}

// OrderDetail is one purchased line of an order. ArticleName and
// ArticleNumber are snapshots taken at purchase time and may differ from the
// live article if it was edited or removed since.
type OrderDetail struct {
	ID            int64
	OrderID       int64
	ArticleID     int64
	ArticleNumber string
	ArticleName   string
	Quantity      float64
	Price         decimal.Decimal
	// Order points back at the owning order. Repositories populate it when
	// loading details; a detail without an order cannot be exported.
	Order *Order
}
