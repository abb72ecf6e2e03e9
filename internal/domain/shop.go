package domain

// Shop is one storefront configuration. Several shops can share a host, which
// is why exported URLs carry the shop id as a query parameter.
type Shop struct {
	ID           int64
	Name         string
	Host         string
	BasePath     string
	CurrencyCode string
	// CategoryID is the root of the shop's category tree. Articles in
	// categories outside this tree are not part of the shop.
	CategoryID int64
	// Locale is the full locale string, e.g. "de_DE".
	Locale string
}
