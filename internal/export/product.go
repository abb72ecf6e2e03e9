package export

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"recsync/internal/domain"
)

// Product is the outbound product record. Fields are populated by
// ProductMapper.Load but remain individually settable so that listeners and
// tests can construct or amend records directly.
type Product struct {
	url              string
	productID        string
	name             string
	imageURL         string
	price            decimal.Decimal
	listPrice        decimal.Decimal
	currencyCode     string
	availability     Availability
	tags             TagSet
	categories       []string
	shortDescription string
	description      string
	brand            string
	datePublished    string
}

func (p *Product) URL() string                { return p.url }
func (p *Product) ProductID() string          { return p.productID }
func (p *Product) Name() string               { return p.name }
func (p *Product) ImageURL() string           { return p.imageURL }
func (p *Product) Price() decimal.Decimal     { return p.price }
func (p *Product) ListPrice() decimal.Decimal { return p.listPrice }
func (p *Product) CurrencyCode() string       { return p.currencyCode }
func (p *Product) Availability() Availability { return p.availability }
func (p *Product) Tags() *TagSet              { return &p.tags }
func (p *Product) Categories() []string       { return p.categories }
func (p *Product) ShortDescription() string   { return p.shortDescription }
func (p *Product) Description() string        { return p.description }
func (p *Product) Brand() string              { return p.brand }
func (p *Product) DatePublished() string      { return p.datePublished }

// FullDescription joins the short and long descriptions, skipping empty ones.
func (p *Product) FullDescription() string {
	var parts []string
	if p.shortDescription != "" {
		parts = append(parts, p.shortDescription)
	}
	if p.description != "" {
		parts = append(parts, p.description)
	}
	return strings.Join(parts, " ")
}

func (p *Product) SetURL(u string)                   { p.url = u }
func (p *Product) SetProductID(id string)            { p.productID = id }
func (p *Product) SetName(name string)               { p.name = name }
func (p *Product) SetImageURL(u string)              { p.imageURL = u }
func (p *Product) SetPrice(v decimal.Decimal)        { p.price = v }
func (p *Product) SetListPrice(v decimal.Decimal)    { p.listPrice = v }
func (p *Product) SetCurrencyCode(code string)       { p.currencyCode = code }
func (p *Product) SetAvailability(a Availability)    { p.availability = a }
func (p *Product) SetShortDescription(d string)      { p.shortDescription = d }
func (p *Product) SetDescription(d string)           { p.description = d }
func (p *Product) SetBrand(brand string)             { p.brand = brand }
func (p *Product) SetDatePublished(date string)      { p.datePublished = date }
func (p *Product) SetTag1(tags []string)             { p.tags.SetTag1(tags) }
func (p *Product) AddTag1(tag string)                { p.tags.AddTag1(tag) }
func (p *Product) SetTag2(tags []string)             { p.tags.SetTag2(tags) }
func (p *Product) AddTag2(tag string)                { p.tags.AddTag2(tag) }
func (p *Product) SetTag3(tags []string)             { p.tags.SetTag3(tags) }
func (p *Product) AddTag3(tag string)                { p.tags.AddTag3(tag) }
func (p *Product) AddCategory(category string)       { p.categories = append(p.categories, category) }

// SetCategories replaces the category paths.
func (p *Product) SetCategories(categories []string) {
	p.categories = nil
	for _, c := range categories {
		p.AddCategory(c)
	}
}

// MarshalJSON serializes the record in the shape the recommendation service
// expects.
func (p *Product) MarshalJSON() ([]byte, error) {
	categories := p.categories
	if categories == nil {
		categories = []string{}
	}
	return json.Marshal(struct {
		URL              string          `json:"url"`
		ProductID        string          `json:"productId"`
		Name             string          `json:"name"`
		ImageURL         string          `json:"imageUrl"`
		Price            decimal.Decimal `json:"price"`
		ListPrice        decimal.Decimal `json:"listPrice"`
		CurrencyCode     string          `json:"currencyCode"`
		Availability     Availability    `json:"availability"`
		Tags             TagSet          `json:"tags"`
		Categories       []string        `json:"categories"`
		ShortDescription string          `json:"shortDescription"`
		Description      string          `json:"description"`
		Brand            string          `json:"brand"`
		DatePublished    string          `json:"datePublished"`
	}{
		URL:              p.url,
		ProductID:        p.productID,
		Name:             p.name,
		ImageURL:         p.imageURL,
		Price:            p.price,
		ListPrice:        p.listPrice,
		CurrencyCode:     p.currencyCode,
		Availability:     p.availability,
		Tags:             p.tags,
		Categories:       categories,
		ShortDescription: p.shortDescription,
		Description:      p.description,
		Brand:            p.brand,
		DatePublished:    p.datePublished,
	})
}

// ProductMapper assembles product records from articles. All collaborators
// are injected; the mapper holds no state between Load calls.
type ProductMapper struct {
	prices   PriceCalculator
	images   ImageURLResolver
	paths    CategoryPathResolver
	router   Router
	variants VariantRepository
	tags     *TagBuilder
	hook     ProductHook
}

// ProductMapperDeps lists the collaborators of a ProductMapper. Hook may be
// nil.
type ProductMapperDeps struct {
	Prices   PriceCalculator
	Images   ImageURLResolver
	Paths    CategoryPathResolver
	Router   Router
	Variants VariantRepository
	Tags     *TagBuilder
	Hook     ProductHook
}

func NewProductMapper(deps ProductMapperDeps) *ProductMapper {
	return &ProductMapper{
		prices:   deps.Prices,
		images:   deps.Images,
		paths:    deps.Paths,
		router:   deps.Router,
		variants: deps.Variants,
		tags:     deps.Tags,
		hook:     deps.Hook,
	}
}

// Load populates a product record from an article and the shop it is sold in.
//
// Collaborator failures propagate; Load defines no partial-success behavior.
// The hook runs only after the record is fully populated.
func (m *ProductMapper) Load(ctx context.Context, article domain.Article, shop domain.Shop) (*Product, error) {
	if article.MainVariant == nil {
		return nil, fmt.Errorf("article %d: %w", article.ID, ErrNoMainVariant)
	}
	if article.Supplier == nil {
		return nil, fmt.Errorf("article %d: %w", article.ID, ErrNoSupplier)
	}

	p := &Product{}
	p.SetProductID(article.MainVariant.Number)

	productURL, err := m.assembleProductURL(article, shop)
	if err != nil {
		return nil, err
	}
	p.SetURL(productURL)
	p.SetName(article.Name)

	imageURL, err := m.images.ImageURL(ctx, article, shop)
	if err != nil {
		return nil, err
	}
	p.SetImageURL(imageURL)
	p.SetCurrencyCode(shop.CurrencyCode)

	price, err := m.prices.PriceInclTax(ctx, article, PriceModeNormal)
	if err != nil {
		return nil, err
	}
	p.SetPrice(price)

	listPrice, err := m.prices.PriceInclTax(ctx, article, PriceModeList)
	if err != nil {
		return nil, err
	}
	p.SetListPrice(listPrice)

	availability, err := m.checkAvailability(ctx, article)
	if err != nil {
		return nil, err
	}
	p.SetAvailability(availability)

	p.tags = m.tags.Build(ctx, article, shop)

	categories, err := m.buildCategoryPaths(ctx, article, shop)
	if err != nil {
		return nil, err
	}
	p.SetCategories(categories)

	p.SetShortDescription(article.Description)
	p.SetDescription(article.DescriptionLong)
	p.SetBrand(article.Supplier.Name)
	p.SetDatePublished(article.Added.Format("2006-01-02"))

	if m.hook != nil {
		m.hook(p, article, shop)
	}
	return p, nil
}

// assembleProductURL builds the canonical detail page URL. The shop id is
// always added as the __shop query parameter so the service can tell products
// apart even when several shops share a host and path.
func (m *ProductMapper) assembleProductURL(article domain.Article, shop domain.Shop) (string, error) {
	raw, err := m.router.DetailURL(article, shop, true)
	if err != nil {
		return "", err
	}
	return setQueryParam(raw, "__shop", strconv.FormatInt(shop.ID, 10))
}

// checkAvailability reports InStock as soon as any variant of the article has
// stock, OutOfStock otherwise. Only the raw stock count is inspected.
func (m *ProductMapper) checkAvailability(ctx context.Context, article domain.Article) (Availability, error) {
	variants, err := m.variants.FindByArticle(ctx, article.ID)
	if err != nil {
		return "", err
	}
	for _, v := range variants {
		if v.InStock > 0 {
			return InStock, nil
		}
	}
	return OutOfStock, nil
}

// buildCategoryPaths renders the path of every article category that sits
// under the shop's root category. Categories outside the shop's tree are
// skipped.
func (m *ProductMapper) buildCategoryPaths(ctx context.Context, article domain.Article, shop domain.Shop) ([]string, error) {
	rootSegment := "|" + strconv.FormatInt(shop.CategoryID, 10) + "|"
	var paths []string
	for _, category := range article.Categories {
		if !strings.Contains(category.Path, rootSegment) {
			continue
		}
		path, err := m.paths.Path(ctx, category)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// setQueryParam replaces or appends one query parameter on a raw URL.
func setQueryParam(raw, key, value string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", raw, err)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
