package export

import (
	"context"

	"github.com/shopspring/decimal"

	"recsync/internal/domain"
)

type stubPrices struct {
	normal       decimal.Decimal
	list         decimal.Decimal
	inclTaxErr   error
	perUnit      string
	perUnitErr   error
	perUnitCalls int
}

func (s *stubPrices) PriceInclTax(_ context.Context, _ domain.Article, mode PriceMode) (decimal.Decimal, error) {
	if s.inclTaxErr != nil {
		return decimal.Decimal{}, s.inclTaxErr
	}
	if mode == PriceModeList {
		return s.list, nil
	}
	return s.normal, nil
}

func (s *stubPrices) PricePerUnit(_ context.Context, _ domain.Article, _ domain.Shop) (string, error) {
	s.perUnitCalls++
	return s.perUnit, s.perUnitErr
}

func (s *stubPrices) Format(price decimal.Decimal) string {
	return price.StringFixed(2)
}

type stubImages struct {
	url string
	err error
}

func (s *stubImages) ImageURL(_ context.Context, _ domain.Article, _ domain.Shop) (string, error) {
	return s.url, s.err
}

type stubPaths struct {
	paths map[int64]string
	err   error
}

func (s *stubPaths) Path(_ context.Context, category domain.Category) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.paths[category.ID], nil
}

type stubRouter struct {
	detailURL   string
	detailErr   error
	callbackURL string
	callbackErr error
	lastSecure  bool
}

func (s *stubRouter) DetailURL(_ domain.Article, _ domain.Shop, secure bool) (string, error) {
	s.lastSecure = secure
	return s.detailURL, s.detailErr
}

func (s *stubRouter) OAuthCallbackURL(_ domain.Shop) (string, error) {
	return s.callbackURL, s.callbackErr
}

type stubVariants struct {
	variants []domain.Variant
	err      error
}

func (s *stubVariants) FindByArticle(_ context.Context, _ int64) ([]domain.Variant, error) {
	return s.variants, s.err
}

type stubArticles struct {
	articles map[int64]*domain.Article
	err      error
}

func (s *stubArticles) FindByID(_ context.Context, id int64) (*domain.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	article, ok := s.articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return article, nil
}
