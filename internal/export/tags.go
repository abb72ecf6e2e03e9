package export

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"recsync/internal/domain"
)

// TagSet carries the three tag slots of a product. tag1 holds behavioral
// markers, tag2 the derived price-per-unit string, tag3 is free for
// listeners. tag1 is always serialized, even when empty; tag2 and tag3 only
// when populated.
type TagSet struct {
	tag1 []string
	tag2 []string
	tag3 []string
}

func (t TagSet) Tag1() []string { return t.tag1 }
func (t TagSet) Tag2() []string { return t.tag2 }
func (t TagSet) Tag3() []string { return t.tag3 }

// SetTag1 replaces the tag1 slot.
func (t *TagSet) SetTag1(tags []string) {
	t.tag1 = nil
	for _, tag := range tags {
		t.AddTag1(tag)
	}
}

// AddTag1 appends one tag to the tag1 slot.
func (t *TagSet) AddTag1(tag string) { t.tag1 = append(t.tag1, tag) }

// SetTag2 replaces the tag2 slot.
func (t *TagSet) SetTag2(tags []string) {
	t.tag2 = nil
	for _, tag := range tags {
		t.AddTag2(tag)
	}
}

// AddTag2 appends one tag to the tag2 slot.
func (t *TagSet) AddTag2(tag string) { t.tag2 = append(t.tag2, tag) }

// SetTag3 replaces the tag3 slot.
func (t *TagSet) SetTag3(tags []string) {
	t.tag3 = nil
	for _, tag := range tags {
		t.AddTag3(tag)
	}
}

// AddTag3 appends one tag to the tag3 slot.
func (t *TagSet) AddTag3(tag string) { t.tag3 = append(t.tag3, tag) }

// MarshalJSON always emits tag1 and leaves tag2/tag3 out unless populated.
func (t TagSet) MarshalJSON() ([]byte, error) {
	out := map[string][]string{"tag1": t.tag1}
	if out["tag1"] == nil {
		out["tag1"] = []string{}
	}
	if len(t.tag2) > 0 {
		out["tag2"] = t.tag2
	}
	if len(t.tag3) > 0 {
		out["tag3"] = t.tag3
	}
	return json.Marshal(out)
}

// TagBuilder derives the default tag set for a product.
type TagBuilder struct {
	prices PriceCalculator
	logger *zap.Logger
}

func NewTagBuilder(prices PriceCalculator, logger *zap.Logger) *TagBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TagBuilder{prices: prices, logger: logger}
}

// Build returns the tag set for an article in a shop.
//
// Articles without a configurator set can be added to the cart straight from
// a recommendation, so they get the add-to-cart tag in tag1. The price per
// unit, when the article's unit configuration yields one, goes to tag2. A
// failed price-per-unit computation is logged and the slot left out; it never
// fails the build.
func (b *TagBuilder) Build(ctx context.Context, article domain.Article, shop domain.Shop) TagSet {
	var tags TagSet

	if !article.ConfiguratorSet {
		tags.AddTag1(AddToCartTag)
	}

	pricePerUnit, err := b.prices.PricePerUnit(ctx, article, shop)
	if err != nil {
		var calcErr *CalculationError
		if errors.As(err, &calcErr) {
			b.logger.Warn("could not create price per unit",
				zap.String("error", calcErr.Message),
				zap.Int("code", calcErr.Code),
				zap.Int64("article_id", article.ID))
		} else {
			b.logger.Warn("could not create price per unit",
				zap.Error(err),
				zap.Int64("article_id", article.ID))
		}
		return tags
	}
	if pricePerUnit != "" {
		tags.SetTag2([]string{pricePerUnit})
	}
	return tags
}
