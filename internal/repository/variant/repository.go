package variant

import (
	"context"

	"recsync/internal/domain"
)

type Repository interface {
	// FindByArticle returns all variants of an article, main variant first.
	FindByArticle(ctx context.Context, articleID int64) ([]domain.Variant, error)
}
