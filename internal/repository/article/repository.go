package article

import (
	"context"

	"recsync/internal/domain"
)

type Repository interface {
	// FindByID loads an article with its supplier, main variant and
	// categories. Returns domain.ErrNotFound for unknown ids.
	FindByID(ctx context.Context, id int64) (*domain.Article, error)
	// ListIDs returns the ids of all articles, oldest first.
	ListIDs(ctx context.Context) ([]int64, error)
}
