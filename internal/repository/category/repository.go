package category

import (
	"context"

	"recsync/internal/domain"
)

type Repository interface {
	// GetByID returns a single category or domain.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
}
