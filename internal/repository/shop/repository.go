package shop

import (
	"context"

	"recsync/internal/domain"
)

type Repository interface {
	// GetByID returns a shop configuration or domain.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Shop, error)
}
