package order

import (
	"context"

	"recsync/internal/domain"
)

type Repository interface {
	// GetByNumber loads an order and its details by order number. Every
	// detail's Order field points back at the returned order.
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
}
