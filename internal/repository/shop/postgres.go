package shop

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"recsync/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Shop, error) {
	const q = `
SELECT id, name, host, COALESCE(base_path, ''), currency, category_id, locale
FROM shops
WHERE id = $1
`
	var s domain.Shop
	err := r.pool.QueryRow(ctx, q, id).Scan(&s.ID, &s.Name, &s.Host, &s.BasePath, &s.CurrencyCode, &s.CategoryID, &s.Locale)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("shop repo: get", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return &s, nil
}
