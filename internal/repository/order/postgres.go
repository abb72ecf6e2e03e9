package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
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

func (r *postgresRepo) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	const q = `
SELECT id, number, currency, COALESCE(invoice_shipping, 0)::text, order_time
FROM orders
WHERE number = $1
`
	var (
		o        domain.Order
		shipping string
	)
	err := r.pool.QueryRow(ctx, q, number).Scan(&o.ID, &o.Number, &o.CurrencyCode, &shipping, &o.OrderTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("order repo: get", zap.String("number", number), zap.Error(err))
		return nil, err
	}
	if o.InvoiceShipping, err = decimal.NewFromString(shipping); err != nil {
		return nil, fmt.Errorf("order repo: shipping of order %s: %w", number, err)
	}

	if err := r.loadDetails(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) loadDetails(ctx context.Context, o *domain.Order) error {
	const q = `
SELECT id, order_id, COALESCE(article_id, 0), COALESCE(article_number, ''), article_name, quantity::float8, price::text
FROM order_details
WHERE order_id = $1
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, o.ID)
	if err != nil {
		r.logger.Error("order repo: details", zap.Int64("order_id", o.ID), zap.Error(err))
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			d     domain.OrderDetail
			price string
		)
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ArticleID, &d.ArticleNumber, &d.ArticleName, &d.Quantity, &price); err != nil {
			return err
		}
		if d.Price, err = decimal.NewFromString(price); err != nil {
			return fmt.Errorf("order repo: price of detail %d: %w", d.ID, err)
		}
		o.Details = append(o.Details, d)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range o.Details {
		o.Details[i].Order = o
	}
	return nil
}
