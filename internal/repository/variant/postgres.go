package variant

import (
	"context"
	"fmt"

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

func (r *postgresRepo) FindByArticle(ctx context.Context, articleID int64) ([]domain.Variant, error) {
	const q = `
SELECT id, article_id, number, is_main, in_stock,
       price::text, COALESCE(pseudo_price, 0)::text,
       COALESCE(purchase_unit, 0)::text, COALESCE(reference_unit, 0)::text, COALESCE(unit_name, '')
FROM variants
WHERE article_id = $1
ORDER BY is_main DESC, id
`
	rows, err := r.pool.Query(ctx, q, articleID)
	if err != nil {
		r.logger.Error("variant repo: find by article", zap.Int64("article_id", articleID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var variants []domain.Variant
	for rows.Next() {
		var (
			v                                               domain.Variant
			price, pseudoPrice, purchaseUnit, referenceUnit string
		)
		err := rows.Scan(&v.ID, &v.ArticleID, &v.Number, &v.IsMain, &v.InStock,
			&price, &pseudoPrice, &purchaseUnit, &referenceUnit, &v.UnitName)
		if err != nil {
			return nil, err
		}
		for _, field := range []struct {
			raw string
			dst *decimal.Decimal
		}{
			{price, &v.Price},
			{pseudoPrice, &v.PseudoPrice},
			{purchaseUnit, &v.PurchaseUnit},
			{referenceUnit, &v.ReferenceUnit},
		} {
			d, err := decimal.NewFromString(field.raw)
			if err != nil {
				return nil, fmt.Errorf("variant %d: bad numeric %q: %w", v.ID, field.raw, err)
			}
			*field.dst = d
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}
