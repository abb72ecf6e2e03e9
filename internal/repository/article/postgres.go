package article

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

func (r *postgresRepo) FindByID(ctx context.Context, id int64) (*domain.Article, error) {
	const q = `
SELECT a.id, a.name, COALESCE(a.description, ''), COALESCE(a.description_long, ''), COALESCE(a.image, ''),
       a.tax_rate::text, a.configurator_set_id IS NOT NULL, a.added,
       s.id, s.name
FROM articles a
LEFT JOIN suppliers s ON s.id = a.supplier_id
WHERE a.id = $1
`
	var (
		a            domain.Article
		taxRate      string
		supplierID   *int64
		supplierName *string
	)
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&a.ID, &a.Name, &a.Description, &a.DescriptionLong, &a.Image,
		&taxRate, &a.ConfiguratorSet, &a.Added,
		&supplierID, &supplierName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("article repo: find", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if a.TaxRate, err = decimal.NewFromString(taxRate); err != nil {
		return nil, fmt.Errorf("article repo: tax rate of article %d: %w", id, err)
	}
	if supplierID != nil && supplierName != nil {
		a.Supplier = &domain.Supplier{ID: *supplierID, Name: *supplierName}
	}

	if a.MainVariant, err = r.findMainVariant(ctx, id); err != nil {
		return nil, err
	}
	if a.Categories, err = r.findCategories(ctx, id); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) ListIDs(ctx context.Context) ([]int64, error) {
	const q = `SELECT id FROM articles ORDER BY id`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("article repo: list ids", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *postgresRepo) findMainVariant(ctx context.Context, articleID int64) (*domain.Variant, error) {
	const q = `
SELECT id, article_id, number, is_main, in_stock,
       price::text, COALESCE(pseudo_price, 0)::text,
       COALESCE(purchase_unit, 0)::text, COALESCE(reference_unit, 0)::text, COALESCE(unit_name, '')
FROM variants
WHERE article_id = $1 AND is_main
`
	v, err := scanVariant(r.pool.QueryRow(ctx, q, articleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("article repo: main variant", zap.Int64("article_id", articleID), zap.Error(err))
		return nil, err
	}
	return v, nil
}

func (r *postgresRepo) findCategories(ctx context.Context, articleID int64) ([]domain.Category, error) {
	const q = `
SELECT c.id, c.name, c.path
FROM categories c
JOIN article_categories ac ON ac.category_id = c.id
WHERE ac.article_id = $1
ORDER BY c.id
`
	rows, err := r.pool.Query(ctx, q, articleID)
	if err != nil {
		r.logger.Error("article repo: categories", zap.Int64("article_id", articleID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Path); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func scanVariant(row pgx.Row) (*domain.Variant, error) {
	var (
		v                                               domain.Variant
		price, pseudoPrice, purchaseUnit, referenceUnit string
	)
	err := row.Scan(&v.ID, &v.ArticleID, &v.Number, &v.IsMain, &v.InStock,
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
	return &v, nil
}
