// Package seed inserts a small demo shop for manual testing.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Apply inserts demo data. It is idempotent via ON CONFLICT and fixed ids.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := seedShop(ctx, pool); err != nil {
		return err
	}
	if err := seedCatalog(ctx, pool); err != nil {
		return err
	}
	return seedOrder(ctx, pool)
}

func seedShop(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
INSERT INTO shops (id, name, host, base_path, currency, category_id, locale)
VALUES (1, 'Demo Shop', 'shop.example.com', '', 'EUR', 3, 'de_DE')
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name, host = EXCLUDED.host, currency = EXCLUDED.currency,
    category_id = EXCLUDED.category_id, locale = EXCLUDED.locale
`
	if _, err := pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("seed shop: %w", err)
	}
	return nil
}

func seedCatalog(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []struct {
		id   int64
		name string
		path string
	}{
		{3, "Demo Shop", "|3|"},
		{7, "Beverages", "|3|7|"},
		{12, "Softdrinks", "|3|7|12|"},
		{9, "Hidden Tree", "|9|"},
	}
	for _, c := range categories {
		const q = `
INSERT INTO categories (id, name, path) VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, path = EXCLUDED.path
`
		if _, err := pool.Exec(ctx, q, c.id, c.name, c.path); err != nil {
			return fmt.Errorf("seed category %d: %w", c.id, err)
		}
	}

	const supplierQ = `
INSERT INTO suppliers (id, name) VALUES (1, 'Demo Drinks Ltd')
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
`
	if _, err := pool.Exec(ctx, supplierQ); err != nil {
		return fmt.Errorf("seed supplier: %w", err)
	}

	articles := []struct {
		id           int64
		name         string
		configurator bool
	}{
		{1, "Demo Cola 0.4l", false},
		{2, "Demo Shirt", true},
	}
	for _, a := range articles {
		const q = `
INSERT INTO articles (id, name, description, description_long, image, tax_rate, configurator_set_id, supplier_id)
VALUES ($1, $2, 'Short description', 'A much longer description.', 'demo.jpg', 19.00, CASE WHEN $3 THEN 1 END, 1)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, configurator_set_id = EXCLUDED.configurator_set_id
`
		if _, err := pool.Exec(ctx, q, a.id, a.name, a.configurator); err != nil {
			return fmt.Errorf("seed article %d: %w", a.id, err)
		}
	}

	variants := []struct {
		id                                int64
		articleID                         int64
		number                            string
		isMain                            bool
		inStock                           int
		price                             string
		purchaseUnit, referenceUnit, unit any
	}{
		{1, 1, "SW10001", true, 25, "1.68", "0.4", "1", "l"},
		{2, 2, "SW10002", true, 0, "19.99", nil, nil, nil},
		{3, 2, "SW10002.1", false, 4, "19.99", nil, nil, nil},
	}
	for _, v := range variants {
		const q = `
INSERT INTO variants (id, article_id, number, is_main, in_stock, price, purchase_unit, reference_unit, unit_name)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET in_stock = EXCLUDED.in_stock, price = EXCLUDED.price
`
		if _, err := pool.Exec(ctx, q, v.id, v.articleID, v.number, v.isMain, v.inStock, v.price, v.purchaseUnit, v.referenceUnit, v.unit); err != nil {
			return fmt.Errorf("seed variant %s: %w", v.number, err)
		}
	}

	links := [][2]int64{{1, 12}, {2, 7}, {2, 9}}
	for _, l := range links {
		const q = `
INSERT INTO article_categories (article_id, category_id) VALUES ($1, $2)
ON CONFLICT DO NOTHING
`
		if _, err := pool.Exec(ctx, q, l[0], l[1]); err != nil {
			return fmt.Errorf("seed article category %v: %w", l, err)
		}
	}
	return nil
}

func seedOrder(ctx context.Context, pool *pgxpool.Pool) error {
	const orderQ = `
INSERT INTO orders (id, number, currency, invoice_shipping)
VALUES (1, '20001', 'EUR', 4.99)
ON CONFLICT (id) DO UPDATE SET invoice_shipping = EXCLUDED.invoice_shipping
`
	if _, err := pool.Exec(ctx, orderQ); err != nil {
		return fmt.Errorf("seed order: %w", err)
	}

	details := []struct {
		id        int64
		articleID any
		number    string
		name      string
		quantity  string
		price     string
	}{
		{1, int64(1), "SW10001", "Demo Cola 0.4l", "2", "1.68"},
		{2, nil, "", "Legacy product (removed)", "1", "9.99"},
	}
	for _, d := range details {
		const q = `
INSERT INTO order_details (id, order_id, article_id, article_number, article_name, quantity, price)
VALUES ($1, 1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET quantity = EXCLUDED.quantity, price = EXCLUDED.price
`
		if _, err := pool.Exec(ctx, q, d.id, d.articleID, d.number, d.name, d.quantity, d.price); err != nil {
			return fmt.Errorf("seed order detail %d: %w", d.id, err)
		}
	}
	return nil
}
