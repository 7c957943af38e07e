package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("product not found")

type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	Search(ctx context.Context, query string, limit int) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Upsert(ctx context.Context, p *Product) error
	SetActive(ctx context.Context, id string, active bool) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = `id, sku, name, name_bn, description, description_bn,
price, old_price, image, category, tags, featured, active, created_at, updated_at`

func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	// Category and featured narrow the listing; empty/false skip the filter.
	query := `SELECT ` + productColumns + ` FROM products
WHERE active
  AND ($1 = '' OR category = $1)
  AND (NOT $2 OR featured)
ORDER BY created_at DESC LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, filter.Category, filter.Featured, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// Search matches case-insensitively on either language name and on tags.
func (r *PostgresRepository) Search(ctx context.Context, query string, limit int) ([]Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+productColumns+` FROM products
WHERE active
  AND (name ILIKE '%' || $1 || '%'
       OR name_bn ILIKE '%' || $1 || '%'
       OR $1 ILIKE ANY(tags))
ORDER BY featured DESC, created_at DESC LIMIT $2`,
		query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err := scanProduct(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO products (id, sku, name, name_bn, description, description_bn,
                      price, old_price, image, category, tags, featured, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
ON CONFLICT (sku) DO UPDATE
SET name = EXCLUDED.name, name_bn = EXCLUDED.name_bn,
    description = EXCLUDED.description, description_bn = EXCLUDED.description_bn,
    price = EXCLUDED.price, old_price = EXCLUDED.old_price,
    image = EXCLUDED.image, category = EXCLUDED.category, tags = EXCLUDED.tags,
    featured = EXCLUDED.featured, active = EXCLUDED.active, updated_at = NOW()
RETURNING id, created_at, updated_at`,
		p.ID, p.SKU, p.Name, p.NameBN, p.Description, p.DescriptionBN,
		p.Price, p.OldPrice, p.Image, p.Category, p.Tags, p.Featured, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	var out []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.NameBN, &p.Description, &p.DescriptionBN,
		&p.Price, &p.OldPrice, &p.Image, &p.Category, &p.Tags,
		&p.Featured, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
}
