package banner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	ListActive(ctx context.Context) ([]Banner, error)
	Create(ctx context.Context, b *Banner) error
	Delete(ctx context.Context, id string) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]Banner, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, title, title_bn, image, link, active, created_at
FROM banners WHERE active ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select banners: %w", err)
	}
	defer rows.Close()

	var out []Banner
	for rows.Next() {
		var b Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.TitleBN, &b.Image, &b.Link, &b.Active, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, b *Banner) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO banners (id, title, title_bn, image, link, active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW())
RETURNING created_at`,
		b.ID, b.Title, b.TitleBN, b.Image, b.Link, b.Active,
	).Scan(&b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert banner: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
