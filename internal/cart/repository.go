package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) GetCart(ctx context.Context, ownerKey string) (*Cart, error) {
	var (
		cartID string
		c      Cart
	)
	row := r.pool.QueryRow(ctx, `SELECT id, owner_key, updated_at FROM carts WHERE owner_key = $1`, ownerKey)
	if err := row.Scan(&cartID, &c.OwnerKey, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// caller decides whether absence is an empty cart or a 404
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT product_id, name, name_bn, price, image, quantity FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.Name, &l.NameBN, &l.Price, &l.Image, &l.Quantity); err != nil {
			return nil, err
		}
		c.Lines = append(c.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &c, nil
}

// UpsertCart replaces the stored cart wholesale: the engine always persists
// the full cart after a mutation, so delete-and-reinsert keeps the items
// table exactly in step with memory.
func (r *PostgresRepository) UpsertCart(ctx context.Context, c *Cart) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cartID string
	err = tx.QueryRow(ctx, `
INSERT INTO carts (id, owner_key, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (owner_key) DO UPDATE SET updated_at = NOW()
RETURNING id
`, uuid.NewString(), c.OwnerKey).Scan(&cartID)
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}

	for _, l := range c.Lines {
		_, err = tx.Exec(ctx,
			`INSERT INTO cart_items (id, cart_id, product_id, name, name_bn, price, image, quantity)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.NewString(), cartID, l.ProductID, l.Name, l.NameBN, l.Price, l.Image, l.Quantity,
		)
		if err != nil {
			return err
		}
	}

	c.UpdatedAt = time.Now().UTC()
	return tx.Commit(ctx)
}

func (r *PostgresRepository) DeleteCart(ctx context.Context, ownerKey string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE owner_key = $1`, ownerKey)
	return err
}
