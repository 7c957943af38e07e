package notification

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
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userKey string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, userKey, id string) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a notification. It is idempotent on id: the consumer
// reuses the event id, so a redelivered message leaves the stored row
// untouched.
func (r *PostgresRepository) Create(ctx context.Context, n *Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	_, err := r.pool.Exec(ctx, `
INSERT INTO notifications (id, user_key, order_id, title, title_bn, body, body_bn, read, created_at)
VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, FALSE, NOW())
ON CONFLICT (id) DO NOTHING`,
		n.ID, n.UserKey, n.OrderID, n.Title, n.TitleBN, n.Body, n.BodyBN,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userKey string, limit int) ([]Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, user_key, COALESCE(order_id::text, ''), title, title_bn, body, body_bn, read, created_at
FROM notifications WHERE user_key = $1 ORDER BY created_at DESC LIMIT $2`,
		userKey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select notifications: %w", err)
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserKey, &n.OrderID, &n.Title, &n.TitleBN, &n.Body, &n.BodyBN, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) MarkRead(ctx context.Context, userKey, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_key = $2`, id, userKey)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
