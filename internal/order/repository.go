package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*Order, error)
	ListByOwner(ctx context.Context, ownerKey string) ([]Order, error)
	ListByPhone(ctx context.Context, phone string) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, from, to Status) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const orderColumns = `id, order_number, customer_name, phone, address, note, zone,
payment_method, payment_number, trx_id, owner_key,
subtotal, delivery_fee, total_amount, total_items, status, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
INSERT INTO orders (id, order_number, customer_name, phone, address, note, zone,
                    payment_method, payment_number, trx_id, owner_key,
                    subtotal, delivery_fee, total_amount, total_items, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $17)`,
		o.ID, o.OrderNumber, o.Customer.Name, o.Customer.Phone, o.Customer.Address,
		o.Customer.Note, o.Customer.Zone,
		o.Payment.Method, o.Payment.Number, o.Payment.TrxID, o.OwnerKey,
		o.Pricing.Subtotal, o.Pricing.DeliveryFee, o.Pricing.TotalAmount, o.Pricing.TotalItems,
		o.Status, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range o.Items {
		_, err = tx.Exec(ctx, `
INSERT INTO order_items (id, order_id, product_id, name, price, quantity, total, image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.NewString(), o.ID, it.ProductID, it.Name, it.Price, it.Quantity, it.Total, it.Image,
		)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*Order, error) {
	var o Order
	row := r.pool.QueryRow(ctx, query, arg)
	if err := scanOrder(row, &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	if err := r.loadItems(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerKey string) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE owner_key = $1 ORDER BY created_at DESC`, ownerKey)
}

func (r *PostgresRepository) ListByPhone(ctx context.Context, phone string) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE phone = $1 ORDER BY created_at DESC`, phone)
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg any) ([]Order, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateStatus performs a guarded advance: the row is only touched when it
// still carries the status the caller observed, so a concurrent admin
// action cannot skip a step.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, o *Order) error {
	rows, err := r.pool.Query(ctx,
		`SELECT product_id, name, price, quantity, total, image FROM order_items WHERE order_id = $1`, o.ID)
	if err != nil {
		return fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Price, &it.Quantity, &it.Total, &it.Image); err != nil {
			return fmt.Errorf("scan order_item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

func scanOrder(row pgx.Row, o *Order) error {
	return row.Scan(
		&o.ID, &o.OrderNumber, &o.Customer.Name, &o.Customer.Phone, &o.Customer.Address,
		&o.Customer.Note, &o.Customer.Zone,
		&o.Payment.Method, &o.Payment.Number, &o.Payment.TrxID, &o.OwnerKey,
		&o.Pricing.Subtotal, &o.Pricing.DeliveryFee, &o.Pricing.TotalAmount, &o.Pricing.TotalItems,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
}
