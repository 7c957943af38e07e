package order

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderColumnNames = []string{
	"id", "order_number", "customer_name", "phone", "address", "note", "zone",
	"payment_method", "payment_number", "trx_id", "owner_key",
	"subtotal", "delivery_fee", "total_amount", "total_items", "status", "created_at", "updated_at",
}

func orderRow(mock pgxmock.PgxPoolIface, now time.Time) *pgxmock.Rows {
	return mock.NewRows(orderColumnNames).
		AddRow("ord-1", "ABC-20260901-153004-001", "Nusrat", "01712345678", "Dhanmondi", "", "inside",
			"", "", "", "user-1",
			650.0, 70.0, 720.0, 5, StatusPending, now, now)
}

func TestRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	o := &Order{
		OrderNumber: "ABC-20260901-153004-001",
		OwnerKey:    "user-1",
		Customer:    Customer{Name: "Nusrat", Phone: "01712345678", Address: "Dhanmondi", Zone: "inside"},
		Items: []Item{
			{ProductID: "p1", Name: "Rose Face Wash", Price: 250, Quantity: 2, Total: 500},
			{ProductID: "p2", Name: "Aloe Gel", Price: 50, Quantity: 3, Total: 150},
		},
		Pricing:   Pricing{Subtotal: 650, DeliveryFee: 70, TotalAmount: 720, TotalItems: 5},
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs(pgxmock.AnyArg(), o.OrderNumber, "Nusrat", "01712345678", "Dhanmondi", "", "inside",
			"", "", "", "user-1", 650.0, 70.0, 720.0, 5, StatusPending, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for _, it := range o.Items {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO order_items`)).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), it.ProductID, it.Name, it.Price, it.Quantity, it.Total, it.Image).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	repo := NewPostgresRepository(mock)
	require.NoError(t, repo.Create(context.Background(), o))
	assert.NotEmpty(t, o.ID, "Create should assign an id")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByNumber(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE order_number = $1`)).
		WithArgs("ABC-20260901-153004-001").
		WillReturnRows(orderRow(mock, now))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM order_items WHERE order_id = $1`)).
		WithArgs("ord-1").
		WillReturnRows(mock.NewRows([]string{"product_id", "name", "price", "quantity", "total", "image"}).
			AddRow("p1", "Rose Face Wash", 250.0, 2, 500.0, "").
			AddRow("p2", "Aloe Gel", 50.0, 3, 150.0, ""))

	repo := NewPostgresRepository(mock)
	got, err := repo.GetByNumber(context.Background(), "ABC-20260901-153004-001")
	require.NoError(t, err)

	assert.Equal(t, "ord-1", got.ID)
	assert.Equal(t, "01712345678", got.Customer.Phone)
	assert.Len(t, got.Items, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE id = $1`)).
		WithArgs("missing").
		WillReturnRows(mock.NewRows(orderColumnNames))

	repo := NewPostgresRepository(mock)
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListByOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE owner_key = $1 ORDER BY created_at DESC`)).
		WithArgs("user-1").
		WillReturnRows(orderRow(mock, now))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM order_items WHERE order_id = $1`)).
		WithArgs("ord-1").
		WillReturnRows(mock.NewRows([]string{"product_id", "name", "price", "quantity", "total", "image"}))

	repo := NewPostgresRepository(mock)
	got, err := repo.ListByOwner(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ord-1", got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`)).
		WithArgs(StatusConfirmed, "ord-1", StatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewPostgresRepository(mock)
	require.NoError(t, repo.UpdateStatus(context.Background(), "ord-1", StatusPending, StatusConfirmed))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateStatusGuard(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// Someone else already advanced the order; the guarded update matches
	// no row and the caller sees not-found.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders`)).
		WithArgs(StatusConfirmed, "ord-1", StatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewPostgresRepository(mock)
	err = repo.UpdateStatus(context.Background(), "ord-1", StatusPending, StatusConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
