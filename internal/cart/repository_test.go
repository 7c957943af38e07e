package cart

import (
	"context"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepository_GetCart(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, owner_key, updated_at FROM carts WHERE owner_key = $1`)).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_key", "updated_at"}).
			AddRow("2d2f0f66-1111-4222-8333-444455556666", "user-1", now))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT product_id, name, name_bn, price, image, quantity FROM cart_items WHERE cart_id = $1`)).
		WithArgs("2d2f0f66-1111-4222-8333-444455556666").
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "name", "name_bn", "price", "image", "quantity"}).
			AddRow("p1", "Night Cream", "নাইট ক্রিম", 550.0, "cream.jpg", 2))

	c, err := repo.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "user-1", c.OwnerKey)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "p1", c.Lines[0].ProductID)
	assert.Equal(t, 2, c.Lines[0].Quantity)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetCartMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, owner_key, updated_at FROM carts WHERE owner_key = $1`)).
		WithArgs("nobody").
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_key", "updated_at"}))

	c, err := repo.GetCart(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, c)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpsertCart(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	c := &Cart{
		OwnerKey: "user-1",
		Lines: []Line{
			{ProductID: "p1", Name: "Serum", Price: 450, Quantity: 1},
			{ProductID: "p2", Name: "Mask", Price: 120, Quantity: 3},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO carts`)).
		WithArgs(pgxmock.AnyArg(), "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("cart-id-1"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE cart_id = $1`)).
		WithArgs("cart-id-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO cart_items`)).
		WithArgs(pgxmock.AnyArg(), "cart-id-1", "p1", "Serum", "", 450.0, "", 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO cart_items`)).
		WithArgs(pgxmock.AnyArg(), "cart-id-1", "p2", "Mask", "", 120.0, "", 3).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpsertCart(context.Background(), c))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteCart(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM carts WHERE owner_key = $1`)).
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.DeleteCart(context.Background(), "user-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
