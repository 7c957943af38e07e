package cart

import (
	"context"
	"errors"
)

var (
	// ErrEmptyCart is returned when checkout is attempted with no items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrCacheMiss is returned by Cache.Get when no cached cart exists.
	ErrCacheMiss = errors.New("cart not in cache")
)

// SessionStore is the device-scoped cart mirror plus the transient buy-now
// selection. It stands in for the browser's local storage: every mutation
// is written here unconditionally, regardless of authentication.
type SessionStore interface {
	GetCart(ctx context.Context, key string) (*Cart, error)
	SaveCart(ctx context.Context, key string, c *Cart) error
	DeleteCart(ctx context.Context, key string) error

	GetSelection(ctx context.Context, key string) ([]Line, error)
	SaveSelection(ctx context.Context, key string, lines []Line) error
	ClearSelection(ctx context.Context, key string) error
}

// Repository is the durable cart store for authenticated owners.
// A missing cart is reported as (nil, nil).
type Repository interface {
	GetCart(ctx context.Context, ownerKey string) (*Cart, error)
	UpsertCart(ctx context.Context, c *Cart) error
	DeleteCart(ctx context.Context, ownerKey string) error
}

// Cache sits in front of Repository for authenticated reads.
type Cache interface {
	Get(ctx context.Context, ownerKey string) (*Cart, error)
	Set(ctx context.Context, ownerKey string, c *Cart) error
	Delete(ctx context.Context, ownerKey string) error
}
