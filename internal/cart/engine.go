package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/identity"
)

// Engine owns the cart/order-intent lifecycle. Every mutation is written
// to the session store (device scope) unconditionally and, for
// authenticated owners, to the durable repository as well. Reads for
// authenticated owners go through the cache with singleflight collapsing
// concurrent misses.
type Engine struct {
	sessions SessionStore
	repo     Repository
	cache    Cache
	sfg      singleflight.Group
}

func NewEngine(sessions SessionStore, repo Repository, cache Cache) *Engine {
	return &Engine{
		sessions: sessions,
		repo:     repo,
		cache:    cache,
	}
}

// Get returns the current cart for the owner. Authenticated owners are
// served the durable cart for their user id; anonymous owners the
// device-scoped one. On login the remote cart simply replaces whatever the
// device held; anonymous carts are not merged.
func (e *Engine) Get(ctx context.Context, owner identity.Owner) (*Cart, error) {
	if !owner.Authenticated() {
		return e.sessions.GetCart(ctx, owner.Key())
	}

	v, err, _ := e.sfg.Do(owner.Key(), func() (interface{}, error) {
		c, err := e.cache.Get(ctx, owner.Key())
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			log.Warn().Err(err).Msg("cart cache read failed, falling back to repository")
		}

		c, err = e.repo.GetCart(ctx, owner.Key())
		if err != nil {
			return nil, fmt.Errorf("load cart: %w", err)
		}
		if c == nil {
			c = &Cart{OwnerKey: owner.Key()}
		}

		if err := e.cache.Set(ctx, owner.Key(), c); err != nil {
			log.Warn().Err(err).Msg("cart cache set failed")
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}

	// Every caller that joined the in-flight call receives the same
	// pointer; hand out copies so no two callers mutate shared state.
	return v.(*Cart).Clone(), nil
}

func (e *Engine) AddToCart(ctx context.Context, owner identity.Owner, line Line) (*Cart, error) {
	return e.mutate(ctx, owner, func(c *Cart) {
		c.Add(line)
	})
}

func (e *Engine) UpdateQuantity(ctx context.Context, owner identity.Owner, productID string, delta int) (*Cart, error) {
	return e.mutate(ctx, owner, func(c *Cart) {
		c.UpdateQuantity(productID, delta)
	})
}

func (e *Engine) SetQuantity(ctx context.Context, owner identity.Owner, productID string, quantity int) (*Cart, error) {
	return e.mutate(ctx, owner, func(c *Cart) {
		c.SetQuantity(productID, quantity)
	})
}

func (e *Engine) RemoveFromCart(ctx context.Context, owner identity.Owner, productID string) (*Cart, error) {
	return e.mutate(ctx, owner, func(c *Cart) {
		c.Remove(productID)
	})
}

// ClearCart empties both the cart and the buy-now selection and persists
// the empty cart.
func (e *Engine) ClearCart(ctx context.Context, owner identity.Owner) error {
	if err := e.sessions.ClearSelection(ctx, owner.Key()); err != nil {
		log.Warn().Err(err).Msg("clear buy-now selection failed")
	}
	_, err := e.mutate(ctx, owner, func(c *Cart) {
		c.Lines = nil
	})
	return err
}

// BuyNow records the order intent for checkout. With a line it becomes a
// single-line selection; without one it snapshots the current cart. The
// persistent cart is never touched.
func (e *Engine) BuyNow(ctx context.Context, owner identity.Owner, line *Line) error {
	if line != nil {
		return e.BuyNowSingle(ctx, owner, *line)
	}

	c, err := e.Get(ctx, owner)
	if err != nil {
		return err
	}
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return e.sessions.SaveSelection(ctx, owner.Key(), lines)
}

func (e *Engine) BuyNowSingle(ctx context.Context, owner identity.Owner, line Line) error {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	return e.sessions.SaveSelection(ctx, owner.Key(), []Line{line})
}

// CheckoutIntent resolves what an order would contain right now: the
// buy-now selection when one exists, otherwise the cart. An empty intent
// yields ErrEmptyCart.
func (e *Engine) CheckoutIntent(ctx context.Context, owner identity.Owner) ([]Line, error) {
	sel, err := e.sessions.GetSelection(ctx, owner.Key())
	if err != nil {
		return nil, fmt.Errorf("load buy-now selection: %w", err)
	}
	if len(sel) > 0 {
		return sel, nil
	}

	c, err := e.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if c.Empty() {
		return nil, ErrEmptyCart
	}
	return c.Lines, nil
}

// ClearAfterOrder wipes both the cart and the selection once an order has
// been written. Failures here are logged, not returned: the order exists,
// a stale cart is merely cosmetic and self-corrects on the next mutation.
func (e *Engine) ClearAfterOrder(ctx context.Context, owner identity.Owner) {
	if err := e.ClearCart(ctx, owner); err != nil {
		log.Warn().Err(err).Str("owner", owner.Key()).Msg("clear cart after order failed")
	}
}

func (e *Engine) mutate(ctx context.Context, owner identity.Owner, apply func(*Cart)) (*Cart, error) {
	c, err := e.Get(ctx, owner)
	if err != nil {
		return nil, err
	}

	apply(c)
	c.OwnerKey = owner.Key()
	c.UpdatedAt = time.Now().UTC()

	return c, e.persist(ctx, owner, c)
}

// persist writes the full cart to the session store unconditionally and to
// the durable repository when the owner is authenticated.
func (e *Engine) persist(ctx context.Context, owner identity.Owner, c *Cart) error {
	sessionKey := owner.DeviceKey
	if sessionKey == "" {
		sessionKey = owner.Key()
	}
	if err := e.sessions.SaveCart(ctx, sessionKey, c); err != nil {
		// Durable write still matters for authenticated owners, so only
		// fail hard when the session store was the sole destination.
		if !owner.Authenticated() {
			return fmt.Errorf("persist cart: %w", err)
		}
		log.Warn().Err(err).Msg("session cart write failed")
	}

	if !owner.Authenticated() {
		return nil
	}

	if err := e.repo.UpsertCart(ctx, c); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	if err := e.cache.Delete(ctx, owner.Key()); err != nil {
		log.Warn().Err(err).Msg("cart cache invalidation failed")
	}
	return nil
}
