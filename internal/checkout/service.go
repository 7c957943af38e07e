package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/cart"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/events"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/identity"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/middleware"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/order"
)

// IntentSource is the slice of the cart engine checkout needs: the current
// order intent, and cleanup once the order is durable.
type IntentSource interface {
	CheckoutIntent(ctx context.Context, owner identity.Owner) ([]cart.Line, error)
	ClearAfterOrder(ctx context.Context, owner identity.Owner)
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, correlationID string, payload events.OrderPlaced) error
}

// Service turns the current order intent plus the customer's form into a
// durable order. A checkout attempt moves
// Idle -> Validating -> {Invalid | Submitting -> {Failed | Succeeded}};
// only Succeeded clears the cart and buy-now selection.
type Service struct {
	engine    IntentSource
	orders    order.Repository
	publisher Publisher
}

func NewService(engine IntentSource, orders order.Repository, publisher Publisher) *Service {
	return &Service{engine: engine, orders: orders, publisher: publisher}
}

// Submit validates, persists exactly one order record, then clears the
// cart state. On any failure before the order is written, cart and
// selection are left intact so the customer can retry.
func (s *Service) Submit(ctx context.Context, owner identity.Owner, form Form) (*order.Order, error) {
	lines, err := s.engine.CheckoutIntent(ctx, owner)
	if err != nil {
		return nil, err
	}

	if err := form.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := buildOrder(owner, form, lines, now)

	if err := s.orders.Create(ctx, o); err != nil {
		log.Error().Err(err).Str("owner", owner.Key()).Msg("persist order failed")
		return nil, fmt.Errorf("submit order: %w", err)
	}

	// The order exists from here on. Event publish and cart cleanup are
	// best-effort: a lost notification never un-places an order.
	if err := s.publisher.PublishOrderPlaced(ctx, middleware.GetCorrelationID(ctx), orderPlacedPayload(o)); err != nil {
		log.Warn().Err(err).Str("order_number", o.OrderNumber).Msg("publish order placed failed")
	}

	s.engine.ClearAfterOrder(ctx, owner)

	log.Info().
		Str("order_number", o.OrderNumber).
		Str("owner", owner.Key()).
		Float64("total", o.Pricing.TotalAmount).
		Msg("order submitted")
	return o, nil
}

func buildOrder(owner identity.Owner, form Form, lines []cart.Line, now time.Time) *order.Order {
	items := make([]order.Item, 0, len(lines))
	subtotal := 0.0
	totalItems := 0
	for _, l := range lines {
		lineTotal := l.Price * float64(l.Quantity)
		items = append(items, order.Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Total:     lineTotal,
			Image:     l.Image,
		})
		subtotal += lineTotal
		totalItems += l.Quantity
	}

	fee := DeliveryFee(form.Zone)

	return &order.Order{
		OrderNumber: order.NewOrderNumber(now),
		OwnerKey:    owner.Key(),
		Customer: order.Customer{
			Name:    strings.TrimSpace(form.Name),
			Phone:   strings.TrimSpace(form.Phone),
			Address: strings.TrimSpace(form.Address),
			Note:    strings.TrimSpace(form.Note),
			Zone:    string(form.Zone),
		},
		Payment: order.Payment{
			Method: strings.TrimSpace(form.PaymentMethod),
			Number: strings.TrimSpace(form.PaymentNumber),
			TrxID:  strings.TrimSpace(form.TrxID),
		},
		Items: items,
		Pricing: order.Pricing{
			Subtotal:    subtotal,
			DeliveryFee: fee,
			TotalAmount: subtotal + fee,
			TotalItems:  totalItems,
		},
		Status:    order.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func orderPlacedPayload(o *order.Order) events.OrderPlaced {
	items := make([]events.OrderPlacedItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, events.OrderPlacedItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return events.OrderPlaced{
		OrderID:      o.ID,
		OrderNumber:  o.OrderNumber,
		OwnerKey:     o.OwnerKey,
		CustomerName: o.Customer.Name,
		Phone:        o.Customer.Phone,
		Items:        items,
		TotalAmount:  o.Pricing.TotalAmount,
		TotalItems:   o.Pricing.TotalItems,
		PlacedAt:     o.CreatedAt,
	}
}
