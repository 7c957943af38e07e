package order

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string { return string(s) }

// allowedTransitions is the fulfillment state machine. Orders always start
// pending; delivered and cancelled are terminal.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPending:    {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed:  {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusShipped: true, StatusCancelled: true},
	StatusShipped:    {StatusDelivered: true},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to Status) bool {
	next, ok := allowedTransitions[from]
	return ok && next[to]
}

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note,omitempty"`
	Zone    string `json:"zone"`
}

type Payment struct {
	Method string `json:"method,omitempty"`
	Number string `json:"number,omitempty"`
	TrxID  string `json:"trxId,omitempty"`
}

type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
	Image     string  `json:"image,omitempty"`
}

type Pricing struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	TotalAmount float64 `json:"totalAmount"`
	TotalItems  int     `json:"totalItems"`
}

// Order is immutable once written, except Status which fulfillment advances.
type Order struct {
	ID          string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	OwnerKey    string    `json:"-"`
	Customer    Customer  `json:"customerInfo"`
	Payment     Payment   `json:"paymentInfo"`
	Items       []Item    `json:"items"`
	Pricing     Pricing   `json:"pricing"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewOrderNumber produces the human-readable, timestamp-derived number
// printed on invoices, e.g. ABC-20260901-153004-827. The random suffix
// keeps two orders placed in the same second distinct.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ABC-%s-%03d", now.UTC().Format("20060102-150405"), rand.Intn(1000))
}
