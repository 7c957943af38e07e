package notification

import "time"

// Notification is a customer-facing message. Both language variants are
// stored so the client can render whichever the shopper selected.
type Notification struct {
	ID        string    `json:"id"`
	UserKey   string    `json:"-"`
	OrderID   string    `json:"orderId,omitempty"`
	Title     string    `json:"title"`
	TitleBN   string    `json:"titleBn,omitempty"`
	Body      string    `json:"body"`
	BodyBN    string    `json:"bodyBn,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
