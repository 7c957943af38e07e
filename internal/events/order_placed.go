package events

import "time"

const (
	OrderPlacedName    = "OrderPlaced"
	OrderPlacedVersion = 1
)

// OrderPlaced is emitted once per successfully submitted order. The
// notification consumer turns it into a customer-visible record.
type OrderPlaced struct {
	OrderID      string            `json:"orderId"`
	OrderNumber  string            `json:"orderNumber"`
	OwnerKey     string            `json:"ownerKey"`
	CustomerName string            `json:"customerName"`
	Phone        string            `json:"phone"`
	Items        []OrderPlacedItem `json:"items"`
	TotalAmount  float64           `json:"totalAmount"`
	TotalItems   int               `json:"totalItems"`
	PlacedAt     time.Time         `json:"placedAt"`
}

type OrderPlacedItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
