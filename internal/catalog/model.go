package catalog

import "time"

// Product carries both language variants of its copy; the client renders
// whichever the shopper selected.
type Product struct {
	ID            string    `json:"id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	NameBN        string    `json:"nameBn,omitempty"`
	Description   string    `json:"description,omitempty"`
	DescriptionBN string    `json:"descriptionBn,omitempty"`
	Price         float64   `json:"price"`
	OldPrice      *float64  `json:"oldPrice,omitempty"`
	Image         string    `json:"image,omitempty"`
	Category      string    `json:"category,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	Featured      bool      `json:"featured"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ListFilter narrows a catalog listing. Zero values mean "no filter".
type ListFilter struct {
	Category string
	Featured bool
	Limit    int
	Offset   int
}
