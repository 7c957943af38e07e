package cart

import "time"

// Line is one product entry in a cart. A cart never holds two lines for
// the same product id.
type Line struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	NameBN    string  `json:"nameBn,omitempty"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

type Cart struct {
	OwnerKey  string    `json:"ownerKey"`
	Lines     []Line    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the cart, including its lines.
func (c *Cart) Clone() *Cart {
	cp := *c
	cp.Lines = append([]Line(nil), c.Lines...)
	return &cp
}

// Add merges a line into the cart: an existing line for the same product
// gets its quantity incremented, otherwise the line is appended. Quantities
// below one default to one.
func (c *Cart) Add(l Line) {
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == l.ProductID {
			c.Lines[i].Quantity += l.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, l)
}

// UpdateQuantity adds delta (possibly negative) to the matching line.
// A resulting quantity of zero or less removes the line. Returns false
// when the product is not in the cart.
func (c *Cart) UpdateQuantity(productID string, delta int) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity += delta
			if c.Lines[i].Quantity <= 0 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			}
			return true
		}
	}
	return false
}

// SetQuantity replaces the matching line's quantity. Zero or negative
// removes the line. Returns false when the product is not in the cart.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			if quantity <= 0 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			} else {
				c.Lines[i].Quantity = quantity
			}
			return true
		}
	}
	return false
}

// Remove deletes the matching line unconditionally.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// TotalItems and TotalPrice are recomputed on every read rather than
// cached, so they can never go stale.
func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, l := range c.Lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}
