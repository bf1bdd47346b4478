package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InsufficientStockError is returned when a cart mutation would push a line's
// quantity past the product's stock on hand. The cart is left unchanged.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %d available, %d requested",
		e.ProductName, e.Available, e.Requested)
}

// CartLine is one product/quantity pairing in the sale-in-progress. Product
// holds the stock snapshot captured at the time of the last mutation; it is
// not re-fetched per operation, so a stale snapshot is possible when two
// sessions sell the same product concurrently.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns the line total in cents
func (l *CartLine) LineTotal() int64 {
	return l.Product.SellingPrice * int64(l.Quantity)
}

// Cart is the in-memory sale-in-progress for one POS session: an ordered
// collection of lines, unique by product ID. Every line satisfies
// 0 < quantity <= snapshot stock; a line whose quantity would drop to zero
// or below is removed rather than kept at zero.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for a POS session
func NewCart(sessionID string) *Cart {
	return &Cart{
		SessionID: sessionID,
		Lines:     []CartLine{},
		UpdatedAt: time.Now(),
	}
}

// findLine returns the index of the line for the given product, or -1
func (c *Cart) findLine(productID uuid.UUID) int {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddProduct appends a new line with quantity 1, or increments an existing
// line by 1. The increment fails with InsufficientStockError when it would
// exceed the product's stock snapshot; the cart is left unchanged.
func (c *Cart) AddProduct(product *Product) error {
	i := c.findLine(product.ID)
	if i < 0 {
		if product.Quantity < 1 {
			return &InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Quantity,
				Requested:   1,
			}
		}
		c.Lines = append(c.Lines, CartLine{Product: *product, Quantity: 1})
		c.UpdatedAt = time.Now()
		return nil
	}

	if c.Lines[i].Quantity+1 > product.Quantity {
		return &InsufficientStockError{
			ProductName: product.Name,
			Available:   product.Quantity,
			Requested:   c.Lines[i].Quantity + 1,
		}
	}
	c.Lines[i].Product = *product // refresh the stock snapshot
	c.Lines[i].Quantity++
	c.UpdatedAt = time.Now()
	return nil
}

// UpdateQuantity adjusts a line's quantity by delta. A resulting quantity of
// zero or below removes the line. A resulting quantity above the stock
// snapshot fails with InsufficientStockError and leaves the line unchanged.
// Unknown product IDs are a no-op.
func (c *Cart) UpdateQuantity(productID uuid.UUID, delta int) error {
	i := c.findLine(productID)
	if i < 0 {
		return nil
	}

	newQuantity := c.Lines[i].Quantity + delta
	if newQuantity <= 0 {
		c.Remove(productID)
		return nil
	}
	if newQuantity > c.Lines[i].Product.Quantity {
		return &InsufficientStockError{
			ProductName: c.Lines[i].Product.Name,
			Available:   c.Lines[i].Product.Quantity,
			Requested:   newQuantity,
		}
	}
	c.Lines[i].Quantity = newQuantity
	c.UpdatedAt = time.Now()
	return nil
}

// Remove deletes the line for the given product; no-op when absent
func (c *Cart) Remove(productID uuid.UUID) {
	i := c.findLine(productID)
	if i < 0 {
		return
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	c.UpdatedAt = time.Now()
}

// Clear resets the cart to empty
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
	c.UpdatedAt = time.Now()
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalItems returns the summed quantity across all lines
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.Lines {
		total += c.Lines[i].Quantity
	}
	return total
}

// SubTotalCents returns the cart subtotal in cents
func (c *Cart) SubTotalCents() int64 {
	var total int64
	for i := range c.Lines {
		total += c.Lines[i].LineTotal()
	}
	return total
}
