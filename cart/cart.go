// Package cart owns the shopper's selected line items. A line's identity is
// the pair (product ID, special instructions): adding the same product with
// the same instructions merges quantities, different instructions start a
// new line. Quantity is always at least 1; a line whose quantity would drop
// to zero is removed instead.
package cart

import (
	"fmt"
	"sync"

	"github.com/foodorder/storefront/catalog"
	"github.com/foodorder/storefront/core"
)

// Line is one cart entry: a product snapshot plus quantity and optional
// free-text special instructions
type Line struct {
	Product             catalog.Product `json:"product"`
	Quantity            int             `json:"quantity"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
}

// Total returns the line total (price x quantity) in currency units
func (l Line) Total() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Cart is the line-item container. Mutations happen in response to discrete
// user actions; the mutex keeps the container safe if the host dispatches
// from more than one goroutine.
type Cart struct {
	mu     sync.Mutex
	lines  []Line
	logger core.Logger
}

// New creates an empty cart
func New(logger core.Logger) *Cart {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Cart{logger: logger}
}

// Add puts a product in the cart. If a line with the same product ID and
// instructions already exists its quantity is incremented; otherwise a new
// line is appended. Quantities below 1 are clamped to 1, preserving the
// invariant that every line has a positive quantity.
func (c *Cart) Add(p catalog.Product, quantity int, instructions string) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID && c.lines[i].SpecialInstructions == instructions {
			c.lines[i].Quantity += quantity
			c.logger.Debug("Cart line merged", map[string]interface{}{
				"product_id": p.ID,
				"quantity":   c.lines[i].Quantity,
			})
			return
		}
	}

	c.lines = append(c.lines, Line{
		Product:             p,
		Quantity:            quantity,
		SpecialInstructions: instructions,
	})
	c.logger.Debug("Cart line added", map[string]interface{}{
		"product_id": p.ID,
		"quantity":   quantity,
		"lines":      len(c.lines),
	})
}

// UpdateQuantity replaces the quantity of the line at index. A quantity of
// zero or less removes the line. An out-of-range index is a signaled fault
// and leaves the cart untouched.
func (c *Cart) UpdateQuantity(index, quantity int) error {
	if quantity <= 0 {
		return c.Remove(index)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.lines) {
		return fmt.Errorf("cart line %d: %w", index, core.ErrLineNotFound)
	}
	c.lines[index].Quantity = quantity
	return nil
}

// Remove deletes the line at index; remaining lines keep their relative order
func (c *Cart) Remove(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.lines) {
		return fmt.Errorf("cart line %d: %w", index, core.ErrLineNotFound)
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	c.logger.Debug("Cart line removed", map[string]interface{}{
		"index": index,
		"lines": len(c.lines),
	})
	return nil
}

// Clear empties the cart. Called after a completed order.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.logger.Debug("Cart cleared", nil)
}

// Lines returns a snapshot of the current line items
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...)
}

// Len returns the number of distinct lines
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Count returns the total item count across all lines
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Total returns the sum of line totals in currency units
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int64
	for _, l := range c.lines {
		total += l.Total()
	}
	return total
}
