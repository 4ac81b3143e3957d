// Package order defines the immutable record produced by a successful
// checkout. An order exists only as the navigation payload of the success
// screen; it is never persisted.
package order

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/foodorder/storefront/cart"
)

// Customer is the contact and delivery block captured at checkout
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Totals is the cost breakdown, each amount rounded to 2 fraction digits
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
}

// FreeDelivery reports whether the delivery fee was waived
func (t Totals) FreeDelivery() bool {
	return t.DeliveryFee.IsZero()
}

// Order is one finalized purchase. Created once per successful checkout
// submission and never mutated afterwards.
type Order struct {
	ID                string      `json:"id"`
	Items             []cart.Line `json:"items"`
	Customer          Customer    `json:"customer"`
	PaymentMethod     string      `json:"paymentMethod"`
	Totals            Totals      `json:"totals"`
	PlacedAt          time.Time   `json:"placedAt"`
	EstimatedDelivery time.Time   `json:"estimatedDelivery"`
}

// NewID derives the order identifier from the placement time, in
// Unix milliseconds
func NewID(at time.Time) string {
	return strconv.FormatInt(at.UnixMilli(), 10)
}

// FormatAddress renders the single-line delivery address used on receipts
func FormatAddress(street, city, postalCode string) string {
	return fmt.Sprintf("%s, %s - %s", street, city, postalCode)
}
