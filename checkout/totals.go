package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/foodorder/storefront/cart"
	"github.com/foodorder/storefront/order"
)

// Policy holds the checkout cost and timing rules
type Policy struct {
	// TaxRate is the fraction of the subtotal charged as tax
	TaxRate decimal.Decimal
	// DeliveryFee is the flat fee charged unless the subtotal exceeds
	// FreeDeliveryThreshold
	DeliveryFee           decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
	// SimulatedLatency is the pretend payment-processing pause
	SimulatedLatency time.Duration
	// DeliveryEstimate is added to the order time to promise a delivery slot
	DeliveryEstimate time.Duration
}

// DefaultPolicy is the standard pricing: 18% tax, a flat fee of 50
// waived above a 500 subtotal, a 2 second processing pause, and delivery
// promised 45 minutes out.
func DefaultPolicy() Policy {
	return Policy{
		TaxRate:               decimal.NewFromFloat(0.18),
		DeliveryFee:           decimal.NewFromInt(50),
		FreeDeliveryThreshold: decimal.NewFromInt(500),
		SimulatedLatency:      2 * time.Second,
		DeliveryEstimate:      45 * time.Minute,
	}
}

// Totals computes the cost breakdown for the given cart lines: subtotal,
// tax, delivery fee, and grand total, each rounded to 2 fraction digits.
// The delivery fee applies at a subtotal of exactly the threshold and is
// waived only above it.
func (p Policy) Totals(lines []cart.Line) order.Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(decimal.NewFromInt(l.Total()))
	}

	tax := subtotal.Mul(p.TaxRate).Round(2)

	fee := p.DeliveryFee
	if subtotal.GreaterThan(p.FreeDeliveryThreshold) {
		fee = decimal.Zero
	}

	return order.Totals{
		Subtotal:    subtotal.Round(2),
		Tax:         tax,
		DeliveryFee: fee.Round(2),
		Total:       subtotal.Add(tax).Add(fee).Round(2),
	}
}
