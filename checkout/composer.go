// Package checkout validates the payment form, computes the cost breakdown,
// and composes the final order record. Submission is guarded against
// re-entrant calls: a second submit while one is processing fails with
// core.ErrOperationPending instead of producing two orders.
package checkout

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/foodorder/storefront/cart"
	"github.com/foodorder/storefront/core"
	"github.com/foodorder/storefront/order"
)

// ValidationError carries the field-scoped messages of a rejected form.
// It matches core.ErrValidationFailed under errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout form invalid (%d field errors)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return core.ErrValidationFailed
}

// Composer turns a valid form and a cart snapshot into an order
type Composer struct {
	policy    Policy
	logger    core.Logger
	telemetry core.Telemetry
	now       func() time.Time
	busy      atomic.Bool
}

// ComposerOptions configures a Composer
type ComposerOptions struct {
	Logger    core.Logger
	Telemetry core.Telemetry
}

// NewComposer creates a composer with the given policy
func NewComposer(policy Policy, opts ComposerOptions) *Composer {
	logger := opts.Logger
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	telemetry := opts.Telemetry
	if telemetry == nil {
		telemetry = &core.NoOpTelemetry{}
	}
	return &Composer{
		policy:    policy,
		logger:    logger,
		telemetry: telemetry,
		now:       time.Now,
	}
}

// Policy returns the cost and timing rules in effect
func (c *Composer) Policy() Policy {
	return c.policy
}

// Totals computes the current cost breakdown for display alongside the form
func (c *Composer) Totals(lines []cart.Line) order.Totals {
	return c.policy.Totals(lines)
}

// Submit validates the form and, after the simulated processing pause,
// produces the immutable order record. An invalid form aborts with a
// *ValidationError and no side effects. An empty cart aborts with
// core.ErrEmptyCart.
func (c *Composer) Submit(ctx context.Context, form Form, lines []cart.Line) (*order.Order, error) {
	if errs := Validate(form); len(errs) > 0 {
		c.logger.Debug("Checkout form rejected", map[string]interface{}{
			"field_errors": len(errs),
		})
		return nil, &ValidationError{Fields: errs}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("nothing to order: %w", core.ErrEmptyCart)
	}

	if !c.busy.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("checkout.Submit: %w", core.ErrOperationPending)
	}
	defer c.busy.Store(false)

	ctx, span := c.telemetry.StartSpan(ctx, "checkout.Submit")
	defer span.End()

	if c.policy.SimulatedLatency > 0 {
		select {
		case <-time.After(c.policy.SimulatedLatency):
		case <-ctx.Done():
			span.RecordError(ctx.Err())
			return nil, ctx.Err()
		}
	}

	placedAt := c.now()
	o := &order.Order{
		ID:    order.NewID(placedAt),
		Items: append([]cart.Line(nil), lines...),
		Customer: order.Customer{
			Name:    form.FirstName + " " + form.LastName,
			Email:   form.Email,
			Phone:   form.Phone,
			Address: order.FormatAddress(form.Address, form.City, form.PostalCode),
		},
		PaymentMethod:     form.PaymentMethod,
		Totals:            c.policy.Totals(lines),
		PlacedAt:          placedAt,
		EstimatedDelivery: placedAt.Add(c.policy.DeliveryEstimate),
	}

	span.SetAttribute("order.id", o.ID)
	span.SetAttribute("order.total", o.Totals.Total.String())
	c.telemetry.RecordMetric("checkout.orders", 1, map[string]string{
		"payment_method": o.PaymentMethod,
	})
	c.logger.Info("Order composed", map[string]interface{}{
		"order_id":       o.ID,
		"items":          len(o.Items),
		"total":          o.Totals.Total,
		"payment_method": o.PaymentMethod,
	})
	return o, nil
}
