// Package navigation tracks which screen the storefront shows. It is a
// small state machine over named screens with one piece of attached data:
// the order displayed on the success screen. The payload is cleared whenever
// the machine returns to the menu, so a stale receipt can never leak into a
// later session.
package navigation

import (
	"fmt"
	"sync"

	"github.com/foodorder/storefront/auth"
	"github.com/foodorder/storefront/core"
	"github.com/foodorder/storefront/order"
)

// Screen is one of the storefront's named screens
type Screen string

const (
	ScreenMenu    Screen = "menu"
	ScreenLogin   Screen = "login"
	ScreenSignup  Screen = "signup"
	ScreenPayment Screen = "payment"
	ScreenSuccess Screen = "success"
	ScreenAdmin   Screen = "admin"
)

// Controller owns the current screen and the success-screen order payload.
// The machine starts on the menu and runs for the life of the session.
type Controller struct {
	mu        sync.Mutex
	current   Screen
	lastOrder *order.Order
	logger    core.Logger
}

// New creates a controller showing the menu
func New(logger core.Logger) *Controller {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Controller{current: ScreenMenu, logger: logger}
}

// Current returns the active screen
func (c *Controller) Current() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// LastOrder returns the order attached to the success screen, or nil
func (c *Controller) LastOrder() *order.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastOrder
}

func (c *Controller) transition(to Screen) {
	c.mu.Lock()
	from := c.current
	c.current = to
	if to == ScreenMenu {
		c.lastOrder = nil
	}
	c.mu.Unlock()

	c.logger.Debug("Screen changed", map[string]interface{}{
		"from": from,
		"to":   to,
	})
}

// GoToMenu shows the menu and clears any attached order
func (c *Controller) GoToMenu() {
	c.transition(ScreenMenu)
}

// GoToLogin shows the sign-in screen
func (c *Controller) GoToLogin() {
	c.transition(ScreenLogin)
}

// GoToSignup shows the registration screen
func (c *Controller) GoToSignup() {
	c.transition(ScreenSignup)
}

// GoToPayment shows the checkout screen
func (c *Controller) GoToPayment() {
	c.transition(ScreenPayment)
}

// CompleteOrder shows the success screen carrying the finished order
func (c *Controller) CompleteOrder(o *order.Order) {
	c.mu.Lock()
	c.current = ScreenSuccess
	c.lastOrder = o
	c.mu.Unlock()

	c.logger.Info("Order confirmed", map[string]interface{}{
		"order_id": o.ID,
		"total":    o.Totals.Total,
	})
}

// GoToAdmin shows the admin dashboard. The controller enforces the guard
// itself: any role other than admin is refused with
// core.ErrPermissionDenied and the screen does not change.
func (c *Controller) GoToAdmin(role auth.Role) error {
	if role != auth.RoleAdmin {
		c.logger.Warn("Admin screen refused", map[string]interface{}{"role": role})
		return fmt.Errorf("admin screen requires the admin role: %w", core.ErrPermissionDenied)
	}
	c.transition(ScreenAdmin)
	return nil
}
