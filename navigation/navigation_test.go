package navigation

import (
	"errors"
	"testing"

	"github.com/foodorder/storefront/auth"
	"github.com/foodorder/storefront/core"
	"github.com/foodorder/storefront/order"
)

func TestInitialState(t *testing.T) {
	c := New(nil)
	if c.Current() != ScreenMenu {
		t.Errorf("initial screen = %q, want menu", c.Current())
	}
	if c.LastOrder() != nil {
		t.Error("initial order payload should be nil")
	}
}

func TestCheckoutFlow_ClearsPayloadOnMenu(t *testing.T) {
	c := New(nil)
	o := &order.Order{ID: "1756380000000"}

	c.GoToPayment()
	if c.Current() != ScreenPayment {
		t.Fatalf("screen = %q, want payment", c.Current())
	}

	c.CompleteOrder(o)
	if c.Current() != ScreenSuccess {
		t.Fatalf("screen = %q, want success", c.Current())
	}
	if c.LastOrder() == nil || c.LastOrder().ID != o.ID {
		t.Fatal("success screen should carry the completed order")
	}

	c.GoToMenu()
	if c.Current() != ScreenMenu {
		t.Fatalf("screen = %q, want menu", c.Current())
	}
	if c.LastOrder() != nil {
		t.Error("returning to the menu must clear the order payload")
	}
}

func TestDirectSuccessToMenu_ClearsStalePayload(t *testing.T) {
	c := New(nil)
	c.CompleteOrder(&order.Order{ID: "x"})

	// No payment happened before this menu navigation; the payload must
	// still be dropped
	c.GoToMenu()
	if c.LastOrder() != nil {
		t.Error("stale order payload leaked across navigation")
	}
}

func TestAuthScreens(t *testing.T) {
	c := New(nil)

	c.GoToLogin()
	if c.Current() != ScreenLogin {
		t.Errorf("screen = %q, want login", c.Current())
	}
	c.GoToSignup()
	if c.Current() != ScreenSignup {
		t.Errorf("screen = %q, want signup", c.Current())
	}
	c.GoToLogin()
	if c.Current() != ScreenLogin {
		t.Errorf("screen = %q, want login again", c.Current())
	}
	c.GoToMenu()
	if c.Current() != ScreenMenu {
		t.Errorf("screen = %q, want menu", c.Current())
	}
}

func TestGoToAdmin_Guard(t *testing.T) {
	c := New(nil)

	if err := c.GoToAdmin(auth.RoleUser); !errors.Is(err, core.ErrPermissionDenied) {
		t.Errorf("GoToAdmin(user) error = %v, want ErrPermissionDenied", err)
	}
	if c.Current() != ScreenMenu {
		t.Errorf("refused transition changed screen to %q", c.Current())
	}

	if err := c.GoToAdmin(auth.RoleAdmin); err != nil {
		t.Fatalf("GoToAdmin(admin) failed: %v", err)
	}
	if c.Current() != ScreenAdmin {
		t.Errorf("screen = %q, want admin", c.Current())
	}

	c.GoToMenu()
	if c.Current() != ScreenMenu {
		t.Errorf("screen = %q, want menu", c.Current())
	}
}
