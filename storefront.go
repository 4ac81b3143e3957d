// Package storefront wires the catalog, cart, navigation, auth, and
// checkout controllers into one client-side ordering application. The
// presentation layer renders whatever screen the navigation controller
// reports and routes user input into the operations exposed here.
package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodorder/storefront/auth"
	"github.com/foodorder/storefront/cart"
	"github.com/foodorder/storefront/catalog"
	"github.com/foodorder/storefront/checkout"
	"github.com/foodorder/storefront/core"
	"github.com/foodorder/storefront/navigation"
	"github.com/foodorder/storefront/order"
	"github.com/foodorder/storefront/telemetry"

	"github.com/shopspring/decimal"
)

// App is one storefront instance: the five controllers plus the shared
// infrastructure they run on
type App struct {
	Catalog    *catalog.Catalog
	Cart       *cart.Cart
	Navigation *navigation.Controller
	Auth       *auth.Manager
	Checkout   *checkout.Composer

	config    *core.Config
	logger    core.Logger
	store     core.Store
	telemetry core.Telemetry

	redisStore *core.RedisStore
	otel       *telemetry.Provider
}

// New builds an App from configuration options
func New(ctx context.Context, opts ...core.Option) (*App, error) {
	cfg, err := core.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	logger := core.NewSimpleLogger(core.ParseLogLevel(cfg.Logging.Level))
	app := &App{config: cfg, logger: logger}

	if cfg.Telemetry.Enabled {
		provider, err := telemetry.New(ctx, telemetry.Config{
			ServiceName: cfg.Name,
			Endpoint:    cfg.Telemetry.Endpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("initializing telemetry: %w", err)
		}
		app.otel = provider
		app.telemetry = provider
	} else {
		app.telemetry = &core.NoOpTelemetry{}
	}

	switch cfg.Storage.Provider {
	case "redis":
		rs, err := core.NewRedisStore(core.RedisStoreOptions{
			RedisURL:  cfg.Storage.RedisURL,
			Namespace: cfg.Storage.Namespace,
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}
		app.redisStore = rs
		app.store = rs
	default:
		ms := core.NewMemoryStore()
		ms.SetLogger(logger)
		app.store = ms
	}

	if cfg.CatalogPath != "" {
		app.Catalog, err = catalog.Load(cfg.CatalogPath, logger)
		if err != nil {
			return nil, err
		}
	} else {
		app.Catalog, _ = catalog.New(nil, logger)
	}

	app.Cart = cart.New(logger)
	app.Navigation = navigation.New(logger)
	app.Auth = auth.New(ctx, app.store, auth.Options{
		Logger:           logger,
		Telemetry:        app.telemetry,
		SimulatedLatency: cfg.Auth.SimulatedLatency,
	})
	app.Checkout = checkout.NewComposer(checkout.Policy{
		TaxRate:               decimal.NewFromFloat(cfg.Checkout.TaxRate),
		DeliveryFee:           decimal.NewFromInt(cfg.Checkout.DeliveryFee),
		FreeDeliveryThreshold: decimal.NewFromInt(cfg.Checkout.FreeDeliveryThreshold),
		SimulatedLatency:      cfg.Checkout.SimulatedLatency,
		DeliveryEstimate:      cfg.Checkout.DeliveryEstimate,
	}, checkout.ComposerOptions{
		Logger:    logger,
		Telemetry: app.telemetry,
	})

	logger.Info("Storefront ready", map[string]interface{}{
		"name":     cfg.Name,
		"storage":  cfg.Storage.Provider,
		"products": app.Catalog.Len(),
	})
	return app, nil
}

// Login signs the user in and navigates by role: admins land on the admin
// dashboard, everyone else returns to the menu. On failure the screen does
// not change and the auth manager carries the message to display.
func (a *App) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	session, err := a.Auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if session.Role == auth.RoleAdmin {
		if err := a.Navigation.GoToAdmin(session.Role); err != nil {
			return session, err
		}
	} else {
		a.Navigation.GoToMenu()
	}
	return session, nil
}

// Signup registers a new account. Navigation stays on the signup screen so
// the success message can be shown; the user signs in explicitly afterwards.
func (a *App) Signup(ctx context.Context, req auth.SignupRequest) (*auth.User, error) {
	return a.Auth.Signup(ctx, req)
}

// Logout signs the user out and returns to the menu
func (a *App) Logout(ctx context.Context) {
	a.Auth.Logout(ctx)
	a.Navigation.GoToMenu()
}

// OpenAdmin navigates to the admin dashboard for the signed-in user
func (a *App) OpenAdmin() error {
	session := a.Auth.Current()
	if session == nil {
		return fmt.Errorf("admin screen requires sign-in: %w", core.ErrNotAuthenticated)
	}
	return a.Navigation.GoToAdmin(session.Role)
}

// BeginCheckout moves from the menu to the payment screen
func (a *App) BeginCheckout() {
	a.Navigation.GoToPayment()
}

// SubmitOrder runs the checkout: validates the form, composes the order,
// hands it to the navigation success transition, and clears the cart. An
// invalid form or empty cart aborts with no side effects.
func (a *App) SubmitOrder(ctx context.Context, form checkout.Form) (*order.Order, error) {
	o, err := a.Checkout.Submit(ctx, form, a.Cart.Lines())
	if err != nil {
		var verr *checkout.ValidationError
		if errors.As(err, &verr) {
			a.logger.Debug("Order submission rejected", map[string]interface{}{
				"field_errors": len(verr.Fields),
			})
		}
		return nil, err
	}

	a.Navigation.CompleteOrder(o)
	a.Cart.Clear()
	return o, nil
}

// Close releases the redis connection and flushes telemetry, if configured
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	if a.redisStore != nil {
		if err := a.redisStore.Close(); err != nil {
			firstErr = err
		}
	}
	if a.otel != nil {
		if err := a.otel.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
