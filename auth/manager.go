// Package auth implements the mock authentication and session layer: two
// fixed demo accounts, a locally persisted registered-user list, and a
// current-session pointer that survives restarts through the state port.
//
// Login and signup carry a configurable fixed delay standing in for a
// network round trip. While one call is pending, further calls fail with
// core.ErrOperationPending instead of racing the first.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/foodorder/storefront/core"
)

// Storage slot names. Kept stable so state written by one incarnation is
// readable by the next.
const (
	currentUserKey     = "currentUser"
	registeredUsersKey = "registeredUsers"
)

// User-facing messages. The login failure message is deliberately uniform:
// it never reveals whether the email exists.
const (
	msgInvalidCredentials = "Invalid email or password"
	msgLoginFailed        = "Login failed. Please try again."
	msgAccountExists      = "An account with this email already exists"
	msgSignupFailed       = "Registration failed. Please try again."
	msgSignupSuccess      = "Account created successfully! Please sign in."
)

// SignupRequest carries the registration form fields
type SignupRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

// Options configures a Manager
type Options struct {
	Logger    core.Logger
	Telemetry core.Telemetry
	// SimulatedLatency is the fixed pause applied to Login and Signup.
	// Zero disables the pause.
	SimulatedLatency time.Duration
}

// Manager owns the current session, the registered-user list, and the
// transient login/signup messages
type Manager struct {
	store     core.Store
	logger    core.Logger
	telemetry core.Telemetry
	latency   time.Duration
	now       func() time.Time
	newID     func() string

	mu            sync.Mutex
	current       *Session
	registered    []User
	loginError    string
	signupError   string
	signupSuccess string
	loading       bool
}

// New creates a Manager and restores any saved session and registered users
// from the store. Malformed or missing saved state silently falls back to
// signed-out with an empty list.
func New(ctx context.Context, store core.Store, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	telemetry := opts.Telemetry
	if telemetry == nil {
		telemetry = &core.NoOpTelemetry{}
	}

	m := &Manager{
		store:     store,
		logger:    logger,
		telemetry: telemetry,
		latency:   opts.SimulatedLatency,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	m.restore(ctx)
	return m
}

func (m *Manager) restore(ctx context.Context) {
	if raw, err := m.store.Get(ctx, currentUserKey); err != nil {
		m.logger.Warn("Could not read saved session", map[string]interface{}{"error": err})
	} else if raw != "" {
		var s Session
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			m.logger.Warn("Discarding malformed saved session", map[string]interface{}{"error": err})
		} else {
			m.current = &s
		}
	}

	if raw, err := m.store.Get(ctx, registeredUsersKey); err != nil {
		m.logger.Warn("Could not read registered users", map[string]interface{}{"error": err})
	} else if raw != "" {
		var users []User
		if err := json.Unmarshal([]byte(raw), &users); err != nil {
			m.logger.Warn("Discarding malformed registered users", map[string]interface{}{"error": err})
		} else {
			m.registered = users
		}
	}

	m.logger.Info("Auth state restored", map[string]interface{}{
		"signed_in":        m.current != nil,
		"registered_users": len(m.registered),
	})
}

// begin marks an auth operation as in flight. A second operation issued
// before the first resolves fails with core.ErrOperationPending.
func (m *Manager) begin(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loading {
		return fmt.Errorf("auth.%s: %w", op, core.ErrOperationPending)
	}
	m.loading = true
	switch op {
	case "Login":
		m.loginError = ""
	case "Signup":
		m.signupError = ""
		m.signupSuccess = ""
	}
	return nil
}

func (m *Manager) end() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

// pause applies the simulated round-trip delay
func (m *Manager) pause(ctx context.Context) error {
	if m.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(m.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Login checks the credentials against the fixed admin account, the fixed
// user account, then the registered-user list, in that order. On success the
// session is persisted and returned; on bad credentials the uniform
// "Invalid email or password" message is set and core.ErrInvalidCredentials
// returned.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	if err := m.begin("Login"); err != nil {
		return nil, err
	}
	defer m.end()

	ctx, span := m.telemetry.StartSpan(ctx, "auth.Login")
	defer span.End()

	if err := m.pause(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}

	session := m.authenticate(email, password)
	if session == nil {
		m.telemetry.RecordMetric("auth.login.failure", 1, nil)
		m.logger.Info("Login rejected", map[string]interface{}{"email": email})
		m.setLoginError(msgInvalidCredentials)
		return nil, fmt.Errorf("%s: %w", msgInvalidCredentials, core.ErrInvalidCredentials)
	}

	data, err := json.Marshal(session)
	if err == nil {
		err = m.store.Set(ctx, currentUserKey, string(data), 0)
	}
	if err != nil {
		span.RecordError(err)
		m.logger.Error("Could not persist session", map[string]interface{}{"error": err})
		m.setLoginError(msgLoginFailed)
		return nil, fmt.Errorf("persisting session: %w", core.ErrStorageFailed)
	}

	m.mu.Lock()
	m.current = session
	m.loginError = ""
	m.mu.Unlock()

	m.telemetry.RecordMetric("auth.login.success", 1, map[string]string{"role": string(session.Role)})
	m.logger.Info("Login succeeded", map[string]interface{}{
		"email": session.Email,
		"role":  session.Role,
	})
	return session, nil
}

func (m *Manager) authenticate(email, password string) *Session {
	if email == defaultAdmin.email && password == defaultAdmin.password {
		return defaultAdmin.session()
	}
	if email == defaultUser.email && password == defaultUser.password {
		return defaultUser.session()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.registered {
		if u.Email == email && u.Password == password {
			return u.session()
		}
	}
	return nil
}

// Signup registers a new account with role "user". The email must not
// collide with either fixed account or any registered user; the comparison
// is case-sensitive (see DESIGN.md). The new user is not signed in.
func (m *Manager) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	if err := m.begin("Signup"); err != nil {
		return nil, err
	}
	defer m.end()

	ctx, span := m.telemetry.StartSpan(ctx, "auth.Signup")
	defer span.End()

	if err := m.pause(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if m.emailTaken(req.Email) {
		m.telemetry.RecordMetric("auth.signup.duplicate", 1, nil)
		m.logger.Info("Signup rejected for existing email", map[string]interface{}{"email": req.Email})
		m.setSignupError(msgAccountExists)
		return nil, fmt.Errorf("%s: %w", msgAccountExists, core.ErrAccountExists)
	}

	user := User{
		ID:        m.newID(),
		Email:     req.Email,
		Password:  req.Password,
		Role:      RoleUser,
		Name:      req.FirstName + " " + req.LastName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: m.now(),
	}

	m.mu.Lock()
	updated := append(append([]User(nil), m.registered...), user)
	m.mu.Unlock()

	data, err := json.Marshal(updated)
	if err == nil {
		err = m.store.Set(ctx, registeredUsersKey, string(data), 0)
	}
	if err != nil {
		span.RecordError(err)
		m.logger.Error("Could not persist registered users", map[string]interface{}{"error": err})
		m.setSignupError(msgSignupFailed)
		return nil, fmt.Errorf("persisting registered users: %w", core.ErrStorageFailed)
	}

	m.mu.Lock()
	m.registered = updated
	m.signupError = ""
	m.signupSuccess = msgSignupSuccess
	m.mu.Unlock()

	m.telemetry.RecordMetric("auth.signup.success", 1, nil)
	m.logger.Info("Account registered", map[string]interface{}{
		"email": user.Email,
		"id":    user.ID,
	})
	return &user, nil
}

func (m *Manager) emailTaken(email string) bool {
	if email == defaultAdmin.email || email == defaultUser.email {
		return true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.registered {
		if u.Email == email {
			return true
		}
	}
	return false
}

// Logout clears the current session and all transient messages and removes
// the persisted session
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.current = nil
	m.loginError = ""
	m.signupError = ""
	m.signupSuccess = ""
	m.mu.Unlock()

	if err := m.store.Delete(ctx, currentUserKey); err != nil {
		m.logger.Warn("Could not remove persisted session", map[string]interface{}{"error": err})
	}
	m.logger.Info("Logged out", nil)
}

// Current returns the signed-in session, or nil when signed out
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	s := *m.current
	return &s
}

// IsAuthenticated reports whether a user is signed in
func (m *Manager) IsAuthenticated() bool {
	return m.Current() != nil
}

// IsAdmin reports whether the signed-in user has the admin role
func (m *Manager) IsAdmin() bool {
	s := m.Current()
	return s != nil && s.Role == RoleAdmin
}

// AllUsers returns the registered-user list in registration order. Used by
// the admin view only.
func (m *Manager) AllUsers() []User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]User(nil), m.registered...)
}

// IsLoading reports whether a login or signup is currently pending
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// LoginError returns the pending login failure message, if any
func (m *Manager) LoginError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loginError
}

// SignupError returns the pending signup failure message, if any
func (m *Manager) SignupError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signupError
}

// SignupSuccess returns the pending signup success message, if any
func (m *Manager) SignupSuccess() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signupSuccess
}

func (m *Manager) setLoginError(msg string) {
	m.mu.Lock()
	m.loginError = msg
	m.mu.Unlock()
}

func (m *Manager) setSignupError(msg string) {
	m.mu.Lock()
	m.signupError = msg
	m.mu.Unlock()
}
