package auth

import "time"

// Role separates the admin identity from regular shoppers
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Session is the signed-in identity. It never carries a password, so it is
// safe to persist and to hand to the presentation layer.
type Session struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// User is a registered account as kept in the registered-user list. The
// password is stored in plaintext; see DESIGN.md for why this demo layer
// does not hash.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Role      Role      `json:"role"`
	Name      string    `json:"name"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// session builds the password-free session for a registered user
func (u User) session() *Session {
	return &Session{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Address:   u.Address,
	}
}

// account is one of the two fixed demo identities usable without registration
type account struct {
	id       string
	email    string
	password string
	name     string
	role     Role
}

func (a account) session() *Session {
	return &Session{
		ID:    a.id,
		Email: a.email,
		Name:  a.name,
		Role:  a.role,
	}
}

// Fixed demo credentials. In a real deployment these would live behind a
// backend; they are hardcoded here because the whole auth layer is a mock.
var (
	defaultAdmin = account{
		id:       "1",
		email:    "admin@foodorder.com",
		password: "admin123",
		name:     "Admin User",
		role:     RoleAdmin,
	}
	defaultUser = account{
		id:       "2",
		email:    "user@foodorder.com",
		password: "user123",
		name:     "Regular User",
		role:     RoleUser,
	}
)

// DemoAdminEmail and DemoUserEmail expose the fixed demo logins for UIs
// that want to show them on the sign-in screen
const (
	DemoAdminEmail = "admin@foodorder.com"
	DemoUserEmail  = "user@foodorder.com"
)
