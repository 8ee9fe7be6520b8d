package domain

import "time"

// Role is the access level of a platform account.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEmployee Role = "Empleado"
	RoleClient   Role = "Cliente"
	RoleStudent  Role = "Estudiante"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleClient, RoleStudent:
		return true
	}
	return false
}

// UserDocument is the identity document on file for an account.
type UserDocument struct {
	Type   string `json:"type,omitempty"`
	Number string `json:"number,omitempty"`
}

// String renders the document as it appears on invoices, or "" when
// none is on file.
func (d UserDocument) String() string {
	if d.Number == "" {
		return ""
	}
	if d.Type == "" {
		return d.Number
	}
	return d.Type + " " + d.Number
}

// User is a registered account: store customers and workshop students.
// The password is stored only as a bcrypt hash and never serialized.
type User struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone,omitempty"`
	Address        string       `json:"address,omitempty"`
	Document       UserDocument `json:"document"`
	Role           Role         `json:"role"`
	PasswordHash   string       `json:"-"`
	RegisteredDate time.Time    `json:"registeredDate"`
	OrdersCount    int          `json:"ordersCount"`
	Active         bool         `json:"active"`
	FailedAttempts int          `json:"-"`
	LockedUntil    *time.Time   `json:"-"`
}

// Employee is a staff record managed by admins.
type Employee struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Position  string    `json:"position"`
	Salary    float64   `json:"salary"`
	HiredDate time.Time `json:"hiredDate"`
	Active    bool      `json:"active"`
}
