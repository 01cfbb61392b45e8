package domain

import "time"

// Role is the authenticated role of a session.
type Role string

const (
	RoleGuest Role = "GUEST"
	RoleAdmin Role = "ADMIN"
)

// Session is the authenticated role and identifier for one user interaction.
// It exists from successful login until logout.
type Session struct {
	Role       Role      `json:"role"`
	Identifier string    `json:"identifier"` // mobile number or email
	CreatedAt  time.Time `json:"created_at"`
}
