package domain

import "time"

// Role distinguishes the two account types. It is fixed at signup and baked
// into every issued token.
type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleMentor || r == RoleMentee
}

// Identity is the resolved caller derived from a verified session token.
// It is the only source of acting user id and role; payload-supplied ids are
// never trusted.
type Identity struct {
	UserID string
	Role   Role
}

// User is the account record shared by mentors and mentees.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Bio          string
	ImageRef     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
