// Package models contains the server-side domain records persisted by the
// repositories.
package models

import "time"

// Roles form a closed enumeration. Only RoleAdmin may bypass ownership
// checks, and only on delete.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an identity record created once at signup. UUID, UserName and
// Email are immutable. Password holds the salted digest, never the raw
// password.
type User struct {
	ID            int64
	UUID          string
	FirstName     string
	LastName      string
	UserName      string
	Email         string
	Password      []byte
	Salt          []byte
	Country       string
	AboutMe       string
	DOB           string
	ContactNumber string
	Role          string
	CreatedAt     time.Time
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
