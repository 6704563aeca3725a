package domain

import (
	"strconv"
	"time"
)

// UserID is a value object for user identity.
type UserID int64

// String returns the decimal form.
func (u UserID) String() string { return strconv.FormatInt(int64(u), 10) }

// Role is the authorization level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an account that can authenticate against the API.
type User struct {
	ID           UserID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
