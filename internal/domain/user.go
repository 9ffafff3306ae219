package domain

import "time"

// UserRole separates moderators from regular authors.
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleWriter UserRole = "writer"
)

// AccountStatus represents lifecycle states for an account.
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "active"
	AccountStatusBanned AccountStatus = "banned"
)

// User is the domain model for people who log in and write posts.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Fullname     *string
	DOB          *time.Time
	Description  *string
	Role         UserRole
	Status       AccountStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

// IsBanned reports whether the account has been banned.
func (u *User) IsBanned() bool {
	return u != nil && u.Status == AccountStatusBanned
}
