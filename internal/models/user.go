package models

import "time"

// User roles
const (
	RoleStudent      = "student"
	RolePoshakLeader = "poshak_leader"
	RoleAdmin        = "admin"
)

// User represents an account in the system
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	RoomNumber   *string
	IsApproved   bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsLeader reports whether the user holds a supervisory role
func (u *User) IsLeader() bool {
	return u.Role == RolePoshakLeader || u.Role == RoleAdmin
}

// PasswordResetToken represents a token for password reset
type PasswordResetToken struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
	Used      bool
}

// IsExpired checks if the reset token has expired
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
