package domain

import "time"

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive UserStatus = "ACTIVE"
	UserStatusBanned UserStatus = "BANNED"
)

// User is a traveller or administrator account. Role holds an auth role name.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Status       UserStatus
	Bio          *string
	Phone        *string
	ProfileImage *string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Banned reports whether the account has been banned by an administrator.
func (u *User) Banned() bool {
	return u.Status == UserStatusBanned
}
