package domain

import (
	"strings"
	"time"
)

// User represents a platform identity: a client, a courier or an administrator.
type User struct {
	ID           int64
	Role         Role
	NationalID   *string
	Username     *string
	Email        *string
	Phone        string
	FirstName    string
	LastName     string
	BirthDate    *time.Time
	PasswordHash string
	// Availability is meaningful for couriers only.
	Availability Availability
	CreatedAt    time.Time
}

// DisplayName returns "first last".
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NewUser carries the fields required to create a user.
// The password is already hashed.
type NewUser struct {
	Role         Role
	NationalID   *string
	Username     *string
	Email        *string
	Phone        string
	FirstName    string
	LastName     string
	BirthDate    *time.Time
	PasswordHash string
}

// Registration is a self-service client sign-up.
type Registration struct {
	NationalID string
	Phone      string
	FirstName  string
	LastName   string
	Email      string
	BirthDate  *time.Time
	Password   string
}

// UserDraft is an administrator-created account of any role.
type UserDraft struct {
	Role       Role
	NationalID *string
	Username   *string
	Email      *string
	Phone      string
	FirstName  string
	LastName   string
	Password   string
}

// Session is the result of a successful login.
type Session struct {
	UserID    int64
	Role      Role
	Name      string
	Token     string
	ExpiresAt time.Time
}

// CourierSummary is the public view of a courier.
type CourierSummary struct {
	ID           int64
	FirstName    string
	LastName     string
	Availability Availability
}
