package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUsernameAlreadyExists indicates that the user with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = errors.New("wrong password")
	// ErrUserDisabled indicates that the user may not log in.
	ErrUserDisabled = errors.New("user is disabled")
)

// User holds account data. Deposit is the buyer balance in cents.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"hashed_password"`
	Deposit        int64     `json:"deposit"`
	Role           Role      `json:"role"`
	Enabled        bool      `json:"enabled"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"hashed_password"`
	Role           Role      `json:"role"`
	Enabled        bool      `json:"enabled"`
}

// UserWithoutPassword is User data excluding password data.
type UserWithoutPassword struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Deposit   int64     `json:"deposit"`
	Role      Role      `json:"role"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserWithoutPassword returns user with removed sensitive data.
func NewUserWithoutPassword(u User) UserWithoutPassword {
	return UserWithoutPassword{
		ID:        u.ID,
		Username:  u.Username,
		Deposit:   u.Deposit,
		Role:      u.Role,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
	}
}
