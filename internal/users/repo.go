package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Repo defines persistence operations for user accounts.
type Repo interface {
	// Create inserts a new account; a duplicate email is ErrEmailTaken.
	Create(ctx context.Context, user User) error
	// Upsert inserts or refreshes an account keyed by id (OAuth sign-in).
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
