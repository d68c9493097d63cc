package domain

import (
	"context"
	"errors"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrUnauthorized      = errors.New("operation not allowed for this user")
)

type ChallengeRepository interface {
	// Create persists a new challenge definition in the storage.
	Create(ctx context.Context, challenge *Challenge) error

	// GetByID retrieves a challenge by its unique identifier.
	GetByID(ctx context.Context, id string) (*Challenge, error)

	// ListByUserID retrieves all challenges owned by a specific user.
	ListByUserID(ctx context.Context, userID string) ([]*Challenge, error)

	// Update modifies the state of an existing challenge.
	Update(ctx context.Context, challenge *Challenge) error

	// Delete permanently removes a challenge together with its
	// daily progress records.
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
