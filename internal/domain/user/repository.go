package user

import (
	"context"
	"time"
)

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, filter ListFilter) ([]User, int64, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
	LinkGoogleAccount(ctx context.Context, email, googleID string) (User, error)
}

type InternshipProfileRepository interface {
	// Upsert creates or replaces the zero-or-one profile a user owns.
	Upsert(ctx context.Context, p InternshipProfile) (InternshipProfile, error)
	GetByUserID(ctx context.Context, userID string) (InternshipProfile, error)
	// ListActiveOn returns the profiles whose placement covers the given civil date.
	// Used by the absence-marking job.
	ListActiveOn(ctx context.Context, date time.Time) ([]InternshipProfile, error)
}
