package user

import "context"

type UserService interface {
	GetMe(ctx context.Context) (UserResponse, error)
	UpdateMe(ctx context.Context, req UpdateProfileRequest) (UserResponse, error)

	// Admin surface
	List(ctx context.Context, filter ListFilter) (ListUsersResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	Delete(ctx context.Context, id string) error
	UpsertInternshipProfile(ctx context.Context, req UpsertInternshipProfileRequest) (UserResponse, error)
}
