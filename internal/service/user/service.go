package user

import (
	"context"
	"fmt"

	"github.com/simagang/presensi-backend-go/internal/domain/user"
	"github.com/simagang/presensi-backend-go/internal/pkg/civil"
	"github.com/simagang/presensi-backend-go/internal/pkg/jwt"
	"github.com/simagang/presensi-backend-go/internal/pkg/validator"
)

type UserServiceImpl struct {
	user.UserRepository
	profileRepo user.InternshipProfileRepository
}

func NewUserService(userRepo user.UserRepository, profileRepo user.InternshipProfileRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepo,
		profileRepo:    profileRepo,
	}
}

// GetMe implements user.UserService.
func (s *UserServiceImpl) GetMe(ctx context.Context) (user.UserResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	return s.Get(ctx, ident.UserID)
}

// UpdateMe implements user.UserService.
func (s *UserServiceImpl) UpdateMe(ctx context.Context, req user.UpdateProfileRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, ident.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.NIP != nil {
		u.NIP = req.NIP
	}
	if req.Division != nil {
		u.Division = req.Division
	}

	if err := s.UserRepository.Update(ctx, u); err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	return s.Get(ctx, u.ID)
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	if profile, err := s.profileRepo.GetByUserID(ctx, id); err == nil {
		u.Profile = &profile
	}

	return mapUserToResponse(u), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.ListFilter) (user.ListUsersResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return user.ListUsersResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, mapUserToResponse(u))
	}

	return user.ListUsersResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Users:      responses,
	}, nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.UserRepository.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}

// UpsertInternshipProfile implements user.UserService.
func (s *UserServiceImpl) UpsertInternshipProfile(ctx context.Context, req user.UpsertInternshipProfileRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if _, err := s.UserRepository.GetByID(ctx, req.UserID); err != nil {
		return user.UserResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	_, err := s.profileRepo.Upsert(ctx, user.InternshipProfile{
		UserID:     req.UserID,
		StartDate:  civil.DayStart(start.In(civil.WIB)),
		EndDate:    civil.DayStart(end.In(civil.WIB)),
		WindowOpen: req.WindowOpen,
		LateCutoff: req.LateCutoff,
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to upsert internship profile: %w", err)
	}

	return s.Get(ctx, req.UserID)
}

func mapUserToResponse(u user.User) user.UserResponse {
	resp := user.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		NIP:       u.NIP,
		Division:  u.Division,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if u.Profile != nil {
		resp.Profile = &user.ProfileResponse{
			StartDate:  u.Profile.StartDate.Format("2006-01-02"),
			EndDate:    u.Profile.EndDate.Format("2006-01-02"),
			WindowOpen: u.Profile.WindowOpen,
			LateCutoff: u.Profile.LateCutoff,
		}
	}
	return resp
}
