package user

import "github.com/simagang/presensi-backend-go/internal/pkg/validator"

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	NIP      *string `json:"nip"`
	Division *string `json:"division"`
}

func (r UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.NIP != nil && *r.NIP != "" && !validator.IsValidNIP(*r.NIP) {
		errs = append(errs, validator.ValidationError{Field: "nip", Message: "must be an 18-digit NIP"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpsertInternshipProfileRequest struct {
	UserID     string  `json:"user_id"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD
	WindowOpen *string `json:"window_open"`
	LateCutoff *string `json:"late_cutoff"`
}

func (r UpsertInternshipProfileRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "is required"})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if r.WindowOpen != nil && !validator.IsValidClock(*r.WindowOpen) {
		errs = append(errs, validator.ValidationError{Field: "window_open", Message: "must be HH:mm"})
	}
	if r.LateCutoff != nil && !validator.IsValidClock(*r.LateCutoff) {
		errs = append(errs, validator.ValidationError{Field: "late_cutoff", Message: "must be HH:mm"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	Role   *Role
	Search string
	Page   int
	Limit  int
}

type UserResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      Role             `json:"role"`
	NIP       *string          `json:"nip,omitempty"`
	Division  *string          `json:"division,omitempty"`
	AvatarURL *string          `json:"avatar_url,omitempty"`
	Profile   *ProfileResponse `json:"internship_profile,omitempty"`
	CreatedAt string           `json:"created_at"`
}

type ProfileResponse struct {
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	WindowOpen *string `json:"window_open,omitempty"`
	LateCutoff *string `json:"late_cutoff,omitempty"`
}

type ListUsersResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Users      []UserResponse `json:"users"`
}
