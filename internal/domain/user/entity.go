package user

import "time"

type Role string

const (
	RoleAdmin  Role = "ADMIN"  // Supervisors: decide leave, grade evaluations, manage policy
	RoleIntern Role = "INTERN" // Interns: check in/out, request leave, submit evaluation
)

type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    *string
	Role            Role
	NIP             *string
	Division        *string
	AvatarURL       *string
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Join
	Profile *InternshipProfile
}

// InternshipProfile bounds an intern's placement and optionally overrides the
// global attendance window for that intern.
type InternshipProfile struct {
	ID         string
	UserID     string
	StartDate  time.Time
	EndDate    time.Time
	WindowOpen *string // "HH:mm", nil means use the global policy
	LateCutoff *string // "HH:mm", nil means use the global policy
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ActiveOn reports whether date falls inside the internship placement,
// boundaries included.
func (p *InternshipProfile) ActiveOn(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}
