package user

import "errors"

// User domain errors
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailExists            = errors.New("email already registered")
	ErrProfileNotFound        = errors.New("internship profile not found")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
