package jwt

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/simagang/presensi-backend-go/internal/domain/user"
)

// Identity is the caller identity carried by an access token. Every mutating
// operation resolves it before touching the ledger.
type Identity struct {
	UserID string
	Email  string
	Role   user.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == user.RoleAdmin
}

// IdentityFromContext extracts the caller identity placed in the context by
// the jwtauth verifier middleware.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return Identity{}, fmt.Errorf("role claim is missing or invalid")
	}

	email, _ := claims["email"].(string)

	return Identity{UserID: userID, Email: email, Role: user.Role(role)}, nil
}
