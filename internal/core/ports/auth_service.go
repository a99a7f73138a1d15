package ports

import (
	"context"

	"github.com/VenkateshW22/teamflow-api/internal/core/domain"
)

// AuthResult is what a successful sign-in or sign-up yields: the minted
// bearer token and a view of the authenticated user for the response body.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	SignIn(ctx context.Context, username, password string) (*AuthResult, error)
	SignUp(ctx context.Context, username, email, password string) (*AuthResult, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
}
