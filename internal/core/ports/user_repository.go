package ports

import (
	"context"

	"github.com/VenkateshW22/teamflow-api/internal/core/domain"
)

// UserRepository is the credential store contract. It owns uniqueness of
// usernames (Create returns domain.ErrUserExists on a duplicate) and is the
// source of truth for the role set copied into tokens at authentication time.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
