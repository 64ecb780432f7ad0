package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskvault/api/internal/core/domain"
)

type UserService interface {
	// Register creates the account and logs it in; the returned token is
	// already on the user's allow-list.
	Register(ctx context.Context, email, password string) (*domain.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, string, error)
	// FindByToken resolves a bearer token to its user, requiring both a
	// valid signature and current allow-list membership. Any failure is
	// domain.ErrInvalidToken.
	FindByToken(ctx context.Context, token string) (*domain.User, error)
	RevokeToken(ctx context.Context, userID uuid.UUID, token string) error
	RevokeAllTokens(ctx context.Context, userID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
