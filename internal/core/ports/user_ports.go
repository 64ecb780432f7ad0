package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskvault/api/internal/core/domain"
)

type UserRepository interface {
	// Create inserts the user. A concurrent insert with the same email is
	// resolved by the storage layer's unique constraint and surfaces as
	// domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetByToken fetches the user only if the exact token string with the
	// given purpose is currently on the user's allow-list. The membership
	// check and the user fetch are a single query.
	GetByToken(ctx context.Context, userID uuid.UUID, token, purpose string) (*domain.User, error)
	AppendToken(ctx context.Context, token *domain.UserToken) error
	// RemoveToken deletes one allow-list entry; removing an absent token
	// is a no-op.
	RemoveToken(ctx context.Context, userID uuid.UUID, token string) error
	RemoveAllTokens(ctx context.Context, userID uuid.UUID) error
}
