package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskvault/api/internal/core/domain"
)

// TodoPatch is the full replacement state applied by an update. A nil Text
// keeps the stored text.
type TodoPatch struct {
	Text        *string
	Completed   bool
	CompletedAt *time.Time
}

// TodoRepository lookups always filter on id and creator in one statement;
// there is no find-by-id-only operation, so a record owned by someone else
// is indistinguishable from a missing one.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	GetAllByCreator(ctx context.Context, creatorID uuid.UUID) ([]domain.Todo, error)
	GetByIDAndCreator(ctx context.Context, id, creatorID uuid.UUID) (*domain.Todo, error)
	UpdateByIDAndCreator(ctx context.Context, id, creatorID uuid.UUID, patch TodoPatch) (*domain.Todo, error)
	DeleteByIDAndCreator(ctx context.Context, id, creatorID uuid.UUID) (*domain.Todo, error)
}

type UpdateTodoInput struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type TodoService interface {
	Create(ctx context.Context, creatorID uuid.UUID, text string) (*domain.Todo, error)
	List(ctx context.Context, creatorID uuid.UUID) ([]domain.Todo, error)
	Get(ctx context.Context, id string, creatorID uuid.UUID) (*domain.Todo, error)
	Update(ctx context.Context, id string, creatorID uuid.UUID, input UpdateTodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, id string, creatorID uuid.UUID) (*domain.Todo, error)
}
