package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskvault/api/internal/core/domain"
	"github.com/taskvault/api/internal/core/ports"
)

type TodoService struct {
	repo ports.TodoRepository
	now  func() time.Time
}

func NewTodoService(repo ports.TodoRepository) ports.TodoService {
	return &TodoService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *TodoService) Create(ctx context.Context, creatorID uuid.UUID, text string) (*domain.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text must not be empty", domain.ErrValidation)
	}

	todo := &domain.Todo{
		ID:        uuid.New(),
		Text:      text,
		CreatorID: creatorID,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, creatorID uuid.UUID) ([]domain.Todo, error) {
	return s.repo.GetAllByCreator(ctx, creatorID)
}

func (s *TodoService) Get(ctx context.Context, id string, creatorID uuid.UUID) (*domain.Todo, error) {
	todoID, err := parseTodoID(id)
	if err != nil {
		return nil, err
	}

	todo, err := s.repo.GetByIDAndCreator(ctx, todoID, creatorID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, domain.ErrTodoNotFound
	}
	return todo, nil
}

// Update replaces the completion state wholesale: completed=true stamps
// completedAt, anything else forces completed=false with a null timestamp.
// No partial completion state is ever persisted.
func (s *TodoService) Update(ctx context.Context, id string, creatorID uuid.UUID, input ports.UpdateTodoInput) (*domain.Todo, error) {
	todoID, err := parseTodoID(id)
	if err != nil {
		return nil, err
	}

	patch := ports.TodoPatch{}
	if input.Text != nil {
		text := strings.TrimSpace(*input.Text)
		if text == "" {
			return nil, fmt.Errorf("%w: text must not be empty", domain.ErrValidation)
		}
		patch.Text = &text
	}
	if input.Completed != nil && *input.Completed {
		now := s.now().UTC()
		patch.Completed = true
		patch.CompletedAt = &now
	}

	todo, err := s.repo.UpdateByIDAndCreator(ctx, todoID, creatorID, patch)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, domain.ErrTodoNotFound
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id string, creatorID uuid.UUID) (*domain.Todo, error) {
	todoID, err := parseTodoID(id)
	if err != nil {
		return nil, err
	}

	todo, err := s.repo.DeleteByIDAndCreator(ctx, todoID, creatorID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, domain.ErrTodoNotFound
	}
	return todo, nil
}

// parseTodoID rejects structurally invalid ids before any store access.
func parseTodoID(id string) (uuid.UUID, error) {
	todoID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidTodoID
	}
	return todoID, nil
}
