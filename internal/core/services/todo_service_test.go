package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/api/internal/core/domain"
	"github.com/taskvault/api/internal/core/ports"
)

type fakeTodoRepo struct {
	todos map[uuid.UUID]*domain.Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: map[uuid.UUID]*domain.Todo{}}
}

func (r *fakeTodoRepo) Create(_ context.Context, todo *domain.Todo) error {
	todo.CreatedAt = time.Now()
	copied := *todo
	r.todos[todo.ID] = &copied
	return nil
}

func (r *fakeTodoRepo) GetAllByCreator(_ context.Context, creatorID uuid.UUID) ([]domain.Todo, error) {
	result := []domain.Todo{}
	for _, todo := range r.todos {
		if todo.CreatorID == creatorID {
			result = append(result, *todo)
		}
	}
	return result, nil
}

func (r *fakeTodoRepo) GetByIDAndCreator(_ context.Context, id, creatorID uuid.UUID) (*domain.Todo, error) {
	todo, ok := r.todos[id]
	if !ok || todo.CreatorID != creatorID {
		return nil, nil
	}
	copied := *todo
	return &copied, nil
}

func (r *fakeTodoRepo) UpdateByIDAndCreator(_ context.Context, id, creatorID uuid.UUID, patch ports.TodoPatch) (*domain.Todo, error) {
	todo, ok := r.todos[id]
	if !ok || todo.CreatorID != creatorID {
		return nil, nil
	}
	if patch.Text != nil {
		todo.Text = *patch.Text
	}
	todo.Completed = patch.Completed
	todo.CompletedAt = patch.CompletedAt
	copied := *todo
	return &copied, nil
}

func (r *fakeTodoRepo) DeleteByIDAndCreator(_ context.Context, id, creatorID uuid.UUID) (*domain.Todo, error) {
	todo, ok := r.todos[id]
	if !ok || todo.CreatorID != creatorID {
		return nil, nil
	}
	delete(r.todos, id)
	return todo, nil
}

func TestCreateTodo(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()
	creatorID := uuid.New()

	todo, err := svc.Create(ctx, creatorID, "  buy milk  ")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", todo.Text, "text is trimmed")
	assert.False(t, todo.Completed)
	assert.Nil(t, todo.CompletedAt)
	assert.Equal(t, creatorID, todo.CreatorID)
}

func TestCreateTodoEmptyText(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(ctx, uuid.New(), text)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestListScopedToCreator(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	_, err := svc.Create(ctx, alice, "alice's todo")
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, "bob's todo")
	require.NoError(t, err)

	todos, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "alice's todo", todos[0].Text)
}

func TestGetRejectsMalformedIDBeforeStoreAccess(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()

	_, err := svc.Get(ctx, "123", uuid.New())
	assert.ErrorIs(t, err, domain.ErrInvalidTodoID)

	_, err = svc.Update(ctx, "123", uuid.New(), ports.UpdateTodoInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidTodoID)

	_, err = svc.Delete(ctx, "123", uuid.New())
	assert.ErrorIs(t, err, domain.ErrInvalidTodoID)
}

func TestGetOtherOwnersTodoLooksMissing(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()

	todo, err := svc.Create(ctx, uuid.New(), "buy milk")
	require.NoError(t, err)

	_, err = svc.Get(ctx, todo.ID.String(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestGetNonexistentTodo(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()

	_, err := svc.Get(ctx, uuid.NewString(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestUpdateCompletionTransitions(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo).(*TodoService)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	ctx := context.Background()
	creatorID := uuid.New()
	todo, err := svc.Create(ctx, creatorID, "buy milk")
	require.NoError(t, err)

	completed := true
	updated, err := svc.Update(ctx, todo.ID.String(), creatorID, ports.UpdateTodoInput{Completed: &completed})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, now, *updated.CompletedAt)

	completed = false
	updated, err = svc.Update(ctx, todo.ID.String(), creatorID, ports.UpdateTodoInput{Completed: &completed})
	require.NoError(t, err)
	assert.False(t, updated.Completed)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateWithoutCompletedForcesIncomplete(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo)
	ctx := context.Background()
	creatorID := uuid.New()

	todo, err := svc.Create(ctx, creatorID, "buy milk")
	require.NoError(t, err)

	completed := true
	_, err = svc.Update(ctx, todo.ID.String(), creatorID, ports.UpdateTodoInput{Completed: &completed})
	require.NoError(t, err)

	text := "buy oat milk"
	updated, err := svc.Update(ctx, todo.ID.String(), creatorID, ports.UpdateTodoInput{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", updated.Text)
	assert.False(t, updated.Completed, "absent completed resets the flag")
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateEmptyTextRejected(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()
	creatorID := uuid.New()

	todo, err := svc.Create(ctx, creatorID, "buy milk")
	require.NoError(t, err)

	empty := "   "
	_, err = svc.Update(ctx, todo.ID.String(), creatorID, ports.UpdateTodoInput{Text: &empty})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteReturnsTheDeletedTodo(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo)
	ctx := context.Background()
	creatorID := uuid.New()

	todo, err := svc.Create(ctx, creatorID, "buy milk")
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, todo.ID.String(), creatorID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, deleted.ID)

	_, err = svc.Delete(ctx, todo.ID.String(), creatorID)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestDeleteScopedToCreator(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo)
	ctx := context.Background()
	owner := uuid.New()

	todo, err := svc.Create(ctx, owner, "buy milk")
	require.NoError(t, err)

	_, err = svc.Delete(ctx, todo.ID.String(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)

	// Still there for the owner.
	_, err = svc.Get(ctx, todo.ID.String(), owner)
	require.NoError(t, err)
}
