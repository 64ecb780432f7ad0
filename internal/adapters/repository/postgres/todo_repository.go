package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskvault/api/internal/core/domain"
	"github.com/taskvault/api/internal/core/ports"
)

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) ports.TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	query := `
		INSERT INTO todos (id, text, completed, completed_at, creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		todo.ID, todo.Text, todo.Completed, todo.CompletedAt, todo.CreatorID,
	).Scan(&todo.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) GetAllByCreator(ctx context.Context, creatorID uuid.UUID) ([]domain.Todo, error) {
	query := `
		SELECT id, text, completed, completed_at, creator_id, created_at
		FROM todos
		WHERE creator_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		var todo domain.Todo
		err := rows.Scan(&todo.ID, &todo.Text, &todo.Completed, &todo.CompletedAt, &todo.CreatorID, &todo.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

func (r *TodoRepository) GetByIDAndCreator(ctx context.Context, id, creatorID uuid.UUID) (*domain.Todo, error) {
	query := `
		SELECT id, text, completed, completed_at, creator_id, created_at
		FROM todos
		WHERE id = $1 AND creator_id = $2
	`
	return r.scanTodo(r.db.QueryRowContext(ctx, query, id, creatorID))
}

// UpdateByIDAndCreator applies the patch in a single UPDATE so the ownership
// filter, the mutation and the readback cannot interleave with another
// request. A nil patch text keeps the stored text.
func (r *TodoRepository) UpdateByIDAndCreator(ctx context.Context, id, creatorID uuid.UUID, patch ports.TodoPatch) (*domain.Todo, error) {
	query := `
		UPDATE todos
		SET text = COALESCE($3, text), completed = $4, completed_at = $5
		WHERE id = $1 AND creator_id = $2
		RETURNING id, text, completed, completed_at, creator_id, created_at
	`
	return r.scanTodo(r.db.QueryRowContext(ctx, query, id, creatorID, patch.Text, patch.Completed, patch.CompletedAt))
}

func (r *TodoRepository) DeleteByIDAndCreator(ctx context.Context, id, creatorID uuid.UUID) (*domain.Todo, error) {
	query := `
		DELETE FROM todos
		WHERE id = $1 AND creator_id = $2
		RETURNING id, text, completed, completed_at, creator_id, created_at
	`
	return r.scanTodo(r.db.QueryRowContext(ctx, query, id, creatorID))
}

func (r *TodoRepository) scanTodo(row *sql.Row) (*domain.Todo, error) {
	todo := &domain.Todo{}
	err := row.Scan(&todo.ID, &todo.Text, &todo.Completed, &todo.CompletedAt, &todo.CreatorID, &todo.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}
