package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"taskmate/internal/models"
)

type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

var _ Tasks = (*TaskRepository)(nil)

const (
	insertTaskSQL = `
		INSERT INTO tasks (id, user_id, description, category, deadline, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	selectTasksByUserSQL = `
		SELECT id, user_id, description, category, deadline, created_at, updated_at
		FROM tasks WHERE user_id = ?
		ORDER BY deadline, id
	`
	updateTaskSQL = `
		UPDATE tasks SET description = ?, category = ?, deadline = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`
	deleteTaskSQL = `DELETE FROM tasks WHERE id = ? AND user_id = ?`
)

// Create inserts a task. A task id that already exists yields ErrDuplicate.
func (r *TaskRepository) Create(ctx context.Context, t models.Task) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertTaskSQL),
		t.ID, t.UserID, t.Description, string(t.Category),
		t.Deadline.UTC(), t.CreatedAt.UTC(), t.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert task %q: %w", t.ID, ErrDuplicate)
		}
		return fmt.Errorf("insert task %q: %w", t.ID, err)
	}
	return nil
}

// ListByUser returns the user's tasks ordered by deadline then id.
func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.SelectContext(ctx, &tasks, r.db.Rebind(selectTasksByUserSQL), userID); err != nil {
		return nil, fmt.Errorf("select tasks for user %q: %w", userID, err)
	}
	return tasks, nil
}

// Update overwrites description, category and deadline of a task owned by t.UserID.
// It reports false when no such task exists for that owner.
func (r *TaskRepository) Update(ctx context.Context, t models.Task) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(updateTaskSQL),
		t.Description, string(t.Category), t.Deadline.UTC(), t.UpdatedAt.UTC(), t.ID, t.UserID)
	if err != nil {
		return false, fmt.Errorf("update task %q: %w", t.ID, err)
	}
	return affected(res, "update task", t.ID)
}

// Delete removes a task owned by userID. It reports false when nothing was deleted.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(deleteTaskSQL), taskID, userID)
	if err != nil {
		return false, fmt.Errorf("delete task %q: %w", taskID, err)
	}
	return affected(res, "delete task", taskID)
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

func affected(res rowsAffecter, op, id string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s %q: rows affected: %w", op, id, err)
	}
	return n > 0, nil
}
