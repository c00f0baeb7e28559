package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskmate/internal/models"
	"taskmate/internal/repository"
)

// ErrTaskNotFound covers both a missing task and one owned by someone else.
var ErrTaskNotFound = errors.New("task not found")

type TaskService struct {
	tasks repository.Tasks
	users UserLookup
	now   func() time.Time
}

func NewTaskService(tasks repository.Tasks, users UserLookup, now func() time.Time) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{tasks: tasks, users: users, now: now}
}

// Board returns the user's tasks grouped into columns as of now.
// A session whose user is gone yields ErrUserNotFound.
func (s *TaskService) Board(ctx context.Context, userID string) (models.Board, error) {
	u, err := s.users.CurrentUser(ctx, userID)
	if err != nil {
		return models.Board{}, err
	}

	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return models.Board{}, fmt.Errorf("list tasks: %w", err)
	}
	return NewBoard(u.Summary(), tasks, s.now()), nil
}

func (s *TaskService) Create(ctx context.Context, userID string, in TaskInput) (*models.Task, error) {
	now := s.now().UTC()
	t := models.Task{
		ID:          newTaskID(now),
		UserID:      userID,
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		Deadline:    in.Deadline.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &t, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, in TaskInput) error {
	ok, err := s.tasks.Update(ctx, models.Task{
		ID:          taskID,
		UserID:      userID,
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		Deadline:    in.Deadline.UTC(),
		UpdatedAt:   s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if !ok {
		return ErrTaskNotFound
	}
	return nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	ok, err := s.tasks.Delete(ctx, userID, taskID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !ok {
		return ErrTaskNotFound
	}
	return nil
}
