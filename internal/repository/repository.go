package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"taskmate/internal/models"
)

// Users is the credential store.
type Users interface {
	Create(ctx context.Context, u models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Tasks stores tasks. Every mutation is scoped to the owning user.
type Tasks interface {
	Create(ctx context.Context, t models.Task) error
	ListByUser(ctx context.Context, userID string) ([]models.Task, error)
	Update(ctx context.Context, t models.Task) (bool, error)
	Delete(ctx context.Context, userID, taskID string) (bool, error)
}

type Repository struct {
	Users Users
	Tasks Tasks
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Tasks: NewTaskRepository(db),
	}
}
