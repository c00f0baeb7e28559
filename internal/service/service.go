package service

import (
	"context"
	"time"

	"taskmate/internal/models"
	"taskmate/internal/repository"
)

// Authorization covers registration, login and session user lookup.
type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, in LoginInput) (*models.User, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

// UserLookup resolves the user behind a session; *AuthService satisfies it.
type UserLookup interface {
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

// Tasks exposes the board of a single user. userID always comes from the session.
type Tasks interface {
	Board(ctx context.Context, userID string) (models.Board, error)
	Create(ctx context.Context, userID string, in TaskInput) (*models.Task, error)
	Update(ctx context.Context, userID, taskID string, in TaskInput) error
	Delete(ctx context.Context, userID, taskID string) error
}

// PasswordHasher is satisfied by *password.Hasher.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) (bool, error)
}

type Service struct {
	Authorization
	Tasks
}

func NewService(repos *repository.Repository, hasher PasswordHasher) *Service {
	auth := NewAuthService(repos.Users, hasher)
	return &Service{
		Authorization: auth,
		Tasks:         NewTaskService(repos.Tasks, auth, time.Now),
	}
}
