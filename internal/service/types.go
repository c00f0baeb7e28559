package service

import (
	"time"

	"taskmate/internal/models"
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

// TaskInput carries already validated task fields.
type TaskInput struct {
	Description string
	Category    models.Category
	Deadline    time.Time
}
