package models

import (
	"fmt"
	"strings"
	"time"
)

// Category is the board column a task is filed under.
type Category string

const (
	CategoryToDo       Category = "ToDo"
	CategoryInProgress Category = "InProgress"
	CategoryDone       Category = "Done"
	CategoryBacklog    Category = "Backlog"
)

// Categories lists the board columns in display order.
var Categories = []Category{CategoryToDo, CategoryInProgress, CategoryDone, CategoryBacklog}

// ParseCategory accepts any casing of a known category ("todo", "TODO", "ToDo").
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if strings.ToLower(string(c)) == norm {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

type Task struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Description string    `json:"description" db:"description"`
	Category    Category  `json:"category" db:"category"`
	Deadline    time.Time `json:"deadline" db:"deadline"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Classify returns the column a task is shown in at the given moment.
// Unfinished tasks past their deadline land in Backlog; the stored category is not changed.
func Classify(t Task, now time.Time) Category {
	if t.Category != CategoryDone && !t.Deadline.IsZero() && t.Deadline.Before(now) {
		return CategoryBacklog
	}
	return t.Category
}

const (
	layoutDateTime      = "2006-01-02 15:04:05"
	layoutDateTimeLocal = "2006-01-02T15:04"
	layoutDate          = "2006-01-02"
)

// ParseDeadline accepts RFC3339, an HTML datetime-local value, 'YYYY-MM-DD HH:MM:SS'
// or a bare date. Values without a zone are read as UTC. A bare date means the end of that day.
func ParseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range []string{layoutDateTime, layoutDateTimeLocal} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	if t, err := time.Parse(layoutDate, s); err == nil {
		return t.Add(24*time.Hour - time.Nanosecond).UTC(), nil
	}
	return time.Time{}, fmt.Errorf(
		"invalid deadline %q, expected RFC3339, 'YYYY-MM-DDTHH:MM', 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", s)
}
