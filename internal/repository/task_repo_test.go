package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"taskmate/internal/models"
)

var taskColumns = []string{"id", "user_id", "description", "category", "deadline", "created_at", "updated_at"}

func sampleTask() models.Task {
	ts := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	return models.Task{
		ID:          "01J0000000000000000000000A",
		UserID:      "u1",
		Description: "write report",
		Category:    models.CategoryInProgress,
		Deadline:    ts.Add(48 * time.Hour),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func TestTaskRepository_Create(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	task := sampleTask()
	mock.ExpectExec(regexp.QuoteMeta(insertTaskSQL)).
		WithArgs(task.ID, task.UserID, task.Description, "InProgress", task.Deadline, task.CreatedAt, task.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewTaskRepository(db).Create(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTaskRepository_CreateError(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	task := sampleTask()
	mock.ExpectExec(regexp.QuoteMeta(insertTaskSQL)).WillReturnError(errors.New("disk full"))

	err := NewTaskRepository(db).Create(context.Background(), task)
	if err == nil || !contains(err.Error(), "insert task") {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}
}

func TestTaskRepository_ListByUser(t *testing.T) {
	task := sampleTask()

	tests := []struct {
		name     string
		rows     *sqlmock.Rows
		queryErr error
		want     int
		wantErr  bool
	}{
		{
			name: "two tasks",
			rows: sqlmock.NewRows(taskColumns).
				AddRow(task.ID, "u1", task.Description, "InProgress", task.Deadline, task.CreatedAt, task.UpdatedAt).
				AddRow("01J0000000000000000000000B", "u1", "other", "Done", task.Deadline, task.CreatedAt, task.UpdatedAt),
			want: 2,
		},
		{
			name: "empty board",
			rows: sqlmock.NewRows(taskColumns),
			want: 0,
		},
		{
			name:     "query error",
			queryErr: errors.New("db query failed"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()

			exp := mock.ExpectQuery(regexp.QuoteMeta(selectTasksByUserSQL)).WithArgs("u1")
			if tt.queryErr != nil {
				exp.WillReturnError(tt.queryErr)
			} else {
				exp.WillReturnRows(tt.rows)
			}

			got, err := NewTaskRepository(db).ListByUser(context.Background(), "u1")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil {
				t.Fatalf("expected non-nil slice")
			}
			if len(got) != tt.want {
				t.Fatalf("want %d tasks, got %d", tt.want, len(got))
			}
			if tt.want > 0 && got[0] != task {
				t.Fatalf("task mismatch: want %+v, got %+v", task, got[0])
			}
		})
	}
}

func TestTaskRepository_Update(t *testing.T) {
	task := sampleTask()

	tests := []struct {
		name    string
		result  func(sqlmock.Sqlmock)
		want    bool
		wantErr bool
	}{
		{
			name: "owned task",
			result: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(updateTaskSQL)).
					WithArgs(task.Description, "InProgress", task.Deadline, task.UpdatedAt, task.ID, "u1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			want: true,
		},
		{
			name: "not owned or missing",
			result: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(updateTaskSQL)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			want: false,
		},
		{
			name: "rows affected error",
			result: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(updateTaskSQL)).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()
			tt.result(mock)

			ok, err := NewTaskRepository(db).Update(context.Background(), task)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.want {
				t.Fatalf("want %v, got %v", tt.want, ok)
			}
		})
	}
}

func TestTaskRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		execErr  error
		want     bool
	}{
		{name: "deleted", affected: 1, want: true},
		{name: "someone else's task", affected: 0, want: false},
		{name: "exec error", execErr: errors.New("locked")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()

			exp := mock.ExpectExec(regexp.QuoteMeta(deleteTaskSQL)).WithArgs("t1", "u1")
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			ok, err := NewTaskRepository(db).Delete(context.Background(), "u1", "t1")
			if tt.execErr != nil {
				if !errors.Is(err, tt.execErr) {
					t.Fatalf("expected wrapped %v, got %v", tt.execErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.want {
				t.Fatalf("want %v, got %v", tt.want, ok)
			}
		})
	}
}
