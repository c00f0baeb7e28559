package service

import (
	"context"

	"taskmate/internal/models"
)

// mockUsers is a lightweight in-test mock for repository.Users.
type mockUsers struct {
	CreateFn     func(ctx context.Context, u models.User) error
	GetByEmailFn func(ctx context.Context, email string) (*models.User, error)
	GetByIDFn    func(ctx context.Context, id string) (*models.User, error)

	created   []models.User
	getEmails []string
}

func (m *mockUsers) Create(ctx context.Context, u models.User) error {
	m.created = append(m.created, u)
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, u)
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.getEmails = append(m.getEmails, email)
	if m.GetByEmailFn == nil {
		return nil, nil
	}
	return m.GetByEmailFn(ctx, email)
}

func (m *mockUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFn == nil {
		return nil, nil
	}
	return m.GetByIDFn(ctx, id)
}

// memUsers keeps users in a map and enforces unique emails like the real store.
type memUsers struct {
	byEmail map[string]models.User
}

func newMemUsers() *memUsers { return &memUsers{byEmail: map[string]models.User{}} }

func (m *memUsers) Create(_ context.Context, u models.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return errDuplicateForTest
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

// mockTasks is a lightweight in-test mock for repository.Tasks.
type mockTasks struct {
	CreateFn     func(ctx context.Context, t models.Task) error
	ListByUserFn func(ctx context.Context, userID string) ([]models.Task, error)
	UpdateFn     func(ctx context.Context, t models.Task) (bool, error)
	DeleteFn     func(ctx context.Context, userID, taskID string) (bool, error)

	created []models.Task
	updated []models.Task
	deleted [][2]string
}

func (m *mockTasks) Create(ctx context.Context, t models.Task) error {
	m.created = append(m.created, t)
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, t)
}

func (m *mockTasks) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	if m.ListByUserFn == nil {
		return nil, nil
	}
	return m.ListByUserFn(ctx, userID)
}

func (m *mockTasks) Update(ctx context.Context, t models.Task) (bool, error) {
	m.updated = append(m.updated, t)
	if m.UpdateFn == nil {
		return true, nil
	}
	return m.UpdateFn(ctx, t)
}

func (m *mockTasks) Delete(ctx context.Context, userID, taskID string) (bool, error) {
	m.deleted = append(m.deleted, [2]string{userID, taskID})
	if m.DeleteFn == nil {
		return true, nil
	}
	return m.DeleteFn(ctx, userID, taskID)
}
