package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskmate/internal/models"
	"taskmate/internal/repository"
)

// Domain errors for auth flows.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// UserExistsError carries the conflicting email. errors.Is(err, ErrUserExists) holds.
type UserExistsError struct {
	Email string
}

func (e *UserExistsError) Error() string {
	return fmt.Sprintf("User with email %s already exists", e.Email)
}

func (e *UserExistsError) Is(target error) bool { return target == ErrUserExists }

// AuthService handles user auth logic
type AuthService struct {
	users  repository.Users
	hasher PasswordHasher
	now    func() time.Time

	// digest checked against when the email is unknown, so both failures cost one bcrypt compare
	decoyOnce   sync.Once
	decoyDigest string
}

func NewAuthService(users repository.Users, hasher PasswordHasher) *AuthService {
	return &AuthService{users: users, hasher: hasher, now: time.Now}
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a hashed password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := NormalizeEmail(in.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, &UserExistsError{Email: email}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		// lost a race with a concurrent signup for the same email
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &UserExistsError{Email: email}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

// Login returns the user for a matching email/password pair.
// An unknown email and a wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	u, err := s.users.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		s.burnCompare(in.Password)
		return nil, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(in.Password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password for user %s: %w", u.ID, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// CurrentUser loads the user a session points at.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *AuthService) burnCompare(plaintext string) {
	s.decoyOnce.Do(func() {
		s.decoyDigest, _ = s.hasher.Hash("taskmate-decoy-password")
	})
	if s.decoyDigest != "" {
		_, _ = s.hasher.Verify(plaintext, s.decoyDigest)
	}
}
