// Package service implements the application's business rules on top of the
// repository layer. Every operation takes the acting identity as an explicit
// parameter; there is no ambient current-user state.
package service

import (
	"context"

	"inkwell/internal/credentials"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// AuthService implements registration and login.
type AuthService struct {
	users  repository.UserRepository
	scheme credentials.Scheme
}

// NewAuthService returns an AuthService using the given credential scheme.
func NewAuthService(users repository.UserRepository, scheme credentials.Scheme) *AuthService {
	return &AuthService{users: users, scheme: scheme}
}

// Register creates a new user. A taken username yields a Conflict AppError
// and no state change.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("The username '" + username + "' is already taken")
	}

	stored, err := s.scheme.Hash(password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Password: stored,
	}
	// The unique constraint backstops the first-match lookup above under
	// concurrent registrations.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials. Unknown usernames and wrong passwords fail
// with distinct taxonomy codes.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNoSuchUserError(username)
	}

	if !s.scheme.Verify(user.Password, password) {
		return nil, models.NewInvalidCredentialsError(username)
	}
	return user, nil
}
