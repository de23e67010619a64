package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dezz1er/foodgram-project-react/internal/auth"
	"github.com/dezz1er/foodgram-project-react/internal/domain"
	"github.com/dezz1er/foodgram-project-react/internal/repo"
)

// TokenIssuer signs a bearer token for a user ID.
// Satisfied by *auth.TokenManager.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

// UserService implements registration, login, and account operations.
type UserService struct {
	users  repo.UserRepo
	tokens TokenIssuer
}

// NewUserService constructs a UserService backed by the provided repo and token issuer.
func NewUserService(users repo.UserRepo, tokens TokenIssuer) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// RegisterInput carries a registration submission.
type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// Register validates input, hashes the password, and persists the user.
// Returns domain.ErrConflict if the email or username is taken.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if strings.TrimSpace(input.Email) == "" {
		return domain.User{}, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.Username) == "" {
		return domain.User{}, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if len(input.Password) < 8 {
		return domain.User{}, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}

	user := domain.User{
		Email:        input.Email,
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}
	return created, nil
}

// Login verifies the credentials and returns a signed bearer token.
// Returns domain.ErrInvalidCredentials for an unknown email or wrong password,
// without distinguishing the two.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("service.UserService.Login: %w", domain.ErrInvalidCredentials)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", fmt.Errorf("service.UserService.Login: %w", domain.ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("service.UserService.Login: %w", err)
	}
	return token, nil
}

// GetByID returns a single user by ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return user, nil
}

// ListPaged returns one page of users ordered by username.
func (s *UserService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.User, int64, error) {
	users, total, err := s.users.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.UserService.ListPaged: %w", err)
	}
	return users, total, nil
}

// SetPassword verifies the current password and stores the new one.
// Returns domain.ErrInvalidCredentials when the current password is wrong.
func (s *UserService) SetPassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("service.UserService.SetPassword: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, current) {
		return fmt.Errorf("service.UserService.SetPassword: %w", domain.ErrInvalidCredentials)
	}
	if len(next) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return fmt.Errorf("service.UserService.SetPassword: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("service.UserService.SetPassword: %w", err)
	}
	return nil
}
