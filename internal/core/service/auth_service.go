package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dangtrinh58/goshop/internal/core/domain"
	"github.com/dangtrinh58/goshop/internal/port"
)

const bcryptCost = 10

type AuthService struct {
	users  port.UserRepository
	tokens port.TokenIssuer
}

func NewAuthService(users port.UserRepository, tokens port.TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new account with the default user role.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.users.CreateUser(ctx, domain.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     domain.RoleUser,
	})
}

// Login verifies the credentials and returns the user with a signed token.
// Unknown emails and wrong passwords are both reported as
// domain.ErrInvalidCredentials so the response does not leak which one it was.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}
