package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dangtrinh58/goshop/internal/core/domain"
	"github.com/dangtrinh58/goshop/internal/port"
)

type UserService struct {
	users port.UserRepository
}

func NewUserService(users port.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (domain.User, error) {
	return s.users.GetUser(ctx, id)
}

// Update applies a profile patch. Non-admins may only edit their own profile.
// A new password is re-hashed before it is stored.
func (s *UserService) Update(ctx context.Context, id int64, patch domain.UserUpdate, requesterID int64, requesterRole domain.Role) (domain.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if requesterRole != domain.RoleAdmin && requesterID != user.ID {
		return domain.User{}, fmt.Errorf("%w: cannot edit another user's profile", domain.ErrForbidden)
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Age != nil {
		user.Age = patch.Age
	}
	if patch.Address != nil {
		user.Address = patch.Address
	}
	if patch.Phone != nil {
		user.Phone = patch.Phone
	}
	if patch.Avatar != nil {
		user.Avatar = patch.Avatar
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcryptCost)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hash)
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return s.users.GetUser(ctx, id)
}

// Delete removes a user account; admin only.
func (s *UserService) Delete(ctx context.Context, id int64, requesterRole domain.Role) error {
	if requesterRole != domain.RoleAdmin {
		return fmt.Errorf("%w: only admins can delete users", domain.ErrForbidden)
	}
	return s.users.DeleteUser(ctx, id)
}
