package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/triviapro/user-service/internal/domain"
	"github.com/triviapro/user-service/internal/repository"
	"github.com/triviapro/user-service/internal/utils"
)

// userService implements UserService
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// ListAll returns every user record
func (s *userService) ListAll(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID returns a user or repository.ErrNotFound
func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByEmail returns a user, or nil if no record matches
func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile merges the supplied fields into the stored record
func (s *userService) UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		email := utils.SanitizeEmail(*patch.Email)
		if !utils.ValidateEmail(email) {
			return nil, fmt.Errorf("invalid email format: %w", ErrValidation)
		}
		user.Email = email
	}
	if patch.DisplayName != nil {
		user.DisplayName = *patch.DisplayName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

// UpdateStats applies only the stat fields present in the patch
func (s *userService) UpdateStats(ctx context.Context, id string, patch domain.StatsPatch) (*domain.User, error) {
	return s.userRepo.UpdateStats(ctx, id, patch)
}

// Delete removes a user record; removal is idempotent
func (s *userService) Delete(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}
