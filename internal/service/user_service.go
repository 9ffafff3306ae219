package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// ProfileUpdateInput lists the self-editable profile fields. Nil fields are
// left unchanged.
type ProfileUpdateInput struct {
	Email       *string
	Fullname    *string
	DOB         *time.Time
	Description *string
}

// UserService serves the caller's own profile.
type UserService struct {
	users repository.UserRepository
}

// UserDependencies bundles repositories for user service.
type UserDependencies struct {
	UserRepo repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{users: deps.UserRepo}
}

// Profile returns the freshest copy of the actor's account.
func (s *UserService) Profile(ctx context.Context, actor *domain.User) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, repository.MapError(err, "User")
	}
	return user, nil
}

// UpdateProfile applies the supplied fields to the actor's account.
func (s *UserService) UpdateProfile(ctx context.Context, actor *domain.User, input ProfileUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, repository.MapError(err, "User")
	}

	if input.Email != nil && *input.Email != user.Email {
		existing, err := s.users.GetByEmail(ctx, *input.Email)
		switch {
		case err == nil && existing.ID != user.ID:
			return nil, apperrors.NewConflict("Email already in use", nil)
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.MapError(err)
		}
		user.Email = *input.Email
	}
	if input.Fullname != nil {
		user.Fullname = input.Fullname
	}
	if input.DOB != nil {
		user.DOB = input.DOB
	}
	if input.Description != nil {
		user.Description = input.Description
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("Email already in use", nil)
		}
		return nil, repository.MapError(err, "User")
	}
	return user, nil
}
