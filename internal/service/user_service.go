package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/staynest/rental-service/internal/auth"
	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/events"
	"github.com/staynest/rental-service/internal/repository"
	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

// UserService manages guest accounts. Updates and deletes are self-scoped.
type UserService struct {
	users      repository.UserRepository
	guard      *Guard
	pub        publisher
	bcryptCost int
}

// List returns users matching filter.
func (s *UserService) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, repository.EntityUser)
	}
	return user, nil
}

// Create registers a user with a hashed password.
func (s *UserService) Create(ctx context.Context, actor *auth.Principal, input domain.UserInput) (*domain.User, error) {
	if err := s.guard.ValidateInput(input); err != nil {
		return nil, err
	}
	hash, err := hashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Username:       input.Username,
		PasswordHash:   hash,
		Name:           input.Name,
		Email:          input.Email,
		PhoneNumber:    input.PhoneNumber,
		ProfilePicture: input.ProfilePicture,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeError(err, repository.EntityUser)
	}
	s.pub.emit(ctx, events.ResourceUser, events.ActionCreated, user.ID, actor, nil)
	return user, nil
}

// Update applies patch to the caller's own account.
func (s *UserService) Update(ctx context.Context, actor *auth.Principal, id string, patch domain.UserPatch) (*domain.User, error) {
	if err := s.guard.ValidatePatch(patch); err != nil {
		return nil, err
	}
	if err := auth.EnsureSelf(actor, id, "update"); err != nil {
		return nil, err
	}
	if patch.Password != nil {
		hash, err := hashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		patch.Password = &hash
	}
	user, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, repository.EntityUser)
	}
	s.pub.emit(ctx, events.ResourceUser, events.ActionUpdated, id, actor, nil)
	return user, nil
}

// Delete removes the caller's own account together with its bookings and reviews.
func (s *UserService) Delete(ctx context.Context, actor *auth.Principal, id string) (string, error) {
	if err := auth.EnsureSelf(actor, id, "delete"); err != nil {
		return "", err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return "", storeError(err, repository.EntityUser)
	}
	s.pub.emit(ctx, events.ResourceUser, events.ActionDeleted, id, actor, nil)
	return deletedMessage(repository.EntityUser, id), nil
}

func deletedMessage(entity, id string) string {
	return fmt.Sprintf("%s with id %s was deleted", entity, id)
}

// hashPassword reports an over-long password as a validation failure.
func hashPassword(password string, cost int) (string, error) {
	hash, err := auth.HashPassword(password, cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperrors.NewValidationError("invalid fields: password",
			map[string]any{"invalid": map[string]string{"password": "bcryptlen"}})
	}
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}
