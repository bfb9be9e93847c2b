package service

import (
	"context"

	"github.com/staynest/rental-service/internal/auth"
	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/events"
	"github.com/staynest/rental-service/internal/repository"
	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

// HostService manages property owners.
type HostService struct {
	hosts      repository.HostRepository
	guard      *Guard
	pub        publisher
	bcryptCost int
}

// List returns hosts matching filter.
func (s *HostService) List(ctx context.Context, filter domain.HostFilter) ([]domain.Host, error) {
	hosts, err := s.hosts.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return hosts, nil
}

// Get fetches a host by id.
func (s *HostService) Get(ctx context.Context, id string) (*domain.Host, error) {
	host, err := s.hosts.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, repository.EntityHost)
	}
	return host, nil
}

// Create registers a host with a hashed password.
func (s *HostService) Create(ctx context.Context, actor *auth.Principal, input domain.HostInput) (*domain.Host, error) {
	if err := s.guard.ValidateInput(input); err != nil {
		return nil, err
	}
	hash, err := hashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	host := &domain.Host{
		Username:       input.Username,
		PasswordHash:   hash,
		Name:           input.Name,
		Email:          input.Email,
		PhoneNumber:    input.PhoneNumber,
		ProfilePicture: input.ProfilePicture,
		AboutMe:        input.AboutMe,
	}
	if err := s.hosts.Create(ctx, host); err != nil {
		return nil, storeError(err, repository.EntityHost)
	}
	s.pub.emit(ctx, events.ResourceHost, events.ActionCreated, host.ID, actor, nil)
	return host, nil
}

// Update applies patch to a host.
func (s *HostService) Update(ctx context.Context, actor *auth.Principal, id string, patch domain.HostPatch) (*domain.Host, error) {
	if err := s.guard.ValidatePatch(patch); err != nil {
		return nil, err
	}
	if patch.Password != nil {
		hash, err := hashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		patch.Password = &hash
	}
	host, err := s.hosts.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, repository.EntityHost)
	}
	s.pub.emit(ctx, events.ResourceHost, events.ActionUpdated, id, actor, nil)
	return host, nil
}

// Delete removes a host and, by cascade, its properties.
func (s *HostService) Delete(ctx context.Context, actor *auth.Principal, id string) (string, error) {
	if err := s.hosts.Delete(ctx, id); err != nil {
		return "", storeError(err, repository.EntityHost)
	}
	s.pub.emit(ctx, events.ResourceHost, events.ActionDeleted, id, actor, nil)
	return deletedMessage(repository.EntityHost, id), nil
}
