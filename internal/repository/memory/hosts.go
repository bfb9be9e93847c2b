package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/repository"
)

type hostRow = domain.Host

type hostRepo struct {
	s *Store
}

func (r *hostRepo) Create(_ context.Context, host *domain.Host) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if host.ID == "" {
		host.ID = uuid.NewString()
	}
	if r.s.hosts.has(host.ID) || r.taken("", host.Username, host.Email) {
		return repository.ErrDuplicate
	}
	now := r.s.timestamp()
	host.CreatedAt, host.UpdatedAt = now, now
	r.s.hosts.put(host.ID, *host)
	return nil
}

func (r *hostRepo) Update(_ context.Context, id string, patch domain.HostPatch) (*domain.Host, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	host, ok := r.s.hosts.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	applyValue(&host.Username, patch.Username)
	applyValue(&host.PasswordHash, patch.Password)
	applyValue(&host.Name, patch.Name)
	applyValue(&host.Email, patch.Email)
	applyValue(&host.PhoneNumber, patch.PhoneNumber)
	applyValue(&host.ProfilePicture, patch.ProfilePicture)
	applyValue(&host.AboutMe, patch.AboutMe)
	if r.taken(id, host.Username, host.Email) {
		return nil, repository.ErrDuplicate
	}
	host.UpdatedAt = r.s.timestamp()
	r.s.hosts.put(id, host)
	return &host, nil
}

func (r *hostRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.hosts.remove(id) {
		return repository.ErrNotFound
	}
	r.s.cascadeHost(id)
	return nil
}

func (r *hostRepo) GetByID(_ context.Context, id string) (*domain.Host, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	host, ok := r.s.hosts.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &host, nil
}

func (r *hostRepo) List(_ context.Context, filter domain.HostFilter) ([]domain.Host, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Host{}
	r.s.hosts.each(func(_ string, h hostRow) {
		if filter.Name != "" && !containsFold(h.Name, filter.Name) {
			return
		}
		out = append(out, h)
	})
	return out, nil
}

func (r *hostRepo) taken(selfID, username, email string) bool {
	clash := false
	r.s.hosts.each(func(id string, h hostRow) {
		if id != selfID && (h.Username == username || h.Email == email) {
			clash = true
		}
	})
	return clash
}
