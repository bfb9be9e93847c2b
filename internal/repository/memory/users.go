package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/repository"
)

type userRow = domain.User

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if r.s.users.has(user.ID) || r.taken("", user.Username, user.Email) {
		return repository.ErrDuplicate
	}
	now := r.s.timestamp()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users.put(user.ID, *user)
	return nil
}

func (r *userRepo) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	applyValue(&user.Username, patch.Username)
	applyValue(&user.PasswordHash, patch.Password)
	applyValue(&user.Name, patch.Name)
	applyValue(&user.Email, patch.Email)
	applyValue(&user.PhoneNumber, patch.PhoneNumber)
	applyValue(&user.ProfilePicture, patch.ProfilePicture)
	if r.taken(id, user.Username, user.Email) {
		return nil, repository.ErrDuplicate
	}
	user.UpdatedAt = r.s.timestamp()
	r.s.users.put(id, user)
	return &user, nil
}

func (r *userRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.users.remove(id) {
		return repository.ErrNotFound
	}
	r.s.cascadeUser(id)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *domain.User
	r.s.users.each(func(_ string, u userRow) {
		if found == nil && u.Username == username {
			found = &u
		}
	})
	if found == nil {
		return nil, repository.ErrNotFound
	}
	return found, nil
}

func (r *userRepo) List(_ context.Context, filter domain.UserFilter) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.User{}
	r.s.users.each(func(_ string, u userRow) {
		if filter.Username != "" && u.Username != filter.Username {
			return
		}
		if filter.Email != "" && !equalFold(u.Email, filter.Email) {
			return
		}
		out = append(out, u)
	})
	return out, nil
}

// taken reports whether another user already holds username or email.
func (r *userRepo) taken(selfID, username, email string) bool {
	clash := false
	r.s.users.each(func(id string, u userRow) {
		if id != selfID && (u.Username == username || u.Email == email) {
			clash = true
		}
	})
	return clash
}
