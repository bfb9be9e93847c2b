// Package memory is an in-process implementation of the repository interfaces.
// It enforces the same unique, foreign-key and cascade rules as the Postgres schema.
package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/staynest/rental-service/internal/repository"
)

// table keeps rows keyed by id and remembers insertion order for listings.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(v string) bool { return v == id })
	return true
}

// each visits rows in insertion order. fn must not mutate the table.
func (t *table[T]) each(fn func(id string, v T)) {
	for _, id := range t.order {
		fn(id, t.rows[id])
	}
}

// Store holds every entity behind one lock so cascades are atomic.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users      *table[userRow]
	hosts      *table[hostRow]
	properties *table[propertyRow]
	amenities  *table[amenityRow]
	bookings   *table[bookingRow]
	reviews    *table[reviewRow]
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:        time.Now,
		users:      newTable[userRow](),
		hosts:      newTable[hostRow](),
		properties: newTable[propertyRow](),
		amenities:  newTable[amenityRow](),
		bookings:   newTable[bookingRow](),
		reviews:    newTable[reviewRow](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Users returns the user repository view of the store.
func (s *Store) Users() repository.UserRepository {
	return &userRepo{s: s}
}

func (s *Store) Hosts() repository.HostRepository {
	return &hostRepo{s: s}
}

func (s *Store) Properties() repository.PropertyRepository {
	return &propertyRepo{s: s}
}

func (s *Store) Amenities() repository.AmenityRepository {
	return &amenityRepo{s: s}
}

func (s *Store) Bookings() repository.BookingRepository {
	return &bookingRepo{s: s}
}

func (s *Store) Reviews() repository.ReviewRepository {
	return &reviewRepo{s: s}
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

// cascadeUser removes rows owned by a user. Caller holds the write lock.
func (s *Store) cascadeUser(userID string) {
	s.dropBookings(func(b bookingRow) bool { return b.UserID == userID })
	s.dropReviews(func(r reviewRow) bool { return r.UserID == userID })
}

// cascadeHost removes a host's properties and everything hanging off them.
func (s *Store) cascadeHost(hostID string) {
	var owned []string
	s.properties.each(func(id string, p propertyRow) {
		if p.HostID == hostID {
			owned = append(owned, id)
		}
	})
	for _, id := range owned {
		s.properties.remove(id)
		s.cascadeProperty(id)
	}
}

func (s *Store) cascadeProperty(propertyID string) {
	s.dropBookings(func(b bookingRow) bool { return b.PropertyID == propertyID })
	s.dropReviews(func(r reviewRow) bool { return r.PropertyID == propertyID })
}

func (s *Store) cascadeAmenity(amenityID string) {
	var linked []string
	s.properties.each(func(id string, p propertyRow) {
		if slices.Contains(p.AmenityIDs, amenityID) {
			linked = append(linked, id)
		}
	})
	for _, id := range linked {
		p, _ := s.properties.get(id)
		p.AmenityIDs = slices.DeleteFunc(slices.Clone(p.AmenityIDs), func(v string) bool { return v == amenityID })
		s.properties.put(id, p)
	}
}

func (s *Store) dropBookings(match func(bookingRow) bool) {
	var ids []string
	s.bookings.each(func(id string, b bookingRow) {
		if match(b) {
			ids = append(ids, id)
		}
	})
	for _, id := range ids {
		s.bookings.remove(id)
	}
}

func (s *Store) dropReviews(match func(reviewRow) bool) {
	var ids []string
	s.reviews.each(func(id string, r reviewRow) {
		if match(r) {
			ids = append(ids, id)
		}
	})
	for _, id := range ids {
		s.reviews.remove(id)
	}
}

func (s *Store) requireUser(id string) error {
	if !s.users.has(id) {
		return &repository.ReferenceError{Entity: repository.EntityUser}
	}
	return nil
}

func (s *Store) requireHost(id string) error {
	if !s.hosts.has(id) {
		return &repository.ReferenceError{Entity: repository.EntityHost}
	}
	return nil
}

func (s *Store) requireProperty(id string) error {
	if !s.properties.has(id) {
		return &repository.ReferenceError{Entity: repository.EntityProperty}
	}
	return nil
}

func (s *Store) requireAmenities(ids []string) error {
	for _, id := range ids {
		if !s.amenities.has(id) {
			return &repository.ReferenceError{Entity: repository.EntityAmenity}
		}
	}
	return nil
}

// Repositories exposes the store through the repository bundle.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Users:      s.Users(),
		Hosts:      s.Hosts(),
		Properties: s.Properties(),
		Amenities:  s.Amenities(),
		Bookings:   s.Bookings(),
		Reviews:    s.Reviews(),
	}
}
