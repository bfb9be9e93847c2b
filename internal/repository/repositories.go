package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles the per-entity stores handed to the service layer.
type Repositories struct {
	Users      UserRepository
	Hosts      HostRepository
	Properties PropertyRepository
	Amenities  AmenityRepository
	Bookings   BookingRepository
	Reviews    ReviewRepository
}

// NewPostgres wires every repository to the same pool.
func NewPostgres(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:      NewUserRepository(pool),
		Hosts:      NewHostRepository(pool),
		Properties: NewPropertyRepository(pool),
		Amenities:  NewAmenityRepository(pool),
		Bookings:   NewBookingRepository(pool),
		Reviews:    NewReviewRepository(pool),
	}
}
