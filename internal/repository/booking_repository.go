package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staynest/rental-service/internal/domain"
)

// BookingRepository encapsulates booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
}

const bookingColumns = `id, user_id, property_id, checkin_date, checkout_date, number_of_guests,
               total_price, booking_status, created_at, updated_at`

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository instantiates repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	const query = `
        INSERT INTO bookings (id, user_id, property_id, checkin_date, checkout_date,
                              number_of_guests, total_price, booking_status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at, updated_at`

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query,
		booking.ID,
		booking.UserID,
		booking.PropertyID,
		booking.CheckinDate,
		booking.CheckoutDate,
		booking.NumberOfGuests,
		booking.TotalPrice,
		booking.BookingStatus,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	return translate(err)
}

func (r *bookingRepository) Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	var b setBuilder
	addIfSet(&b, "user_id", patch.UserID)
	addIfSet(&b, "property_id", patch.PropertyID)
	addIfSet(&b, "checkin_date", patch.CheckinDate)
	addIfSet(&b, "checkout_date", patch.CheckoutDate)
	addIfSet(&b, "number_of_guests", patch.NumberOfGuests)
	addIfSet(&b, "total_price", patch.TotalPrice)
	addIfSet(&b, "booking_status", patch.BookingStatus)

	query, args := b.build("bookings", id, bookingColumns, true)
	booking, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err)
	}
	return booking, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := scanBooking(r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	var w whereBuilder
	if filter.UserID != "" {
		w.add("user_id=$%d", filter.UserID)
	}

	rows, err := r.pool.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE `+w.sql()+` ORDER BY checkin_date`, w.args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []domain.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *booking)
	}
	return result, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var booking domain.Booking
	if err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.PropertyID,
		&booking.CheckinDate,
		&booking.CheckoutDate,
		&booking.NumberOfGuests,
		&booking.TotalPrice,
		&booking.BookingStatus,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &booking, nil
}
