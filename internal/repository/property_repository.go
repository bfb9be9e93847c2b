package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staynest/rental-service/internal/domain"
)

// PropertyRepository manages properties and their amenity links.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	Update(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
}

const propertySelect = `
        SELECT p.id, p.host_id, p.title, p.description, p.location, p.price_per_night,
               p.bedroom_count, p.bathroom_count, p.max_guest_count, p.rating,
               COALESCE((SELECT array_agg(pa.amenity_id ORDER BY pa.amenity_id)
                         FROM property_amenities pa WHERE pa.property_id = p.id), '{}'),
               p.created_at, p.updated_at
        FROM properties p`

type rowQueryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type propertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository instantiates repository.
func NewPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool}
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	const query = `
        INSERT INTO properties (id, host_id, title, description, location, price_per_night,
                                bedroom_count, bathroom_count, max_guest_count, rating)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING created_at, updated_at`

	if property.ID == "" {
		property.ID = uuid.NewString()
	}
	if property.AmenityIDs == nil {
		property.AmenityIDs = []string{}
	}
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query,
			property.ID,
			property.HostID,
			property.Title,
			property.Description,
			property.Location,
			property.PricePerNight,
			property.BedroomCount,
			property.BathRoomCount,
			property.MaxGuestCount,
			property.Rating,
		).Scan(&property.CreatedAt, &property.UpdatedAt); err != nil {
			return err
		}
		return replaceAmenities(ctx, tx, property.ID, property.AmenityIDs)
	})
	return translate(err)
}

func (r *propertyRepository) Update(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	var b setBuilder
	addIfSet(&b, "host_id", patch.HostID)
	addIfSet(&b, "title", patch.Title)
	addIfSet(&b, "description", patch.Description)
	addIfSet(&b, "location", patch.Location)
	addIfSet(&b, "price_per_night", patch.PricePerNight)
	addIfSet(&b, "bedroom_count", patch.BedroomCount)
	addIfSet(&b, "bathroom_count", patch.BathRoomCount)
	addIfSet(&b, "max_guest_count", patch.MaxGuestCount)
	addIfSet(&b, "rating", patch.Rating)
	query, args := b.build("properties", id, "id", true)

	var updated *domain.Property
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var touched string
		if err := tx.QueryRow(ctx, query, args...).Scan(&touched); err != nil {
			return err
		}
		if patch.AmenityIDs != nil {
			if err := replaceAmenities(ctx, tx, id, *patch.AmenityIDs); err != nil {
				return err
			}
		}
		var err error
		updated, err = getProperty(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	property, err := getProperty(ctx, r.pool, id)
	if err != nil {
		return nil, translate(err)
	}
	return property, nil
}

func (r *propertyRepository) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	var w whereBuilder
	if filter.Location != "" {
		w.add("LOWER(p.location) LIKE '%%' || LOWER($%d) || '%%'", filter.Location)
	}
	if filter.PricePerNight != nil {
		w.add("p.price_per_night=$%d", *filter.PricePerNight)
	}
	if filter.Amenity != "" {
		w.add(`EXISTS (SELECT 1 FROM property_amenities pa JOIN amenities a ON a.id = pa.amenity_id
                       WHERE pa.property_id = p.id AND LOWER(a.name) = LOWER($%d))`, filter.Amenity)
	}

	rows, err := r.pool.Query(ctx, propertySelect+` WHERE `+w.sql()+` ORDER BY p.created_at`, w.args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []domain.Property{}
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *property)
	}
	return result, rows.Err()
}

func getProperty(ctx context.Context, q rowQueryer, id string) (*domain.Property, error) {
	return scanProperty(q.QueryRow(ctx, propertySelect+` WHERE p.id=$1`, id))
}

func replaceAmenities(ctx context.Context, tx pgx.Tx, propertyID string, amenityIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM property_amenities WHERE property_id=$1`, propertyID); err != nil {
		return err
	}
	for _, amenityID := range amenityIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO property_amenities (property_id, amenity_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
			propertyID, amenityID,
		); err != nil {
			return err
		}
	}
	return nil
}

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var property domain.Property
	if err := row.Scan(
		&property.ID,
		&property.HostID,
		&property.Title,
		&property.Description,
		&property.Location,
		&property.PricePerNight,
		&property.BedroomCount,
		&property.BathRoomCount,
		&property.MaxGuestCount,
		&property.Rating,
		&property.AmenityIDs,
		&property.CreatedAt,
		&property.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &property, nil
}
