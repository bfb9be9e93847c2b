package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staynest/rental-service/internal/domain"
)

// AmenityRepository manages amenity persistence.
type AmenityRepository interface {
	Create(ctx context.Context, amenity *domain.Amenity) error
	Update(ctx context.Context, id string, patch domain.AmenityPatch) (*domain.Amenity, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Amenity, error)
	List(ctx context.Context) ([]domain.Amenity, error)
}

type amenityRepository struct {
	pool *pgxpool.Pool
}

// NewAmenityRepository builds the repository.
func NewAmenityRepository(pool *pgxpool.Pool) AmenityRepository {
	return &amenityRepository{pool: pool}
}

func (r *amenityRepository) Create(ctx context.Context, amenity *domain.Amenity) error {
	if amenity.ID == "" {
		amenity.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO amenities (id, name) VALUES ($1,$2)`, amenity.ID, amenity.Name)
	return translate(err)
}

func (r *amenityRepository) Update(ctx context.Context, id string, patch domain.AmenityPatch) (*domain.Amenity, error) {
	var b setBuilder
	addIfSet(&b, "name", patch.Name)
	query, args := b.build("amenities", id, "id, name", false)

	amenity, err := scanAmenity(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err)
	}
	return amenity, nil
}

func (r *amenityRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM amenities WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *amenityRepository) GetByID(ctx context.Context, id string) (*domain.Amenity, error) {
	amenity, err := scanAmenity(r.pool.QueryRow(ctx, `SELECT id, name FROM amenities WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return amenity, nil
}

func (r *amenityRepository) List(ctx context.Context) ([]domain.Amenity, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM amenities ORDER BY name`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []domain.Amenity{}
	for rows.Next() {
		amenity, err := scanAmenity(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *amenity)
	}
	return result, rows.Err()
}

func scanAmenity(row pgx.Row) (*domain.Amenity, error) {
	var amenity domain.Amenity
	if err := row.Scan(&amenity.ID, &amenity.Name); err != nil {
		return nil, err
	}
	return &amenity, nil
}
