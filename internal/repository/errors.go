package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store-level failures every implementation reports with these sentinels.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("record already exists")
	ErrReferenceMissing = errors.New("referenced record missing")
)

// Entity names used in ReferenceError.
const (
	EntityUser     = "User"
	EntityHost     = "Host"
	EntityProperty = "Property"
	EntityAmenity  = "Amenity"
)

// ReferenceError is a foreign-key rejection naming the missing referenced entity.
type ReferenceError struct {
	Entity string
}

func (e *ReferenceError) Error() string {
	return e.Entity + " reference missing"
}

func (e *ReferenceError) Is(target error) bool {
	return target == ErrReferenceMissing
}

// fkEntities maps foreign-key constraint names from the schema to the referenced entity.
var fkEntities = map[string]string{
	"properties_host_id_fkey":             EntityHost,
	"bookings_user_id_fkey":               EntityUser,
	"bookings_property_id_fkey":           EntityProperty,
	"reviews_user_id_fkey":                EntityUser,
	"reviews_property_id_fkey":            EntityProperty,
	"property_amenities_property_id_fkey": EntityProperty,
	"property_amenities_amenity_id_fkey":  EntityAmenity,
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate converts driver errors into the package sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgForeignKeyViolation:
			entity, ok := fkEntities[pgErr.ConstraintName]
			if !ok {
				entity = "Referenced entity"
			}
			return &ReferenceError{Entity: entity}
		}
	}
	return err
}
