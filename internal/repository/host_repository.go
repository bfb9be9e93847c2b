package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staynest/rental-service/internal/domain"
)

// HostRepository manages host persistence.
type HostRepository interface {
	Create(ctx context.Context, host *domain.Host) error
	// Update applies patch; patch.Password, when set, must already be hashed.
	Update(ctx context.Context, id string, patch domain.HostPatch) (*domain.Host, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Host, error)
	List(ctx context.Context, filter domain.HostFilter) ([]domain.Host, error)
}

const hostColumns = `id, username, password_hash, name, email, phone_number, profile_picture, about_me, created_at, updated_at`

type hostRepository struct {
	pool *pgxpool.Pool
}

// NewHostRepository builds the repository.
func NewHostRepository(pool *pgxpool.Pool) HostRepository {
	return &hostRepository{pool: pool}
}

func (r *hostRepository) Create(ctx context.Context, host *domain.Host) error {
	const query = `
        INSERT INTO hosts (id, username, password_hash, name, email, phone_number, profile_picture, about_me)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at, updated_at`

	if host.ID == "" {
		host.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query,
		host.ID,
		host.Username,
		host.PasswordHash,
		host.Name,
		host.Email,
		host.PhoneNumber,
		host.ProfilePicture,
		host.AboutMe,
	).Scan(&host.CreatedAt, &host.UpdatedAt)
	return translate(err)
}

func (r *hostRepository) Update(ctx context.Context, id string, patch domain.HostPatch) (*domain.Host, error) {
	var b setBuilder
	addIfSet(&b, "username", patch.Username)
	addIfSet(&b, "password_hash", patch.Password)
	addIfSet(&b, "name", patch.Name)
	addIfSet(&b, "email", patch.Email)
	addIfSet(&b, "phone_number", patch.PhoneNumber)
	addIfSet(&b, "profile_picture", patch.ProfilePicture)
	addIfSet(&b, "about_me", patch.AboutMe)

	query, args := b.build("hosts", id, hostColumns, true)
	host, err := scanHost(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err)
	}
	return host, nil
}

func (r *hostRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM hosts WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *hostRepository) GetByID(ctx context.Context, id string) (*domain.Host, error) {
	host, err := scanHost(r.pool.QueryRow(ctx, `SELECT `+hostColumns+` FROM hosts WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return host, nil
}

func (r *hostRepository) List(ctx context.Context, filter domain.HostFilter) ([]domain.Host, error) {
	var w whereBuilder
	if filter.Name != "" {
		w.add("LOWER(name) LIKE '%%' || LOWER($%d) || '%%'", filter.Name)
	}

	rows, err := r.pool.Query(ctx, `SELECT `+hostColumns+` FROM hosts WHERE `+w.sql()+` ORDER BY created_at`, w.args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []domain.Host{}
	for rows.Next() {
		host, err := scanHost(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *host)
	}
	return result, rows.Err()
}

func scanHost(row pgx.Row) (*domain.Host, error) {
	var host domain.Host
	if err := row.Scan(
		&host.ID,
		&host.Username,
		&host.PasswordHash,
		&host.Name,
		&host.Email,
		&host.PhoneNumber,
		&host.ProfilePicture,
		&host.AboutMe,
		&host.CreatedAt,
		&host.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &host, nil
}
