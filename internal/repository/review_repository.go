package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staynest/rental-service/internal/domain"
)

// ReviewRepository encapsulates review persistence.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, id string, patch domain.ReviewPatch) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error)
}

const reviewColumns = `id, user_id, property_id, rating, comment, created_at, updated_at`

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository instantiates repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (id, user_id, property_id, rating, comment)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at, updated_at`

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query,
		review.ID,
		review.UserID,
		review.PropertyID,
		review.Rating,
		review.Comment,
	).Scan(&review.CreatedAt, &review.UpdatedAt)
	return translate(err)
}

func (r *reviewRepository) Update(ctx context.Context, id string, patch domain.ReviewPatch) (*domain.Review, error) {
	var b setBuilder
	addIfSet(&b, "user_id", patch.UserID)
	addIfSet(&b, "property_id", patch.PropertyID)
	addIfSet(&b, "rating", patch.Rating)
	addIfSet(&b, "comment", patch.Comment)

	query, args := b.build("reviews", id, reviewColumns, true)
	review, err := scanReview(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err)
	}
	return review, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	review, err := scanReview(r.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return review, nil
}

func (r *reviewRepository) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	var w whereBuilder
	if filter.PropertyID != "" {
		w.add("property_id=$%d", filter.PropertyID)
	}

	rows, err := r.pool.Query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE `+w.sql()+` ORDER BY created_at`, w.args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []domain.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *review)
	}
	return result, rows.Err()
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var review domain.Review
	if err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.PropertyID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &review, nil
}
