package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/trusttrip/booking-service/internal/domain"
)

// ReviewFilter narrows review listings.
type ReviewFilter struct {
	UserID    *string
	ProjectID *string
	MinRating *int
	MaxRating *int
}

// ReviewRepository encapsulates review persistence.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByUserAndProject(ctx context.Context, userID, projectID string) (*domain.Review, error)
	List(ctx context.Context, filter ReviewFilter, params ListParams) ([]domain.Review, error)
	Count(ctx context.Context, filter ReviewFilter) (int, error)
}

var reviewSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"rating":    "rating",
}

const reviewColumns = `id, rating, comment, user_id, project_id, created_at, updated_at`

type reviewRepository struct {
	db DBTX
}

// NewReviewRepository instantiates repository.
func NewReviewRepository(db DBTX) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (rating, comment, user_id, project_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		review.Rating,
		review.Comment,
		review.UserID,
		review.ProjectID,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
}

func (r *reviewRepository) GetByUserAndProject(ctx context.Context, userID, projectID string) (*domain.Review, error) {
	return scanReview(r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE user_id=$1 AND project_id=$2`, userID, projectID))
}

func (r *reviewRepository) List(ctx context.Context, filter ReviewFilter, params ListParams) ([]domain.Review, error) {
	cond := reviewConditions(filter)
	rows, err := r.db.Query(ctx, `SELECT `+reviewColumns+` FROM reviews`+cond.where()+page(params, reviewSortColumns), cond.args...)
	if err != nil {
		return nil, err
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

func (r *reviewRepository) Count(ctx context.Context, filter ReviewFilter) (int, error) {
	cond := reviewConditions(filter)
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`+cond.where(), cond.args...).Scan(&total)
	return total, err
}

func reviewConditions(filter ReviewFilter) conditions {
	var cond conditions
	if filter.UserID != nil {
		cond.add("user_id=%s", *filter.UserID)
	}
	if filter.ProjectID != nil {
		cond.add("project_id=%s", *filter.ProjectID)
	}
	if filter.MinRating != nil {
		cond.add("rating >= %s", *filter.MinRating)
	}
	if filter.MaxRating != nil {
		cond.add("rating <= %s", *filter.MaxRating)
	}
	return cond
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var review domain.Review
	if err := row.Scan(
		&review.ID,
		&review.Rating,
		&review.Comment,
		&review.UserID,
		&review.ProjectID,
		&review.CreatedAt,
		&review.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &review, nil
}
