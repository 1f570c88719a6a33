package dto

import (
	"time"

	"github.com/trusttrip/booking-service/internal/domain"
)

// CreateReviewRequest payload.
type CreateReviewRequest struct {
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment" validate:"omitempty,max=1000"`
	UserID    string  `json:"userId" validate:"omitempty,uuid"`
	ProjectID string  `json:"projectId" validate:"required,uuid"`
}

// ReviewResponse describes a review.
type ReviewResponse struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	UserID    string    `json:"userId"`
	ProjectID string    `json:"projectId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewReviewResponse maps a review.
func NewReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		UserID:    r.UserID,
		ProjectID: r.ProjectID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// NewReviewResponses maps a page of reviews.
func NewReviewResponses(reviews []domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, NewReviewResponse(&reviews[i]))
	}
	return out
}
