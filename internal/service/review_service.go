package service

import (
	"context"

	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/domain"
	"github.com/trusttrip/booking-service/internal/repository"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

// ReviewService manages project ratings.
type ReviewService struct {
	store repository.Store
}

// NewReviewService builds the service.
func NewReviewService(deps Dependencies) *ReviewService {
	return &ReviewService{store: deps.Store}
}

// ReviewInput describes a rating.
type ReviewInput struct {
	Rating    int
	Comment   *string
	UserID    string
	ProjectID string
}

// List returns a page of reviews.
func (s *ReviewService) List(ctx context.Context, filter repository.ReviewFilter, params repository.ListParams) (Page[domain.Review], error) {
	reviews := s.store.Repos().Reviews
	items, err := reviews.List(ctx, filter, params)
	if err != nil {
		return Page[domain.Review]{}, err
	}
	total, err := reviews.Count(ctx, filter)
	if err != nil {
		return Page[domain.Review]{}, err
	}
	return newPage(items, total, params), nil
}

// Create stores a review. Each user may review a project once.
func (s *ReviewService) Create(ctx context.Context, identity auth.Identity, input ReviewInput) (*domain.Review, error) {
	ownerID, err := resolveOwner(identity, input.UserID)
	if err != nil {
		return nil, err
	}

	repos := s.store.Repos()
	if _, err := repos.Users.GetByID(ctx, ownerID); err != nil {
		return nil, notFoundAs(err, "User")
	}
	if _, err := repos.Projects.GetByID(ctx, input.ProjectID); err != nil {
		return nil, notFoundAs(err, "Project")
	}
	if _, err := repos.Reviews.GetByUserAndProject(ctx, ownerID, input.ProjectID); err == nil {
		return nil, apperrors.NewConflict("You have already reviewed this project")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	review := &domain.Review{
		Rating:    input.Rating,
		Comment:   input.Comment,
		UserID:    ownerID,
		ProjectID: input.ProjectID,
	}
	if err := repos.Reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
