package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trusttrip/booking-service/internal/api/dto"
	"github.com/trusttrip/booking-service/internal/api/response"
	"github.com/trusttrip/booking-service/internal/repository"
	"github.com/trusttrip/booking-service/internal/service"
)

// ReviewsHandler exposes project ratings.
type ReviewsHandler struct {
	reviews *service.ReviewService
}

// NewReviewsHandler constructs handler.
func NewReviewsHandler(reviews *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews}
}

// List handles GET /api/reviews.
func (h *ReviewsHandler) List(c *fiber.Ctx) error {
	filter := repository.ReviewFilter{
		UserID:    optionalQuery(c, "userId"),
		ProjectID: optionalQuery(c, "projectId"),
		MinRating: optionalQueryInt(c, "minRating"),
		MaxRating: optionalQueryInt(c, "maxRating"),
	}
	page, err := h.reviews.List(c.UserContext(), filter, listParams(c))
	if err != nil {
		return err
	}
	return respondPage(c, "Reviews retrieved successfully", page, dto.NewReviewResponses)
}

// Create handles POST /api/reviews.
func (h *ReviewsHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	review, err := h.reviews.Create(c.UserContext(), identity, service.ReviewInput{
		Rating:    req.Rating,
		Comment:   req.Comment,
		UserID:    req.UserID,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, "Review created successfully", dto.NewReviewResponse(review))
}
