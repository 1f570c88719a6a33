package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/trusttrip/booking-service/internal/api/dto"
	"github.com/trusttrip/booking-service/internal/api/response"
	"github.com/trusttrip/booking-service/internal/domain"
	"github.com/trusttrip/booking-service/internal/repository"
	"github.com/trusttrip/booking-service/internal/service"
)

// BookingsHandler exposes reservations.
type BookingsHandler struct {
	bookings *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookings *service.BookingService) *BookingsHandler {
	return &BookingsHandler{bookings: bookings}
}

// List handles GET /api/bookings.
func (h *BookingsHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	userID, err := scopeToCaller(identity, optionalQuery(c, "userId"))
	if err != nil {
		return err
	}
	filter := repository.BookingFilter{UserID: userID, ProjectID: optionalQuery(c, "projectId")}
	if status := optionalQuery(c, "status"); status != nil {
		s := domain.BookingStatus(strings.ToUpper(*status))
		filter.Status = &s
	}
	page, err := h.bookings.List(c.UserContext(), filter, listParams(c))
	if err != nil {
		return err
	}
	return respondPage(c, "Bookings retrieved successfully", page, dto.NewBookingResponses)
}

// Get handles GET /api/bookings/:id.
func (h *BookingsHandler) Get(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	booking, err := h.bookings.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := requireOwner(identity, booking.UserID); err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Booking retrieved successfully", dto.NewBookingResponse(booking))
}

// Create handles POST /api/bookings.
func (h *BookingsHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateBookingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	booking, err := h.bookings.Create(c.UserContext(), identity, service.BookingInput{
		Quantity:   req.Quantity,
		TotalPrice: req.TotalPrice,
		UserID:     req.UserID,
		ProjectID:  req.ProjectID,
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, "Booking created successfully", dto.NewBookingResponse(booking))
}

// Cancel handles POST /api/bookings/:id/cancel.
func (h *BookingsHandler) Cancel(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CancelBookingRequest
	if err := parseOptionalBody(c, &req); err != nil {
		return err
	}
	result, err := h.bookings.Cancel(c.UserContext(), identity, c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	message := "Booking cancelled successfully"
	if result.Refund != nil {
		message = "Booking cancelled and refund requested"
	}
	return response.Success(c, fiber.StatusOK, message, dto.NewCancelBookingResponse(result.Booking, result.Refund))
}
