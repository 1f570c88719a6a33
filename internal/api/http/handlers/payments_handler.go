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

// PaymentsHandler exposes settlements.
type PaymentsHandler struct {
	payments *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(payments *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{payments: payments}
}

// List handles GET /api/payments.
func (h *PaymentsHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	userID, err := scopeToCaller(identity, optionalQuery(c, "userId"))
	if err != nil {
		return err
	}
	filter := repository.PaymentFilter{
		UserID:    userID,
		ProjectID: optionalQuery(c, "projectId"),
		BookingID: optionalQuery(c, "bookingId"),
	}
	if status := optionalQuery(c, "status"); status != nil {
		s := domain.PaymentStatus(strings.ToUpper(*status))
		filter.Status = &s
	}
	page, err := h.payments.List(c.UserContext(), filter, listParams(c))
	if err != nil {
		return err
	}
	return respondPage(c, "Payments retrieved successfully", page, dto.NewPaymentResponses)
}

// Get handles GET /api/payments/:id.
func (h *PaymentsHandler) Get(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	payment, err := h.payments.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := requireOwner(identity, payment.UserID); err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Payment retrieved successfully", dto.NewPaymentResponse(payment))
}

// Create handles POST /api/payments.
func (h *PaymentsHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreatePaymentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	payment, err := h.payments.Create(c.UserContext(), identity, service.PaymentInput{
		Amount:        req.Amount,
		Currency:      req.Currency,
		Method:        domain.PaymentMethod(req.PaymentMethod),
		TransactionID: req.TransactionID,
		UserID:        req.UserID,
		ProjectID:     req.ProjectID,
		BookingID:     req.BookingID,
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, "Payment processed successfully", dto.NewPaymentResponse(payment))
}
