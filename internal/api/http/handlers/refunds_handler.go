package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/trusttrip/booking-service/internal/api/dto"
	"github.com/trusttrip/booking-service/internal/api/response"
	"github.com/trusttrip/booking-service/internal/domain"
	"github.com/trusttrip/booking-service/internal/repository"
	"github.com/trusttrip/booking-service/internal/service"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

// RefundsHandler exposes refund requests and quotes.
type RefundsHandler struct {
	refunds *service.RefundService
}

// NewRefundsHandler constructs handler.
func NewRefundsHandler(refunds *service.RefundService) *RefundsHandler {
	return &RefundsHandler{refunds: refunds}
}

// List handles GET /api/refund.
func (h *RefundsHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	userID, err := scopeToCaller(identity, optionalQuery(c, "userId"))
	if err != nil {
		return err
	}
	filter := repository.RefundFilter{UserID: userID}
	if status := optionalQuery(c, "status"); status != nil {
		s := domain.RefundStatus(strings.ToUpper(*status))
		filter.Status = &s
	}
	page, err := h.refunds.List(c.UserContext(), filter, listParams(c))
	if err != nil {
		return err
	}
	return respondPage(c, "Refunds retrieved successfully", page, dto.NewRefundResponses)
}

// Quote handles GET /api/refund/quote?paymentId=.
func (h *RefundsHandler) Quote(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	paymentID := optionalQuery(c, "paymentId")
	if paymentID == nil {
		return apperrors.NewFieldError("paymentId", "paymentId is required")
	}
	quote, err := h.refunds.Quote(c.UserContext(), identity, *paymentID)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Refund quote calculated", dto.NewRefundQuoteResponse(quote))
}

// Create handles POST /api/refund.
func (h *RefundsHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateRefundRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	created, err := h.refunds.Request(c.UserContext(), identity, service.RefundInput{
		Reason:    req.Reason,
		PaymentID: req.PaymentID,
		UserID:    req.UserID,
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, "Refund request created successfully", dto.NewRefundResponse(created))
}
