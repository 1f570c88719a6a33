package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/trusttrip/booking-service/internal/api/dto"
	"github.com/trusttrip/booking-service/internal/api/response"
	"github.com/trusttrip/booking-service/internal/service"
)

const reportingCurrency = "USD"

// AdminHandler serves administrator endpoints. The gate restricts /api/admin to admins.
type AdminHandler struct {
	admin   *service.AdminService
	refunds *service.RefundService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin *service.AdminService, refunds *service.RefundService) *AdminHandler {
	return &AdminHandler{admin: admin, refunds: refunds}
}

// Dashboard handles GET /api/admin.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	dashboard, err := h.admin.Dashboard(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Admin dashboard data retrieved successfully",
		dto.NewDashboardResponse(dashboard, reportingCurrency))
}

// UserAction handles POST /api/admin/users.
func (h *AdminHandler) UserAction(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.UserActionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.admin.ApplyUserAction(c.UserContext(), identity, service.UserActionInput{
		UserID:  req.UserID,
		Action:  service.UserAction(req.Action),
		NewRole: req.NewRole,
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, fmt.Sprintf("User action '%s' completed successfully", req.Action),
		dto.NewUserResponse(user))
}

// DecideRefund handles PATCH /api/admin/refunds/:id.
func (h *AdminHandler) DecideRefund(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.DecideRefundRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	decided, err := h.refunds.Decide(c.UserContext(), identity, c.Params("id"), req.Approve())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Refund "+strings.ToLower(string(decided.Status)), dto.NewRefundResponse(decided))
}
