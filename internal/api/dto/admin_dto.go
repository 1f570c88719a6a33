package dto

import (
	"github.com/trusttrip/booking-service/internal/service"
)

// UserActionRequest payload of POST /api/admin/users.
type UserActionRequest struct {
	UserID  string `json:"userId" validate:"required,uuid"`
	Action  string `json:"action" validate:"required,oneof=promote demote ban unban"`
	NewRole string `json:"newRole" validate:"omitempty,oneof=admin user"`
}

// DashboardResponse is the admin landing page.
type DashboardResponse struct {
	Message    string              `json:"message"`
	User       DashboardUser       `json:"user"`
	Statistics DashboardStatistics `json:"statistics"`
}

// DashboardUser is the administrator viewing the dashboard.
type DashboardUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// DashboardStatistics are live platform totals.
type DashboardStatistics struct {
	TotalUsers      int     `json:"totalUsers"`
	ActiveProjects  int     `json:"activeProjects"`
	PendingBookings int     `json:"pendingBookings"`
	PendingRefunds  int     `json:"pendingRefunds"`
	TotalRevenue    float64 `json:"totalRevenue"`
	Currency        string  `json:"currency"`
}

// NewDashboardResponse maps the dashboard.
func NewDashboardResponse(d *service.Dashboard, currency string) DashboardResponse {
	return DashboardResponse{
		Message: "Welcome to the Admin Dashboard",
		User: DashboardUser{
			ID:    d.Admin.SubjectID,
			Email: d.Admin.Email,
			Role:  d.Admin.Role.String(),
		},
		Statistics: DashboardStatistics{
			TotalUsers:      d.Stats.TotalUsers,
			ActiveProjects:  d.Stats.ActiveProjects,
			PendingBookings: d.Stats.PendingBookings,
			PendingRefunds:  d.Stats.PendingRefunds,
			TotalRevenue:    d.Stats.TotalRevenue,
			Currency:        currency,
		},
	}
}
