package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/domain"
	"github.com/trusttrip/booking-service/internal/repository"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

// UserAction is an administrative change to an account.
type UserAction string

const (
	UserActionPromote UserAction = "promote"
	UserActionDemote  UserAction = "demote"
	UserActionBan     UserAction = "ban"
	UserActionUnban   UserAction = "unban"
)

// AdminService serves the administrator dashboard and account management.
type AdminService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewAdminService builds the service.
func NewAdminService(deps Dependencies) *AdminService {
	deps = deps.withDefaults()
	return &AdminService{store: deps.Store, logger: deps.Logger}
}

// DashboardStats are live platform totals.
type DashboardStats struct {
	TotalUsers      int
	ActiveProjects  int
	PendingBookings int
	PendingRefunds  int
	TotalRevenue    float64
}

// Dashboard is what an administrator sees on the landing page.
type Dashboard struct {
	Admin auth.Identity
	Stats DashboardStats
}

// UserActionInput describes an administrative account change.
type UserActionInput struct {
	UserID  string
	Action  UserAction
	NewRole string
}

// Dashboard collects live counts for the admin landing page.
func (s *AdminService) Dashboard(ctx context.Context, identity auth.Identity) (*Dashboard, error) {
	repos := s.store.Repos()
	var stats DashboardStats
	var err error

	if stats.TotalUsers, err = repos.Users.Count(ctx, repository.UserFilter{}); err != nil {
		return nil, err
	}
	activeProjects := repository.ProjectFilter{Statuses: []domain.ProjectStatus{domain.ProjectStatusPlanning, domain.ProjectStatusConfirmed}}
	if stats.ActiveProjects, err = repos.Projects.Count(ctx, activeProjects); err != nil {
		return nil, err
	}
	pending := domain.BookingStatusPending
	if stats.PendingBookings, err = repos.Bookings.Count(ctx, repository.BookingFilter{Status: &pending}); err != nil {
		return nil, err
	}
	requested := domain.RefundStatusRequested
	if stats.PendingRefunds, err = repos.Refunds.Count(ctx, repository.RefundFilter{Status: &requested}); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = repos.Payments.SumCompleted(ctx); err != nil {
		return nil, err
	}
	return &Dashboard{Admin: identity, Stats: stats}, nil
}

// DatabaseCounts reports user and project totals as a connectivity check.
func (s *AdminService) DatabaseCounts(ctx context.Context) (users, projects int, err error) {
	repos := s.store.Repos()
	if users, err = repos.Users.Count(ctx, repository.UserFilter{}); err != nil {
		return 0, 0, err
	}
	if projects, err = repos.Projects.Count(ctx, repository.ProjectFilter{}); err != nil {
		return 0, 0, err
	}
	return users, projects, nil
}

// ApplyUserAction promotes, demotes, bans or unbans an account. Administrators cannot
// demote or ban themselves.
func (s *AdminService) ApplyUserAction(ctx context.Context, actor auth.Identity, input UserActionInput) (*domain.User, error) {
	if input.UserID == actor.SubjectID && (input.Action == UserActionDemote || input.Action == UserActionBan) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Administrators cannot %s themselves", input.Action), nil)
	}

	var updated *domain.User
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		user, err := repos.Users.GetByID(ctx, input.UserID)
		if err != nil {
			return notFoundAs(err, "User")
		}

		switch input.Action {
		case UserActionPromote:
			role := auth.RoleAdmin
			if input.NewRole != "" {
				if role, err = auth.ParseRole(input.NewRole); err != nil {
					return apperrors.NewFieldError("newRole", fmt.Sprintf("Invalid role %q", input.NewRole))
				}
			}
			user.Role = string(role)
			err = repos.Users.UpdateRole(ctx, user.ID, user.Role)
		case UserActionDemote:
			user.Role = string(auth.RoleUser)
			err = repos.Users.UpdateRole(ctx, user.ID, user.Role)
		case UserActionBan:
			user.Status = domain.UserStatusBanned
			err = repos.Users.UpdateStatus(ctx, user.ID, user.Status)
		case UserActionUnban:
			user.Status = domain.UserStatusActive
			err = repos.Users.UpdateStatus(ctx, user.ID, user.Status)
		default:
			return apperrors.NewFieldError("action", "Invalid action. Valid actions: promote, demote, ban, unban")
		}
		if err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin user action",
		zap.String("admin_id", actor.SubjectID),
		zap.String("user_id", updated.ID),
		zap.String("action", string(input.Action)))
	return updated, nil
}
