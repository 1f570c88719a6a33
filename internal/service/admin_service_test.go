package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/domain"
)

func TestAdminDashboard(t *testing.T) {
	store := newMemStore()
	deps, _ := newTestDeps(store)
	svc := NewAdminService(deps)

	admin := seedUser(t, store, "admin@trusttrip.com", auth.RoleAdmin)
	owner := seedUser(t, store, "owner@trusttrip.com", auth.RoleUser)
	project := seedProject(t, store, owner.ID, testNow.Add(48*time.Hour))
	done := seedProject(t, store, owner.ID, testNow.Add(96*time.Hour))
	store.projects[done.ID].Status = domain.ProjectStatusCompleted
	seedBooking(t, store, owner.ID, project.ID, domain.BookingStatusPending)
	paid := seedBooking(t, store, owner.ID, project.ID, domain.BookingStatusConfirmed)
	seedPayment(t, store, paid, 1200.5, domain.PaymentStatusCompleted)

	dashboard, err := svc.Dashboard(context.Background(), identityOf(admin))
	if err != nil {
		t.Fatal(err)
	}
	want := DashboardStats{TotalUsers: 2, ActiveProjects: 1, PendingBookings: 1, PendingRefunds: 0, TotalRevenue: 1200.5}
	if dashboard.Stats != want {
		t.Fatalf("stats = %+v, want %+v", dashboard.Stats, want)
	}
	if dashboard.Admin.SubjectID != admin.ID {
		t.Fatalf("admin = %+v", dashboard.Admin)
	}

	users, projects, err := svc.DatabaseCounts(context.Background())
	if err != nil || users != 2 || projects != 2 {
		t.Fatalf("DatabaseCounts() = %d, %d, %v", users, projects, err)
	}
}

func TestAdminUserActions(t *testing.T) {
	store := newMemStore()
	deps, _ := newTestDeps(store)
	svc := NewAdminService(deps)
	ctx := context.Background()

	admin := seedUser(t, store, "admin@trusttrip.com", auth.RoleAdmin)
	target := seedUser(t, store, "target@trusttrip.com", auth.RoleUser)
	actor := identityOf(admin)

	steps := []struct {
		action     UserAction
		wantRole   string
		wantStatus domain.UserStatus
	}{
		{action: UserActionPromote, wantRole: "admin", wantStatus: domain.UserStatusActive},
		{action: UserActionDemote, wantRole: "user", wantStatus: domain.UserStatusActive},
		{action: UserActionBan, wantRole: "user", wantStatus: domain.UserStatusBanned},
		{action: UserActionUnban, wantRole: "user", wantStatus: domain.UserStatusActive},
	}
	for _, step := range steps {
		updated, err := svc.ApplyUserAction(ctx, actor, UserActionInput{UserID: target.ID, Action: step.action})
		if err != nil {
			t.Fatalf("%s: %v", step.action, err)
		}
		stored := store.users[target.ID]
		if updated.Role != step.wantRole || stored.Role != step.wantRole || stored.Status != step.wantStatus {
			t.Fatalf("%s: role=%s status=%s", step.action, stored.Role, stored.Status)
		}
	}

	_, err := svc.ApplyUserAction(ctx, actor, UserActionInput{UserID: admin.ID, Action: UserActionBan})
	wantStatus(t, err, http.StatusBadRequest)
	_, err = svc.ApplyUserAction(ctx, actor, UserActionInput{UserID: admin.ID, Action: UserActionDemote})
	wantStatus(t, err, http.StatusBadRequest)
	if _, err := svc.ApplyUserAction(ctx, actor, UserActionInput{UserID: admin.ID, Action: UserActionPromote}); err != nil {
		t.Fatalf("self promote: %v", err)
	}

	_, err = svc.ApplyUserAction(ctx, actor, UserActionInput{UserID: target.ID, Action: UserActionPromote, NewRole: "root"})
	wantStatus(t, err, http.StatusBadRequest)
	_, err = svc.ApplyUserAction(ctx, actor, UserActionInput{UserID: target.ID, Action: "delete"})
	wantStatus(t, err, http.StatusBadRequest)
	_, err = svc.ApplyUserAction(ctx, actor, UserActionInput{UserID: "missing", Action: UserActionBan})
	wantStatus(t, err, http.StatusNotFound)
}
