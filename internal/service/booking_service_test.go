package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/domain"
	"github.com/trusttrip/booking-service/internal/events"
	"github.com/trusttrip/booking-service/internal/refund"
)

func TestBookingCancelFilesRefund(t *testing.T) {
	store := newMemStore()
	deps, dispatcher := newTestDeps(store)
	svc := NewBookingService(deps)

	owner := seedUser(t, store, "owner@trusttrip.com", auth.RoleUser)
	project := seedProject(t, store, owner.ID, testNow.Add(48*time.Hour))
	booking := seedBooking(t, store, owner.ID, project.ID, domain.BookingStatusConfirmed)
	payment := seedPayment(t, store, booking, 1200, domain.PaymentStatusCompleted)

	result, err := svc.Cancel(context.Background(), identityOf(owner), booking.ID, "")
	if err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}
	if result.Booking.Status != domain.BookingStatusCancelled {
		t.Fatalf("booking status = %s", result.Booking.Status)
	}
	if store.bookings[booking.ID].Status != domain.BookingStatusCancelled {
		t.Fatal("cancellation not persisted")
	}

	rf := result.Refund
	if rf == nil {
		t.Fatal("expected a refund for a paid booking")
	}
	if rf.RefundAmount != 1090 || rf.CancellationFee != 60 || rf.ProcessingFee != testProcessingFee {
		t.Fatalf("refund = %+v", rf)
	}
	if rf.RuleLabel != refund.RuleStandard24HPlus || rf.Status != domain.RefundStatusRequested {
		t.Fatalf("refund label/status = %s/%s", rf.RuleLabel, rf.Status)
	}
	if rf.PaymentID != payment.ID || rf.Reason != defaultCancellationReason {
		t.Fatalf("refund linkage = %+v", rf)
	}
	if store.txCount != 1 {
		t.Fatalf("transactions = %d, want 1", store.txCount)
	}
	if !store.wasLocked("bookings", booking.ID) || !store.wasLocked("payments", payment.ID) {
		t.Fatalf("cancel must lock the booking and payment rows, locked = %v", store.locked)
	}

	got := dispatcher.types()
	if len(got) != 2 || got[0] != events.EventBookingCancelled || got[1] != events.EventRefundRequested {
		t.Fatalf("events = %v", got)
	}
	payload := dispatcher.published[0].Payload.(events.BookingCancelledPayload)
	if payload.RefundID == nil || *payload.RefundID != rf.ID {
		t.Fatalf("cancel payload = %+v", payload)
	}
}

func TestBookingCancelWithoutPayment(t *testing.T) {
	store := newMemStore()
	deps, dispatcher := newTestDeps(store)
	svc := NewBookingService(deps)

	owner := seedUser(t, store, "owner@trusttrip.com", auth.RoleUser)
	project := seedProject(t, store, owner.ID, testNow.Add(5*time.Hour))
	booking := seedBooking(t, store, owner.ID, project.ID, domain.BookingStatusPending)

	result, err := svc.Cancel(context.Background(), identityOf(owner), booking.ID, "Change of plans")
	if err != nil {
		t.Fatal(err)
	}
	if result.Refund != nil {
		t.Fatalf("unexpected refund %+v", result.Refund)
	}
	if len(store.refunds) != 0 {
		t.Fatal("refund stored for unpaid booking")
	}
	if got := dispatcher.types(); len(got) != 1 || got[0] != events.EventBookingCancelled {
		t.Fatalf("events = %v", got)
	}
}

func TestBookingCancelRules(t *testing.T) {
	store := newMemStore()
	deps, _ := newTestDeps(store)
	svc := NewBookingService(deps)

	owner := seedUser(t, store, "owner@trusttrip.com", auth.RoleUser)
	stranger := seedUser(t, store, "stranger@trusttrip.com", auth.RoleUser)
	admin := seedUser(t, store, "admin@trusttrip.com", auth.RoleAdmin)
	project := seedProject(t, store, owner.ID, testNow.Add(48*time.Hour))
	booking := seedBooking(t, store, owner.ID, project.ID, domain.BookingStatusPending)

	_, err := svc.Cancel(context.Background(), identityOf(stranger), booking.ID, "")
	if d := wantStatus(t, err, http.StatusForbidden); d.Details != DetailOwnership {
		t.Fatalf("details = %v", d.Details)
	}
	if store.bookings[booking.ID].Status != domain.BookingStatusPending {
		t.Fatal("forbidden cancel changed the booking")
	}

	if _, err := svc.Cancel(context.Background(), identityOf(admin), booking.ID, ""); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}
	_, err = svc.Cancel(context.Background(), identityOf(owner), booking.ID, "")
	wantStatus(t, err, http.StatusConflict)

	_, err = svc.Cancel(context.Background(), identityOf(owner), "missing", "")
	if d := wantStatus(t, err, http.StatusNotFound); d.Message != "Booking not found" {
		t.Fatalf("message = %q", d.Message)
	}
}

func TestBookingCreate(t *testing.T) {
	store := newMemStore()
	deps, dispatcher := newTestDeps(store)
	svc := NewBookingService(deps)

	owner := seedUser(t, store, "owner@trusttrip.com", auth.RoleUser)
	other := seedUser(t, store, "other@trusttrip.com", auth.RoleUser)
	project := seedProject(t, store, owner.ID, testNow.Add(48*time.Hour))

	booking, err := svc.Create(context.Background(), identityOf(owner), BookingInput{Quantity: 2, TotalPrice: 800, ProjectID: project.ID})
	if err != nil {
		t.Fatal(err)
	}
	if booking.UserID != owner.ID || booking.Status != domain.BookingStatusPending {
		t.Fatalf("booking = %+v", booking)
	}
	if got := dispatcher.types(); len(got) != 1 || got[0] != events.EventBookingCreated {
		t.Fatalf("events = %v", got)
	}

	_, err = svc.Create(context.Background(), identityOf(owner), BookingInput{Quantity: 1, TotalPrice: 10, ProjectID: project.ID, UserID: other.ID})
	wantStatus(t, err, http.StatusForbidden)

	store.projects[project.ID].Status = domain.ProjectStatusCancelled
	_, err = svc.Create(context.Background(), identityOf(owner), BookingInput{Quantity: 1, TotalPrice: 10, ProjectID: project.ID})
	wantStatus(t, err, http.StatusConflict)

	_, err = svc.Create(context.Background(), identityOf(owner), BookingInput{Quantity: 1, TotalPrice: 10, ProjectID: "nope"})
	wantStatus(t, err, http.StatusNotFound)
}
