package service

import (
	"context"
	"testing"
	"time"

	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/domain"
	"github.com/trusttrip/booking-service/internal/events"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

const testProcessingFee = 50

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}

func newTestDeps(store *memStore) (Dependencies, *recordingDispatcher) {
	dispatcher := &recordingDispatcher{}
	return Dependencies{
		Store:         store,
		Dispatcher:    dispatcher,
		Now:           func() time.Time { return testNow },
		ProcessingFee: testProcessingFee,
	}, dispatcher
}

func identityOf(u *domain.User) auth.Identity {
	return auth.Identity{SubjectID: u.ID, Email: u.Email, Role: auth.Role(u.Role)}
}

func seedUser(t *testing.T, store *memStore, email string, role auth.Role) *domain.User {
	t.Helper()
	u := &domain.User{Name: "Test User", Email: email, Role: string(role), Status: domain.UserStatusActive}
	if err := store.Repos().Users.Create(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	return u
}

func seedProject(t *testing.T, store *memStore, ownerID string, start time.Time) *domain.Project {
	t.Helper()
	p := &domain.Project{
		Title:       "Alps trek",
		Destination: "Chamonix",
		StartDate:   start,
		EndDate:     start.Add(72 * time.Hour),
		Currency:    "USD",
		Status:      domain.ProjectStatusPlanning,
		UserID:      ownerID,
	}
	if err := store.Repos().Projects.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	return p
}

func seedBooking(t *testing.T, store *memStore, userID, projectID string, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b := &domain.Booking{Quantity: 2, TotalPrice: 1200, Status: status, UserID: userID, ProjectID: projectID}
	if err := store.Repos().Bookings.Create(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	return b
}

func seedPayment(t *testing.T, store *memStore, b *domain.Booking, amount float64, status domain.PaymentStatus) *domain.Payment {
	t.Helper()
	paidAt := testNow
	p := &domain.Payment{
		Amount:        amount,
		Currency:      "USD",
		Method:        domain.PaymentMethodCreditCard,
		TransactionID: "txn-" + b.ID,
		Status:        status,
		PaidAt:        &paidAt,
		UserID:        b.UserID,
		ProjectID:     b.ProjectID,
		BookingID:     b.ID,
	}
	if err := store.Repos().Payments.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	return p
}

func wantStatus(t *testing.T, err error, status int) *apperrors.DomainError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %d error, got nil", status)
	}
	domainErr := apperrors.ToDomainError(err)
	if domainErr.HTTPStatus != status {
		t.Fatalf("status = %d (%s), want %d", domainErr.HTTPStatus, domainErr.Message, status)
	}
	return domainErr
}
