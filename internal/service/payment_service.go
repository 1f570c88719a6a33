package service

import (
	"context"
	"strings"
	"time"

	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/domain"
	"github.com/trusttrip/booking-service/internal/events"
	"github.com/trusttrip/booking-service/internal/repository"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

// PaymentService records settlements of bookings.
type PaymentService struct {
	store  repository.Store
	events publisher
	now    func() time.Time
}

// NewPaymentService builds the service.
func NewPaymentService(deps Dependencies) *PaymentService {
	deps = deps.withDefaults()
	return &PaymentService{store: deps.Store, events: newPublisher(deps), now: deps.Now}
}

// PaymentInput describes a settlement.
type PaymentInput struct {
	Amount        float64
	Currency      string
	Method        domain.PaymentMethod
	TransactionID string
	UserID        string
	ProjectID     string
	BookingID     string
}

// List returns a page of payments.
func (s *PaymentService) List(ctx context.Context, filter repository.PaymentFilter, params repository.ListParams) (Page[domain.Payment], error) {
	payments := s.store.Repos().Payments
	items, err := payments.List(ctx, filter, params)
	if err != nil {
		return Page[domain.Payment]{}, err
	}
	total, err := payments.Count(ctx, filter)
	if err != nil {
		return Page[domain.Payment]{}, err
	}
	return newPage(items, total, params), nil
}

// Get loads a single payment.
func (s *PaymentService) Get(ctx context.Context, id string) (*domain.Payment, error) {
	payment, err := s.store.Repos().Payments.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Payment")
	}
	return payment, nil
}

// Create records a completed payment and confirms its booking atomically.
func (s *PaymentService) Create(ctx context.Context, identity auth.Identity, input PaymentInput) (*domain.Payment, error) {
	ownerID, err := resolveOwner(identity, input.UserID)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	var payment *domain.Payment
	err = s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Users.GetByID(ctx, ownerID); err != nil {
			return notFoundAs(err, "User")
		}
		booking, err := repos.Bookings.GetByIDForUpdate(ctx, input.BookingID)
		if err != nil {
			return notFoundAs(err, "Booking")
		}
		if booking.UserID != ownerID {
			return apperrors.NewForbidden("You can only pay for your own bookings", DetailOwnership)
		}
		if input.ProjectID != "" && booking.ProjectID != input.ProjectID {
			return apperrors.NewFieldError("projectId", "Booking does not belong to this project")
		}
		if booking.Status != domain.BookingStatusPending {
			return apperrors.NewConflict("Booking is not awaiting payment")
		}
		if _, err := repos.Payments.GetByTransactionID(ctx, input.TransactionID); err == nil {
			return apperrors.NewConflict("A payment with this transaction ID already exists")
		} else if !apperrors.IsNotFound(err) {
			return err
		}

		paidAt := s.now()
		payment = &domain.Payment{
			Amount:        input.Amount,
			Currency:      currency,
			Method:        input.Method,
			TransactionID: input.TransactionID,
			Status:        domain.PaymentStatusCompleted,
			PaidAt:        &paidAt,
			UserID:        ownerID,
			ProjectID:     booking.ProjectID,
			BookingID:     booking.ID,
		}
		if err := repos.Payments.Create(ctx, payment); err != nil {
			return err
		}
		return repos.Bookings.UpdateStatus(ctx, booking.ID, domain.BookingStatusConfirmed)
	})
	if err != nil {
		return nil, err
	}

	s.events.publish(ctx, events.Event{
		Type:        events.EventPaymentCompleted,
		AggregateID: payment.ID,
		ActorID:     identity.SubjectID,
		Payload: events.PaymentCompletedPayload{
			BookingID:     payment.BookingID,
			TransactionID: payment.TransactionID,
			Amount:        payment.Amount,
			Currency:      payment.Currency,
		},
	})
	return payment, nil
}
