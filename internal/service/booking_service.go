package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/domain"
	"github.com/trusttrip/booking-service/internal/events"
	"github.com/trusttrip/booking-service/internal/repository"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

const defaultCancellationReason = "Booking cancelled by customer"

// BookingService manages seat reservations.
type BookingService struct {
	store         repository.Store
	events        publisher
	logger        *zap.Logger
	now           func() time.Time
	processingFee float64
}

// NewBookingService builds the service.
func NewBookingService(deps Dependencies) *BookingService {
	deps = deps.withDefaults()
	return &BookingService{
		store:         deps.Store,
		events:        newPublisher(deps),
		logger:        deps.Logger,
		now:           deps.Now,
		processingFee: deps.ProcessingFee,
	}
}

// BookingInput describes a new booking.
type BookingInput struct {
	Quantity   int
	TotalPrice float64
	UserID     string
	ProjectID  string
}

// CancelResult is a cancelled booking and the refund it opened, if any.
type CancelResult struct {
	Booking *domain.Booking
	Refund  *domain.Refund
}

// List returns a page of bookings.
func (s *BookingService) List(ctx context.Context, filter repository.BookingFilter, params repository.ListParams) (Page[domain.Booking], error) {
	bookings := s.store.Repos().Bookings
	items, err := bookings.List(ctx, filter, params)
	if err != nil {
		return Page[domain.Booking]{}, err
	}
	total, err := bookings.Count(ctx, filter)
	if err != nil {
		return Page[domain.Booking]{}, err
	}
	return newPage(items, total, params), nil
}

// Get loads a single booking.
func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.store.Repos().Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Booking")
	}
	return booking, nil
}

// Create reserves seats on a project. New bookings wait for payment.
func (s *BookingService) Create(ctx context.Context, identity auth.Identity, input BookingInput) (*domain.Booking, error) {
	ownerID, err := resolveOwner(identity, input.UserID)
	if err != nil {
		return nil, err
	}

	repos := s.store.Repos()
	if _, err := repos.Users.GetByID(ctx, ownerID); err != nil {
		return nil, notFoundAs(err, "User")
	}
	project, err := repos.Projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, notFoundAs(err, "Project")
	}
	if project.Status == domain.ProjectStatusCancelled || project.Status == domain.ProjectStatusCompleted {
		return nil, apperrors.NewConflict("Project is no longer open for booking")
	}

	booking := &domain.Booking{
		Quantity:   input.Quantity,
		TotalPrice: input.TotalPrice,
		Status:     domain.BookingStatusPending,
		UserID:     ownerID,
		ProjectID:  project.ID,
	}
	if err := repos.Bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.events.publish(ctx, events.Event{
		Type:        events.EventBookingCreated,
		AggregateID: booking.ID,
		ActorID:     identity.SubjectID,
		Payload: events.BookingCreatedPayload{
			UserID:     booking.UserID,
			ProjectID:  booking.ProjectID,
			Quantity:   booking.Quantity,
			TotalPrice: booking.TotalPrice,
		},
	})
	return booking, nil
}

// Cancel cancels a booking. When the booking was paid, a refund priced by the
// cancellation schedule is filed in the same transaction.
func (s *BookingService) Cancel(ctx context.Context, identity auth.Identity, bookingID, reason string) (*CancelResult, error) {
	if reason == "" {
		reason = defaultCancellationReason
	}

	result := &CancelResult{}
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		booking, err := repos.Bookings.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return notFoundAs(err, "Booking")
		}
		if err := requireAccess(identity, booking.UserID); err != nil {
			return err
		}
		if booking.Status == domain.BookingStatusCancelled {
			return apperrors.NewConflict("Booking is already cancelled")
		}
		if err := repos.Bookings.UpdateStatus(ctx, booking.ID, domain.BookingStatusCancelled); err != nil {
			return err
		}
		booking.Status = domain.BookingStatusCancelled
		result.Booking = booking

		payment, err := completedPayment(ctx, repos, booking.ID)
		if err != nil || payment == nil {
			return err
		}
		// Serializes with a refund request filed directly against the same payment.
		if payment, err = repos.Payments.GetByIDForUpdate(ctx, payment.ID); err != nil {
			return err
		}
		if _, err := repos.Refunds.GetByPaymentID(ctx, payment.ID); err == nil {
			return nil
		} else if !apperrors.IsNotFound(err) {
			return err
		}
		result.Refund, err = fileRefund(ctx, repos, payment, booking.UserID, reason, s.processingFee, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	payload := events.BookingCancelledPayload{UserID: result.Booking.UserID}
	if result.Refund != nil {
		payload.RefundID = &result.Refund.ID
	}
	s.logger.Info("booking cancelled",
		zap.String("booking_id", result.Booking.ID),
		zap.Bool("refund_filed", result.Refund != nil))
	s.events.publish(ctx, events.Event{
		Type:        events.EventBookingCancelled,
		AggregateID: result.Booking.ID,
		ActorID:     identity.SubjectID,
		Payload:     payload,
	})
	if result.Refund != nil {
		s.events.publish(ctx, events.Event{
			Type:        events.EventRefundRequested,
			AggregateID: result.Refund.ID,
			ActorID:     identity.SubjectID,
			Payload: events.RefundRequestedPayload{
				PaymentID:    result.Refund.PaymentID,
				RefundAmount: result.Refund.RefundAmount,
				RuleLabel:    result.Refund.RuleLabel,
			},
		})
	}
	return result, nil
}

func completedPayment(ctx context.Context, repos repository.Repositories, bookingID string) (*domain.Payment, error) {
	status := domain.PaymentStatusCompleted
	payments, err := repos.Payments.List(ctx,
		repository.PaymentFilter{BookingID: &bookingID, Status: &status},
		repository.ListParams{Page: 1, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, nil
	}
	return &payments[0], nil
}
