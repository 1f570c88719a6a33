package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/domain"
	"github.com/trusttrip/booking-service/internal/events"
	"github.com/trusttrip/booking-service/internal/refund"
	"github.com/trusttrip/booking-service/internal/repository"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

// RefundService prices, files and settles refund requests.
type RefundService struct {
	store         repository.Store
	events        publisher
	logger        *zap.Logger
	now           func() time.Time
	processingFee float64
}

// NewRefundService builds the service.
func NewRefundService(deps Dependencies) *RefundService {
	deps = deps.withDefaults()
	return &RefundService{
		store:         deps.Store,
		events:        newPublisher(deps),
		logger:        deps.Logger,
		now:           deps.Now,
		processingFee: deps.ProcessingFee,
	}
}

// RefundInput describes a refund request.
type RefundInput struct {
	Reason    string
	PaymentID string
	UserID    string
}

// RefundQuote previews what a refund of a payment would return right now.
type RefundQuote struct {
	PaymentID           string
	Amount              float64
	Currency            string
	HoursUntilDeparture float64
	refund.Quote
}

// List returns a page of refunds.
func (s *RefundService) List(ctx context.Context, filter repository.RefundFilter, params repository.ListParams) (Page[domain.Refund], error) {
	refunds := s.store.Repos().Refunds
	items, err := refunds.List(ctx, filter, params)
	if err != nil {
		return Page[domain.Refund]{}, err
	}
	total, err := refunds.Count(ctx, filter)
	if err != nil {
		return Page[domain.Refund]{}, err
	}
	return newPage(items, total, params), nil
}

// Quote prices a refund of paymentID without filing it.
func (s *RefundService) Quote(ctx context.Context, identity auth.Identity, paymentID string) (*RefundQuote, error) {
	repos := s.store.Repos()
	payment, err := repos.Payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, notFoundAs(err, "Payment")
	}
	if err := requireAccess(identity, payment.UserID); err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentStatusCompleted {
		return nil, apperrors.NewValidationError("Only completed payments can be refunded", nil)
	}
	project, err := repos.Projects.GetByID(ctx, payment.ProjectID)
	if err != nil {
		return nil, notFoundAs(err, "Project")
	}

	hours := project.HoursUntilDeparture(s.now())
	return &RefundQuote{
		PaymentID:           payment.ID,
		Amount:              payment.Amount,
		Currency:            payment.Currency,
		HoursUntilDeparture: hours,
		Quote:               refund.Compute(payment.Amount, hours, s.processingFee),
	}, nil
}

// Request files a refund for a completed payment, priced by the cancellation schedule.
func (s *RefundService) Request(ctx context.Context, identity auth.Identity, input RefundInput) (*domain.Refund, error) {
	ownerID, err := resolveOwner(identity, input.UserID)
	if err != nil {
		return nil, err
	}

	var created *domain.Refund
	err = s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Users.GetByID(ctx, ownerID); err != nil {
			return notFoundAs(err, "User")
		}
		payment, err := repos.Payments.GetByIDForUpdate(ctx, input.PaymentID)
		if err != nil {
			return notFoundAs(err, "Payment")
		}
		if payment.UserID != ownerID {
			return apperrors.NewForbidden("You can only refund your own payments", DetailOwnership)
		}
		created, err = fileRefund(ctx, repos, payment, ownerID, input.Reason, s.processingFee, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishRequested(ctx, identity, created)
	return created, nil
}

// Decide approves or rejects a pending refund. Approval marks the payment refunded.
func (s *RefundService) Decide(ctx context.Context, identity auth.Identity, refundID string, approve bool) (*domain.Refund, error) {
	var decided *domain.Refund
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		record, err := repos.Refunds.GetByIDForUpdate(ctx, refundID)
		if err != nil {
			return notFoundAs(err, "Refund")
		}
		if record.Decided() {
			return apperrors.NewConflict("Refund has already been decided")
		}

		status := domain.RefundStatusRejected
		var approvedAt *time.Time
		if approve {
			now := s.now()
			status = domain.RefundStatusApproved
			approvedAt = &now
			if err := repos.Payments.UpdateStatus(ctx, record.PaymentID, domain.PaymentStatusRefunded); err != nil {
				return notFoundAs(err, "Payment")
			}
		}
		if err := repos.Refunds.UpdateStatus(ctx, record.ID, status, approvedAt); err != nil {
			return err
		}
		record.Status = status
		record.ApprovedAt = approvedAt
		decided = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("refund decided",
		zap.String("refund_id", decided.ID),
		zap.String("status", string(decided.Status)),
		zap.String("admin_id", identity.SubjectID))
	s.events.publish(ctx, events.Event{
		Type:        events.EventRefundDecided,
		AggregateID: decided.ID,
		ActorID:     identity.SubjectID,
		Payload: events.RefundDecidedPayload{
			PaymentID: decided.PaymentID,
			Status:    string(decided.Status),
		},
	})
	return decided, nil
}

func (s *RefundService) publishRequested(ctx context.Context, identity auth.Identity, created *domain.Refund) {
	s.events.publish(ctx, events.Event{
		Type:        events.EventRefundRequested,
		AggregateID: created.ID,
		ActorID:     identity.SubjectID,
		Payload: events.RefundRequestedPayload{
			PaymentID:    created.PaymentID,
			RefundAmount: created.RefundAmount,
			RuleLabel:    created.RuleLabel,
		},
	})
}

// fileRefund prices and stores a refund for payment. The payment must be completed
// and may carry at most one refund.
func fileRefund(ctx context.Context, repos repository.Repositories, payment *domain.Payment, userID, reason string, processingFee float64, now time.Time) (*domain.Refund, error) {
	if _, err := repos.Refunds.GetByPaymentID(ctx, payment.ID); err == nil {
		return nil, apperrors.NewConflict("This payment already has a refund request")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}
	if payment.Status != domain.PaymentStatusCompleted {
		return nil, apperrors.NewValidationError("Only completed payments can be refunded", nil)
	}

	project, err := repos.Projects.GetByID(ctx, payment.ProjectID)
	if err != nil {
		return nil, notFoundAs(err, "Project")
	}
	quote := refund.Compute(payment.Amount, project.HoursUntilDeparture(now), processingFee)

	record := &domain.Refund{
		Reason:              strings.TrimSpace(reason),
		RefundAmount:        quote.RefundAmount,
		DeductionPercentage: quote.DeductionPercentage,
		CancellationFee:     quote.CancellationFee,
		ProcessingFee:       quote.ProcessingFee,
		RuleLabel:           quote.RuleLabel,
		Status:              domain.RefundStatusRequested,
		PaymentID:           payment.ID,
		UserID:              userID,
	}
	if err := repos.Refunds.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
