package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/events"
	"github.com/trusttrip/booking-service/internal/repository"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

// DetailOwnership is placed in error.details when a caller acts on another user's resource.
const DetailOwnership = "OWNERSHIP_REQUIRED"

// Dependencies bundles the collaborators shared by the domain services.
type Dependencies struct {
	Store      repository.Store
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// ProcessingFee is the flat fee withheld from every refund.
	ProcessingFee float64
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Page is one window of a listing and the total number of matching rows.
type Page[T any] struct {
	Items  []T
	Total  int
	Params repository.ListParams
}

func newPage[T any](items []T, total int, params repository.ListParams) Page[T] {
	return Page[T]{Items: items, Total: total, Params: params.Normalize()}
}

// resolveOwner returns the user a write acts for. An omitted userId means the caller;
// only administrators may name somebody else.
func resolveOwner(identity auth.Identity, requested string) (string, error) {
	if requested == "" {
		return identity.SubjectID, nil
	}
	if !identity.CanActFor(requested) {
		return "", apperrors.NewForbidden("You can only act on your own resources", DetailOwnership)
	}
	return requested, nil
}

// requireAccess rejects callers that neither own the resource nor hold the admin role.
func requireAccess(identity auth.Identity, ownerID string) error {
	if identity.CanActFor(ownerID) {
		return nil
	}
	return apperrors.NewForbidden("You can only act on your own resources", DetailOwnership)
}

// notFoundAs relabels a missing-row error with the resource name. Other errors pass through.
func notFoundAs(err error, resource string) error {
	if apperrors.IsNotFound(err) {
		return apperrors.NewNotFound(resource)
	}
	return err
}

// publisher emits domain events after the state change they describe is committed.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func newPublisher(deps Dependencies) publisher {
	return publisher{dispatcher: deps.Dispatcher, logger: deps.Logger, now: deps.Now}
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
