package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/trusttrip/booking-service/internal/config"
	"github.com/trusttrip/booking-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventBookingCreated, n.notifyCustomer)
	n.dispatcher.Subscribe(events.EventBookingCancelled, n.notifyCustomer)
	n.dispatcher.Subscribe(events.EventPaymentCompleted, n.notifyCustomer)
	n.dispatcher.Subscribe(events.EventRefundRequested, n.notifyOperations)
	n.dispatcher.Subscribe(events.EventRefundDecided, n.notifyCustomer)
}

// notifyCustomer logs the event and sends the customer-facing email and webhook stubs.
func (n *NotificationService) notifyCustomer(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), zap.String("aggregate_id", event.AggregateID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

// notifyOperations only hits the operator webhook.
func (n *NotificationService) notifyOperations(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), zap.String("aggregate_id", event.AggregateID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("aggregate_id", event.AggregateID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("aggregate_id", event.AggregateID),
		zap.String("event_type", string(event.Type)))
}
