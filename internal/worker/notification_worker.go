package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/trusttrip/booking-service/internal/events"
	"github.com/trusttrip/booking-service/internal/service"
)

var (
	// ErrQueueFull is returned by Publish when the delivery buffer is exhausted.
	ErrQueueFull = errors.New("notification queue full")
	// ErrStopped is returned by Publish after Stop.
	ErrStopped = errors.New("notification worker stopped")
)

// NotificationWorker is an events.Dispatcher that hands events to a pool of goroutines,
// which deliver them to the handlers subscribed on the wrapped dispatcher.
type NotificationWorker struct {
	inner  events.Dispatcher
	queue  chan queued
	done   chan struct{}
	logger *zap.Logger

	// mu orders Publish against Stop: once done is closed nothing else is enqueued.
	mu        sync.RWMutex
	startOnce sync.Once
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

type queued struct {
	ctx   context.Context
	event events.Event
}

// NewNotificationWorker wraps inner with a queue of the given size.
func NewNotificationWorker(inner events.Dispatcher, buffer int, logger *zap.Logger) *NotificationWorker {
	if buffer <= 0 {
		buffer = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		inner:  inner,
		queue:  make(chan queued, buffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Publish enqueues the event without waiting for handlers.
func (w *NotificationWorker) Publish(ctx context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	select {
	case <-w.done:
		return ErrStopped
	default:
	}
	// Delivery must not be cancelled with the request.
	item := queued{ctx: context.WithoutCancel(ctx), event: event}
	select {
	case w.queue <- item:
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe registers handler on the wrapped dispatcher.
func (w *NotificationWorker) Subscribe(eventType events.EventType, handler events.EventHandler) {
	w.inner.Subscribe(eventType, handler)
}

// Start launches the given number of delivery goroutines. Later calls have no effect.
func (w *NotificationWorker) Start(workers int) {
	w.startOnce.Do(func() {
		if workers <= 0 {
			workers = 1
		}
		for i := 0; i < workers; i++ {
			w.wg.Add(1)
			go w.run()
		}
	})
}

// Stop rejects new events, delivers what is already queued and waits for the workers.
func (w *NotificationWorker) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		close(w.done)
		w.mu.Unlock()
	})
	w.wg.Wait()
}

func (w *NotificationWorker) run() {
	defer w.wg.Done()
	for {
		select {
		case item := <-w.queue:
			w.deliver(item)
		case <-w.done:
			for {
				select {
				case item := <-w.queue:
					w.deliver(item)
				default:
					return
				}
			}
		}
	}
}

func (w *NotificationWorker) deliver(item queued) {
	if err := w.inner.Publish(item.ctx, item.event); err != nil {
		w.logger.Warn("notification delivery failed",
			zap.String("event_type", string(item.event.Type)),
			zap.String("aggregate_id", item.event.AggregateID),
			zap.Error(err))
	}
}

// StartNotificationWorker subscribes the notification handlers and starts delivery.
func StartNotificationWorker(w *NotificationWorker, notificationService *service.NotificationService, workers int) {
	if w == nil || notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	w.Start(workers)
}
