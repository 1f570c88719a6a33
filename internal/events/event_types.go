package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventBookingCancelled EventType = "booking_cancelled"
	EventPaymentCompleted EventType = "payment_completed"
	EventRefundRequested  EventType = "refund_requested"
	EventRefundDecided    EventType = "refund_decided"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	AggregateID string      `json:"aggregate_id"`
	ActorID     string      `json:"actor_id"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	UserID     string  `json:"user_id"`
	ProjectID  string  `json:"project_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

// BookingCancelledPayload payload. RefundID is set when the cancellation opened a refund.
type BookingCancelledPayload struct {
	UserID   string  `json:"user_id"`
	RefundID *string `json:"refund_id,omitempty"`
}

// PaymentCompletedPayload payload.
type PaymentCompletedPayload struct {
	BookingID     string  `json:"booking_id"`
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

// RefundRequestedPayload payload.
type RefundRequestedPayload struct {
	PaymentID    string  `json:"payment_id"`
	RefundAmount float64 `json:"refund_amount"`
	RuleLabel    string  `json:"rule_label"`
}

// RefundDecidedPayload payload.
type RefundDecidedPayload struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}
