package domain

import "time"

// PaymentStatus enumerates payment states.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// PaymentMethod enumerates accepted payment instruments.
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
)

// Payment settles a booking.
type Payment struct {
	ID            string
	Amount        float64
	Currency      string
	Method        PaymentMethod
	TransactionID string
	Status        PaymentStatus
	PaidAt        *time.Time
	UserID        string
	ProjectID     string
	BookingID     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
