package dto

import (
	"time"

	"github.com/trusttrip/booking-service/internal/domain"
)

// CreatePaymentRequest payload.
type CreatePaymentRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0,lte=100000"`
	Currency      string  `json:"currency" validate:"omitempty,len=3,uppercase,alpha"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=credit_card debit_card paypal bank_transfer cash"`
	TransactionID string  `json:"transactionId" validate:"required,min=10,max=100"`
	UserID        string  `json:"userId" validate:"omitempty,uuid"`
	ProjectID     string  `json:"projectId" validate:"omitempty,uuid"`
	BookingID     string  `json:"bookingId" validate:"required,uuid"`
}

// PaymentResponse describes a payment.
type PaymentResponse struct {
	ID            string     `json:"id"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	PaymentMethod string     `json:"paymentMethod"`
	TransactionID string     `json:"transactionId"`
	Status        string     `json:"status"`
	PaidAt        *time.Time `json:"paidAt"`
	UserID        string     `json:"userId"`
	ProjectID     string     `json:"projectId"`
	BookingID     string     `json:"bookingId"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// NewPaymentResponse maps a payment.
func NewPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		PaymentMethod: string(p.Method),
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		PaidAt:        p.PaidAt,
		UserID:        p.UserID,
		ProjectID:     p.ProjectID,
		BookingID:     p.BookingID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// NewPaymentResponses maps a page of payments.
func NewPaymentResponses(payments []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, NewPaymentResponse(&payments[i]))
	}
	return out
}
