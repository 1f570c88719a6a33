package dto

import (
	"time"

	"github.com/trusttrip/booking-service/internal/domain"
)

// CreateBookingRequest payload. An omitted userId books for the caller.
type CreateBookingRequest struct {
	Quantity   int     `json:"quantity" validate:"required,min=1,max=50"`
	TotalPrice float64 `json:"totalPrice" validate:"required,gt=0,lte=100000"`
	UserID     string  `json:"userId" validate:"omitempty,uuid"`
	ProjectID  string  `json:"projectId" validate:"required,uuid"`
}

// CancelBookingRequest payload. The body may be empty.
type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// BookingResponse describes a booking.
type BookingResponse struct {
	ID         string    `json:"id"`
	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"`
	UserID     string    `json:"userId"`
	ProjectID  string    `json:"projectId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CancelBookingResponse is the cancelled booking and the refund it opened.
type CancelBookingResponse struct {
	Booking BookingResponse `json:"booking"`
	Refund  *RefundResponse `json:"refund"`
}

// NewBookingResponse maps a booking.
func NewBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		Quantity:   b.Quantity,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		UserID:     b.UserID,
		ProjectID:  b.ProjectID,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// NewBookingResponses maps a page of bookings.
func NewBookingResponses(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, NewBookingResponse(&bookings[i]))
	}
	return out
}

// NewCancelBookingResponse maps a cancellation.
func NewCancelBookingResponse(booking *domain.Booking, refund *domain.Refund) CancelBookingResponse {
	resp := CancelBookingResponse{Booking: NewBookingResponse(booking)}
	if refund != nil {
		r := NewRefundResponse(refund)
		resp.Refund = &r
	}
	return resp
}
