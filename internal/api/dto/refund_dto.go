package dto

import (
	"time"

	"github.com/trusttrip/booking-service/internal/domain"
	"github.com/trusttrip/booking-service/internal/service"
)

// CreateRefundRequest payload.
type CreateRefundRequest struct {
	Reason    string `json:"reason" validate:"required,min=10,max=500"`
	PaymentID string `json:"paymentId" validate:"required,uuid"`
	UserID    string `json:"userId" validate:"omitempty,uuid"`
}

// DecideRefundRequest is an administrator's verdict on a refund.
type DecideRefundRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

// Approve reports whether the verdict approves the refund.
func (r DecideRefundRequest) Approve() bool {
	return r.Status == string(domain.RefundStatusApproved)
}

// RefundResponse describes a refund.
type RefundResponse struct {
	ID                  string     `json:"id"`
	Reason              string     `json:"reason"`
	RefundAmount        float64    `json:"refundAmount"`
	DeductionPercentage float64    `json:"deductionPercentage"`
	CancellationFee     float64    `json:"cancellationFee"`
	ProcessingFee       float64    `json:"processingFee"`
	RuleLabel           string     `json:"ruleLabel"`
	Status              string     `json:"status"`
	ApprovedAt          *time.Time `json:"approvedAt"`
	PaymentID           string     `json:"paymentId"`
	UserID              string     `json:"userId"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// NewRefundResponse maps a refund.
func NewRefundResponse(r *domain.Refund) RefundResponse {
	return RefundResponse{
		ID:                  r.ID,
		Reason:              r.Reason,
		RefundAmount:        r.RefundAmount,
		DeductionPercentage: r.DeductionPercentage,
		CancellationFee:     r.CancellationFee,
		ProcessingFee:       r.ProcessingFee,
		RuleLabel:           r.RuleLabel,
		Status:              string(r.Status),
		ApprovedAt:          r.ApprovedAt,
		PaymentID:           r.PaymentID,
		UserID:              r.UserID,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// NewRefundResponses maps a page of refunds.
func NewRefundResponses(refunds []domain.Refund) []RefundResponse {
	out := make([]RefundResponse, 0, len(refunds))
	for i := range refunds {
		out = append(out, NewRefundResponse(&refunds[i]))
	}
	return out
}

// RefundQuoteResponse previews a refund.
type RefundQuoteResponse struct {
	PaymentID           string  `json:"paymentId"`
	Amount              float64 `json:"amount"`
	Currency            string  `json:"currency"`
	HoursUntilDeparture float64 `json:"hoursUntilDeparture"`
	DeductionPercentage float64 `json:"deductionPercentage"`
	CancellationFee     float64 `json:"cancellationFee"`
	ProcessingFee       float64 `json:"processingFee"`
	RefundAmount        float64 `json:"refundAmount"`
	RuleLabel           string  `json:"ruleLabel"`
}

// NewRefundQuoteResponse maps a quote.
func NewRefundQuoteResponse(q *service.RefundQuote) RefundQuoteResponse {
	return RefundQuoteResponse{
		PaymentID:           q.PaymentID,
		Amount:              q.Amount,
		Currency:            q.Currency,
		HoursUntilDeparture: q.HoursUntilDeparture,
		DeductionPercentage: q.DeductionPercentage,
		CancellationFee:     q.CancellationFee,
		ProcessingFee:       q.ProcessingFee,
		RefundAmount:        q.RefundAmount,
		RuleLabel:           q.RuleLabel,
	}
}
