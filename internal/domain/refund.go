package domain

import "time"

// RefundStatus enumerates refund review states.
type RefundStatus string

const (
	RefundStatusRequested RefundStatus = "REQUESTED"
	RefundStatusApproved  RefundStatus = "APPROVED"
	RefundStatusRejected  RefundStatus = "REJECTED"
)

// Refund records a refund request against a completed payment and the fee
// schedule outcome it was priced with.
type Refund struct {
	ID                  string
	Reason              string
	RefundAmount        float64
	DeductionPercentage float64
	CancellationFee     float64
	ProcessingFee       float64
	RuleLabel           string
	Status              RefundStatus
	ApprovedAt          *time.Time
	PaymentID           string
	UserID              string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Decided reports whether an administrator already approved or rejected the refund.
func (r *Refund) Decided() bool {
	return r.Status != RefundStatusRequested
}
