package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/trusttrip/booking-service/internal/domain"
)

// RefundFilter narrows refund listings.
type RefundFilter struct {
	UserID *string
	Status *domain.RefundStatus
}

// RefundRepository encapsulates refund persistence.
type RefundRepository interface {
	Create(ctx context.Context, refund *domain.Refund) error
	GetByID(ctx context.Context, id string) (*domain.Refund, error)
	// GetByIDForUpdate reads the refund and locks its row until the transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Refund, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*domain.Refund, error)
	List(ctx context.Context, filter RefundFilter, params ListParams) ([]domain.Refund, error)
	Count(ctx context.Context, filter RefundFilter) (int, error)
	UpdateStatus(ctx context.Context, id string, status domain.RefundStatus, approvedAt *time.Time) error
}

var refundSortColumns = map[string]string{
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
	"refundAmount": "refund_amount",
	"status":       "status",
}

const refundColumns = `id, reason, refund_amount, deduction_percentage, cancellation_fee, processing_fee, rule_label, status, approved_at, payment_id, user_id, created_at, updated_at`

type refundRepository struct {
	db DBTX
}

// NewRefundRepository instantiates repository.
func NewRefundRepository(db DBTX) RefundRepository {
	return &refundRepository{db: db}
}

func (r *refundRepository) Create(ctx context.Context, refund *domain.Refund) error {
	const query = `
        INSERT INTO refunds (reason, refund_amount, deduction_percentage, cancellation_fee, processing_fee, rule_label, status, payment_id, user_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		refund.Reason,
		refund.RefundAmount,
		refund.DeductionPercentage,
		refund.CancellationFee,
		refund.ProcessingFee,
		refund.RuleLabel,
		refund.Status,
		refund.PaymentID,
		refund.UserID,
	).Scan(&refund.ID, &refund.CreatedAt, &refund.UpdatedAt)
}

func (r *refundRepository) GetByID(ctx context.Context, id string) (*domain.Refund, error) {
	return scanRefund(r.db.QueryRow(ctx, `SELECT `+refundColumns+` FROM refunds WHERE id=$1`, id))
}

func (r *refundRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Refund, error) {
	return scanRefund(r.db.QueryRow(ctx, `SELECT `+refundColumns+` FROM refunds WHERE id=$1 FOR UPDATE`, id))
}

func (r *refundRepository) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Refund, error) {
	return scanRefund(r.db.QueryRow(ctx, `SELECT `+refundColumns+` FROM refunds WHERE payment_id=$1`, paymentID))
}

func (r *refundRepository) List(ctx context.Context, filter RefundFilter, params ListParams) ([]domain.Refund, error) {
	cond := refundConditions(filter)
	rows, err := r.db.Query(ctx, `SELECT `+refundColumns+` FROM refunds`+cond.where()+page(params, refundSortColumns), cond.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Refund{}
	for rows.Next() {
		refund, err := scanRefund(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *refund)
	}
	return result, rows.Err()
}

func (r *refundRepository) Count(ctx context.Context, filter RefundFilter) (int, error) {
	cond := refundConditions(filter)
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM refunds`+cond.where(), cond.args...).Scan(&total)
	return total, err
}

func (r *refundRepository) UpdateStatus(ctx context.Context, id string, status domain.RefundStatus, approvedAt *time.Time) error {
	return execOne(ctx, r.db, `UPDATE refunds SET status=$1, approved_at=$2, updated_at=NOW() WHERE id=$3`, status, approvedAt, id)
}

func refundConditions(filter RefundFilter) conditions {
	var cond conditions
	if filter.UserID != nil {
		cond.add("user_id=%s", *filter.UserID)
	}
	if filter.Status != nil {
		cond.add("status=%s", *filter.Status)
	}
	return cond
}

func scanRefund(row pgx.Row) (*domain.Refund, error) {
	var refund domain.Refund
	if err := row.Scan(
		&refund.ID,
		&refund.Reason,
		&refund.RefundAmount,
		&refund.DeductionPercentage,
		&refund.CancellationFee,
		&refund.ProcessingFee,
		&refund.RuleLabel,
		&refund.Status,
		&refund.ApprovedAt,
		&refund.PaymentID,
		&refund.UserID,
		&refund.CreatedAt,
		&refund.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &refund, nil
}
