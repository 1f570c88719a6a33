package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/trusttrip/booking-service/internal/domain"
)

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	UserID    *string
	ProjectID *string
	BookingID *string
	Status    *domain.PaymentStatus
}

// PaymentRepository encapsulates payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	// GetByIDForUpdate reads the payment and locks its row until the transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Payment, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)
	List(ctx context.Context, filter PaymentFilter, params ListParams) ([]domain.Payment, error)
	Count(ctx context.Context, filter PaymentFilter) (int, error)
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error
	// SumCompleted totals the amount of every COMPLETED payment.
	SumCompleted(ctx context.Context) (float64, error)
}

var paymentSortColumns = map[string]string{
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"amount":        "amount",
	"paidAt":        "paid_at",
	"status":        "status",
	"paymentMethod": "payment_method",
}

const paymentColumns = `id, amount, currency, payment_method, transaction_id, status, paid_at, user_id, project_id, booking_id, created_at, updated_at`

type paymentRepository struct {
	db DBTX
}

// NewPaymentRepository instantiates repository.
func NewPaymentRepository(db DBTX) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	const query = `
        INSERT INTO payments (amount, currency, payment_method, transaction_id, status, paid_at, user_id, project_id, booking_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		payment.Amount,
		payment.Currency,
		payment.Method,
		payment.TransactionID,
		payment.Status,
		payment.PaidAt,
		payment.UserID,
		payment.ProjectID,
		payment.BookingID,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return scanPayment(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id))
}

func (r *paymentRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Payment, error) {
	return scanPayment(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id=$1 FOR UPDATE`, id))
}

func (r *paymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	return scanPayment(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE transaction_id=$1`, transactionID))
}

func (r *paymentRepository) List(ctx context.Context, filter PaymentFilter, params ListParams) ([]domain.Payment, error) {
	cond := paymentConditions(filter)
	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments`+cond.where()+page(params, paymentSortColumns), cond.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *payment)
	}
	return result, rows.Err()
}

func (r *paymentRepository) Count(ctx context.Context, filter PaymentFilter) (int, error) {
	cond := paymentConditions(filter)
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM payments`+cond.where(), cond.args...).Scan(&total)
	return total, err
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	return execOne(ctx, r.db, `UPDATE payments SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
}

func (r *paymentRepository) SumCompleted(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0)::float8 FROM payments WHERE status=$1`,
		domain.PaymentStatusCompleted).Scan(&total)
	return total, err
}

func paymentConditions(filter PaymentFilter) conditions {
	var cond conditions
	if filter.UserID != nil {
		cond.add("user_id=%s", *filter.UserID)
	}
	if filter.ProjectID != nil {
		cond.add("project_id=%s", *filter.ProjectID)
	}
	if filter.BookingID != nil {
		cond.add("booking_id=%s", *filter.BookingID)
	}
	if filter.Status != nil {
		cond.add("status=%s", *filter.Status)
	}
	return cond
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var payment domain.Payment
	if err := row.Scan(
		&payment.ID,
		&payment.Amount,
		&payment.Currency,
		&payment.Method,
		&payment.TransactionID,
		&payment.Status,
		&payment.PaidAt,
		&payment.UserID,
		&payment.ProjectID,
		&payment.BookingID,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &payment, nil
}
