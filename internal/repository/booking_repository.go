package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/trusttrip/booking-service/internal/domain"
)

// BookingFilter narrows booking listings.
type BookingFilter struct {
	UserID    *string
	ProjectID *string
	Status    *domain.BookingStatus
}

// BookingRepository encapsulates booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// GetByIDForUpdate reads the booking and locks its row until the transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter BookingFilter, params ListParams) ([]domain.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

var bookingSortColumns = map[string]string{
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"quantity":   "quantity",
	"totalPrice": "total_price",
	"status":     "status",
}

const bookingColumns = `id, quantity, total_price, status, user_id, project_id, created_at, updated_at`

type bookingRepository struct {
	db DBTX
}

// NewBookingRepository instantiates repository.
func NewBookingRepository(db DBTX) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	const query = `
        INSERT INTO bookings (quantity, total_price, status, user_id, project_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		booking.Quantity,
		booking.TotalPrice,
		booking.Status,
		booking.UserID,
		booking.ProjectID,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
}

func (r *bookingRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1 FOR UPDATE`, id))
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter, params ListParams) ([]domain.Booking, error) {
	cond := bookingConditions(filter)
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings`+cond.where()+page(params, bookingSortColumns), cond.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *booking)
	}
	return result, rows.Err()
}

func (r *bookingRepository) Count(ctx context.Context, filter BookingFilter) (int, error) {
	cond := bookingConditions(filter)
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+cond.where(), cond.args...).Scan(&total)
	return total, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	return execOne(ctx, r.db, `UPDATE bookings SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
}

func bookingConditions(filter BookingFilter) conditions {
	var cond conditions
	if filter.UserID != nil {
		cond.add("user_id=%s", *filter.UserID)
	}
	if filter.ProjectID != nil {
		cond.add("project_id=%s", *filter.ProjectID)
	}
	if filter.Status != nil {
		cond.add("status=%s", *filter.Status)
	}
	return cond
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var booking domain.Booking
	if err := row.Scan(
		&booking.ID,
		&booking.Quantity,
		&booking.TotalPrice,
		&booking.Status,
		&booking.UserID,
		&booking.ProjectID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &booking, nil
}
