package domain

import "time"

// BookingStatus enumerates booking states.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking reserves seats on a project for a user.
type Booking struct {
	ID         string
	Quantity   int
	TotalPrice float64
	Status     BookingStatus
	UserID     string
	ProjectID  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
