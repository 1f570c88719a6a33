package domain

import "time"

// ProjectStatus enumerates trip lifecycle states.
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "PLANNING"
	ProjectStatusConfirmed ProjectStatus = "CONFIRMED"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

// Project is a planned trip. StartDate is the departure used by the refund schedule.
type Project struct {
	ID          string
	Title       string
	Description *string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Budget      *float64
	Currency    string
	ImageURL    *string
	Status      ProjectStatus
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HoursUntilDeparture is negative once the trip has started.
func (p *Project) HoursUntilDeparture(now time.Time) float64 {
	return p.StartDate.Sub(now).Hours()
}
