package domain

import "time"

// Review is a user's rating of a project. One per user and project.
type Review struct {
	ID        string
	Rating    int
	Comment   *string
	UserID    string
	ProjectID string
	CreatedAt time.Time
	UpdatedAt time.Time
}
