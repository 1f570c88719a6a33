package dto

import (
	"time"

	"github.com/trusttrip/booking-service/internal/domain"
)

// CreateProjectRequest payload. Dates are parsed by the handler.
type CreateProjectRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Destination string   `json:"destination" validate:"required,min=2,max=100"`
	StartDate   string   `json:"startDate" validate:"required"`
	EndDate     string   `json:"endDate" validate:"required"`
	Budget      *float64 `json:"budget" validate:"omitempty,gt=0,lte=1000000"`
	Currency    string   `json:"currency" validate:"omitempty,len=3,uppercase,alpha"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url"`
	UserID      string   `json:"userId" validate:"omitempty,uuid"`
}

// ProjectResponse describes a trip.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Budget      *float64  `json:"budget"`
	Currency    string    `json:"currency"`
	ImageURL    *string   `json:"imageUrl"`
	Status      string    `json:"status"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProjectResponse maps a project.
func NewProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Destination: p.Destination,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Budget:      p.Budget,
		Currency:    p.Currency,
		ImageURL:    p.ImageURL,
		Status:      string(p.Status),
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProjectResponses maps a page of projects.
func NewProjectResponses(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, NewProjectResponse(&projects[i]))
	}
	return out
}
