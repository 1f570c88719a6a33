package service

import (
	"context"
	"strings"
	"time"

	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/domain"
	"github.com/trusttrip/booking-service/internal/repository"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

const defaultCurrency = "USD"

// ProjectService manages trips.
type ProjectService struct {
	store repository.Store
	now   func() time.Time
}

// NewProjectService builds the service.
func NewProjectService(deps Dependencies) *ProjectService {
	deps = deps.withDefaults()
	return &ProjectService{store: deps.Store, now: deps.Now}
}

// ProjectInput describes a new trip.
type ProjectInput struct {
	Title       string
	Description *string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Budget      *float64
	Currency    string
	ImageURL    *string
	UserID      string
}

// List returns a page of projects.
func (s *ProjectService) List(ctx context.Context, filter repository.ProjectFilter, params repository.ListParams) (Page[domain.Project], error) {
	projects := s.store.Repos().Projects
	items, err := projects.List(ctx, filter, params)
	if err != nil {
		return Page[domain.Project]{}, err
	}
	total, err := projects.Count(ctx, filter)
	if err != nil {
		return Page[domain.Project]{}, err
	}
	return newPage(items, total, params), nil
}

// Get loads a single project.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.store.Repos().Projects.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Project")
	}
	return project, nil
}

// Create plans a trip for its owner. Trips start in the future and end after they start.
func (s *ProjectService) Create(ctx context.Context, identity auth.Identity, input ProjectInput) (*domain.Project, error) {
	ownerID, err := resolveOwner(identity, input.UserID)
	if err != nil {
		return nil, err
	}
	if !input.StartDate.After(s.now()) {
		return nil, apperrors.NewFieldError("startDate", "Start date must be in the future")
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, apperrors.NewFieldError("endDate", "End date must be after start date")
	}

	repos := s.store.Repos()
	if _, err := repos.Users.GetByID(ctx, ownerID); err != nil {
		return nil, notFoundAs(err, "User")
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	project := &domain.Project{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Destination: strings.TrimSpace(input.Destination),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Budget:      input.Budget,
		Currency:    currency,
		ImageURL:    input.ImageURL,
		Status:      domain.ProjectStatusPlanning,
		UserID:      ownerID,
	}
	if err := repos.Projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}
