package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/trusttrip/booking-service/internal/domain"
)

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	UserID      *string
	Statuses    []domain.ProjectStatus
	Destination *string
	Search      *string
}

// ProjectRepository encapsulates trip persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter, params ListParams) ([]domain.Project, error)
	Count(ctx context.Context, filter ProjectFilter) (int, error)
}

var projectSortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"title":       "title",
	"destination": "destination",
	"startDate":   "start_date",
	"endDate":     "end_date",
	"budget":      "budget",
}

const projectColumns = `id, title, description, destination, start_date, end_date, budget, currency, image_url, status, user_id, created_at, updated_at`

type projectRepository struct {
	db DBTX
}

// NewProjectRepository instantiates repository.
func NewProjectRepository(db DBTX) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (title, description, destination, start_date, end_date, budget, currency, image_url, status, user_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		project.Title,
		project.Description,
		project.Destination,
		project.StartDate,
		project.EndDate,
		project.Budget,
		project.Currency,
		project.ImageURL,
		project.Status,
		project.UserID,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return scanProject(r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id=$1`, id))
}

func (r *projectRepository) List(ctx context.Context, filter ProjectFilter, params ListParams) ([]domain.Project, error) {
	cond := projectConditions(filter)
	rows, err := r.db.Query(ctx, `SELECT `+projectColumns+` FROM projects`+cond.where()+page(params, projectSortColumns), cond.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *project)
	}
	return result, rows.Err()
}

func (r *projectRepository) Count(ctx context.Context, filter ProjectFilter) (int, error) {
	cond := projectConditions(filter)
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects`+cond.where(), cond.args...).Scan(&total)
	return total, err
}

func projectConditions(filter ProjectFilter) conditions {
	var cond conditions
	if filter.UserID != nil {
		cond.add("user_id=%s", *filter.UserID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			statuses[i] = string(status)
		}
		cond.add("status = ANY(%s)", statuses)
	}
	if filter.Destination != nil && *filter.Destination != "" {
		cond.add("LOWER(destination) LIKE %s", likePattern(*filter.Destination))
	}
	if filter.Search != nil && *filter.Search != "" {
		cond.add("(LOWER(title) LIKE %[1]s OR LOWER(COALESCE(description, '')) LIKE %[1]s OR LOWER(destination) LIKE %[1]s)", likePattern(*filter.Search))
	}
	return cond
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var project domain.Project
	if err := row.Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.Destination,
		&project.StartDate,
		&project.EndDate,
		&project.Budget,
		&project.Currency,
		&project.ImageURL,
		&project.Status,
		&project.UserID,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &project, nil
}
