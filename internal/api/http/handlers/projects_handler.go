package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/trusttrip/booking-service/internal/api/dto"
	"github.com/trusttrip/booking-service/internal/api/response"
	"github.com/trusttrip/booking-service/internal/domain"
	"github.com/trusttrip/booking-service/internal/repository"
	"github.com/trusttrip/booking-service/internal/service"
)

// ProjectsHandler exposes trips.
type ProjectsHandler struct {
	projects *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projects *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// List handles GET /api/projects. status accepts a comma separated list.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	filter := repository.ProjectFilter{
		UserID:      optionalQuery(c, "userId"),
		Destination: optionalQuery(c, "destination"),
		Search:      optionalQuery(c, "search"),
	}
	for _, raw := range strings.Split(c.Query("status"), ",") {
		if status := strings.ToUpper(strings.TrimSpace(raw)); status != "" {
			filter.Statuses = append(filter.Statuses, domain.ProjectStatus(status))
		}
	}
	page, err := h.projects.List(c.UserContext(), filter, listParams(c))
	if err != nil {
		return err
	}
	return respondPage(c, "Projects retrieved successfully", page, dto.NewProjectResponses)
}

// Get handles GET /api/projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	project, err := h.projects.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Project retrieved successfully", dto.NewProjectResponse(project))
}

// Create handles POST /api/projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateProjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return err
	}

	project, err := h.projects.Create(c.UserContext(), identity, service.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      req.Budget,
		Currency:    req.Currency,
		ImageURL:    req.ImageURL,
		UserID:      req.UserID,
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, "Project created successfully", dto.NewProjectResponse(project))
}
