package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trusttrip/booking-service/internal/api/response"
	"github.com/trusttrip/booking-service/internal/service"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName  string
	version      string
	dependencies map[string]Pinger
	admin        *service.AdminService
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, dependencies map[string]Pinger, admin *service.AdminService) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, dependencies: dependencies, admin: admin}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, "Service is alive", fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true
	for name, dep := range h.dependencies {
		if err := dep.Ping(ctx); err != nil {
			depStatus[name] = err.Error()
			ready = false
			continue
		}
		depStatus[name] = "ok"
	}

	if !ready {
		return response.Error(c, apperrors.NewDomainError("DEPENDENCY_UNAVAILABLE",
			"one or more dependencies unavailable", fiber.StatusServiceUnavailable, depStatus))
	}
	return response.Success(c, fiber.StatusOK, "Service is ready", fiber.Map{
		"status":       "ready",
		"dependencies": depStatus,
	})
}

// Database handles GET /api/test.
func (h *HealthHandler) Database(c *fiber.Ctx) error {
	users, projects, err := h.admin.DatabaseCounts(c.UserContext())
	if err != nil {
		domainErr := apperrors.NewDomainError(apperrors.CodeInternal, "Database connection failed", fiber.StatusInternalServerError, nil)
		domainErr.Err = err
		return domainErr
	}
	return response.Success(c, fiber.StatusOK, "Database connection successful!", fiber.Map{
		"usersCount":    users,
		"projectsCount": projects,
	})
}
