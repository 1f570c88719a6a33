package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trusttrip/booking-service/internal/api/response"
	"github.com/trusttrip/booking-service/internal/api/validation"
	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/repository"
	"github.com/trusttrip/booking-service/internal/service"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

// parseBody decodes the JSON body into out and validates it.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("Invalid JSON payload", nil)
	}
	return validation.Struct(out)
}

// parseOptionalBody is parseBody for endpoints whose body may be empty.
func parseOptionalBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return validation.Struct(out)
	}
	return parseBody(c, out)
}

func currentIdentity(c *fiber.Ctx) (auth.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return auth.Identity{}, apperrors.NewUnauthorized("Authentication required", auth.DetailHeaderMissing)
	}
	return identity, nil
}

func listParams(c *fiber.Ctx) repository.ListParams {
	return repository.ListParams{
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", repository.DefaultLimit),
		SortBy:    c.Query("sortBy"),
		SortOrder: strings.ToLower(c.Query("sortOrder")),
	}
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil
	}
	return &value
}

func optionalQueryBool(c *fiber.Ctx, key string) *bool {
	switch strings.ToLower(c.Query(key)) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

func optionalQueryInt(c *fiber.Ctx, key string) *int {
	if c.Query(key) == "" {
		return nil
	}
	v := c.QueryInt(key, 0)
	return &v
}

// scopeToCaller restricts listings of personal records. Administrators see every
// record; other callers only their own.
func scopeToCaller(identity auth.Identity, requested *string) (*string, error) {
	if identity.IsAdmin() {
		return requested, nil
	}
	if requested != nil && *requested != identity.SubjectID {
		return nil, apperrors.NewForbidden("You can only view your own records", service.DetailOwnership)
	}
	self := identity.SubjectID
	return &self, nil
}

func requireOwner(identity auth.Identity, ownerID string) error {
	if identity.CanActFor(ownerID) {
		return nil
	}
	return apperrors.NewForbidden("You can only view your own records", service.DetailOwnership)
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.NewFieldError(field, "Please provide a valid "+field)
}

func respondPage[T, R any](c *fiber.Ctx, message string, page service.Page[T], mapItems func([]T) []R) error {
	return response.Paginated(c, message, mapItems(page.Items),
		response.NewPagination(page.Params.Page, page.Params.Limit, page.Total))
}
