// Package response renders the uniform JSON envelopes returned by every endpoint.
package response

import (
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

// isoMillis matches the JavaScript Date.toISOString layout used by existing clients.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination derives page metadata from the requested window and the total row count.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    limit > 0 && page*limit < total,
		HasPrev:    page > 1,
	}
}

// Envelope is the success body.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Timestamp  string      `json:"timestamp"`
}

// ErrorBody is the error member of an error envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope is the failure body.
type ErrorEnvelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

// Success writes a success envelope with the given status.
func Success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: timestamp(),
	})
}

// Paginated writes a success envelope carrying pagination metadata.
func Paginated(c *fiber.Ctx, message string, data any, pagination Pagination) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: &pagination,
		Timestamp:  timestamp(),
	})
}

// Error writes the error envelope for a domain error.
func Error(c *fiber.Ctx, domainErr *apperrors.DomainError) error {
	return c.Status(domainErr.HTTPStatus).JSON(ErrorEnvelope{
		Success: false,
		Message: domainErr.Message,
		Error: ErrorBody{
			Code:    domainErr.Code,
			Details: domainErr.Details,
		},
		Timestamp: timestamp(),
	})
}

func timestamp() string {
	return time.Now().UTC().Format(isoMillis)
}
