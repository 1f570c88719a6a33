package response

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int
		want  Pagination
	}{
		{name: "empty", page: 1, limit: 10, total: 0, want: Pagination{Page: 1, Limit: 10}},
		{name: "first of many", page: 1, limit: 10, total: 25, want: Pagination{Page: 1, Limit: 10, Total: 25, TotalPages: 3, HasNext: true}},
		{name: "middle", page: 2, limit: 10, total: 25, want: Pagination{Page: 2, Limit: 10, Total: 25, TotalPages: 3, HasNext: true, HasPrev: true}},
		{name: "last exact", page: 3, limit: 5, total: 15, want: Pagination{Page: 3, Limit: 5, Total: 15, TotalPages: 3, HasPrev: true}},
		{name: "zero limit", page: 1, limit: 0, total: 4, want: Pagination{Page: 1, Total: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewPagination(tt.page, tt.limit, tt.total); got != tt.want {
				t.Fatalf("NewPagination() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestErrorEnvelopeShape(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Error(c, apperrors.ToDomainError(apperrors.NewFieldError("email", "Please provide a valid email")))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Error   struct {
			Code    string `json:"code"`
			Details []struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			} `json:"details"`
		} `json:"error"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	if body.Success || body.Message != "Please provide a valid email" || body.Error.Code != apperrors.CodeValidation {
		t.Fatalf("envelope = %s", raw)
	}
	if len(body.Error.Details) != 1 || body.Error.Details[0].Field != "email" {
		t.Fatalf("details = %+v", body.Error.Details)
	}
	if _, err := time.Parse(time.RFC3339Nano, body.Timestamp); err != nil {
		t.Fatalf("timestamp %q: %v", body.Timestamp, err)
	}
}

func TestPaginatedEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Paginated(c, "Bookings retrieved successfully", []string{"a"}, NewPagination(1, 1, 2))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["success"] != true {
		t.Fatalf("success = %v", body["success"])
	}
	pagination, ok := body["pagination"].(map[string]any)
	if !ok || pagination["hasNext"] != true || pagination["totalPages"] != float64(2) {
		t.Fatalf("pagination = %v", body["pagination"])
	}
	if _, ok := body["error"]; ok {
		t.Fatal("success envelope must not carry an error member")
	}
}
