package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trusttrip/booking-service/internal/api/response"
	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/config"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testServer struct {
	app    *fiber.App
	tokens *auth.TokenService
}

// newTestServer mounts handlers behind the real gate. Services are nil, so only
// requests rejected before reaching a service can be exercised.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	tokens := auth.NewTokenService(auth.TokenConfig{Secret: "handler-test", AccessTTL: time.Hour, RefreshTTL: time.Hour})
	rules, err := auth.NewRouteRules(config.DefaultRouteRules())
	if err != nil {
		t.Fatal(err)
	}
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return response.Error(c, apperrors.ToDomainError(err))
		},
	})
	app.Use(auth.NewGate(auth.NewRouteClassifier(rules), tokens, nil, nil).Handle)

	health := NewHealthHandler("booking-service", "test", map[string]Pinger{
		"postgres": fakePinger{},
		"redis":    fakePinger{err: errors.New("connection refused")},
	}, nil)
	app.Get("/health/live", health.Live)
	app.Get("/health/ready", health.Ready)

	projects := NewProjectsHandler(nil)
	bookings := NewBookingsHandler(nil)
	refunds := NewRefundsHandler(nil)
	app.Post("/api/projects", projects.Create)
	app.Get("/api/bookings", bookings.List)
	app.Post("/api/bookings", bookings.Create)
	app.Get("/api/refund/quote", refunds.Quote)

	return &testServer{app: app, tokens: tokens}
}

func (s *testServer) bearer(t *testing.T, subject string, role auth.Role) string {
	t.Helper()
	cred, err := s.tokens.Issue(auth.IdentityClaims{SubjectID: subject, Email: subject + "@trusttrip.com", Role: role}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + cred.Token
}

func (s *testServer) do(t *testing.T, method, path, authorization, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	defer resp.Body.Close()
	decoded := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, decoded
}

func fieldNames(body map[string]any) []string {
	errBody, _ := body["error"].(map[string]any)
	details, _ := errBody["details"].([]any)
	var names []string
	for _, d := range details {
		if m, ok := d.(map[string]any); ok {
			names = append(names, m["field"].(string))
		}
	}
	return names
}

func TestHealthLiveAndReady(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/health/live", "", "")
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("live = %d %v", status, body)
	}

	status, body = s.do(t, http.MethodGet, "/health/ready", "", "")
	if status != http.StatusServiceUnavailable {
		t.Fatalf("ready status = %d", status)
	}
	errBody := body["error"].(map[string]any)
	deps := errBody["details"].(map[string]any)
	if errBody["code"] != "DEPENDENCY_UNAVAILABLE" || deps["postgres"] != "ok" || deps["redis"] != "connection refused" {
		t.Fatalf("ready body = %v", body)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.bearer(t, "u1", auth.RoleUser)

	status, body := s.do(t, http.MethodPost, "/api/bookings", token, `{"quantity":0,"totalPrice":-5,"projectId":"not-a-uuid"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d %v", status, body)
	}
	got := strings.Join(fieldNames(body), ",")
	if got != "quantity,totalPrice,projectId" {
		t.Fatalf("fields = %s", got)
	}

	status, body = s.do(t, http.MethodPost, "/api/bookings", token, `{"quantity":`)
	if status != http.StatusBadRequest || body["message"] != "Invalid JSON payload" {
		t.Fatalf("malformed json = %d %v", status, body)
	}
}

func TestCreateProjectRejectsUnparseableDates(t *testing.T) {
	s := newTestServer(t)
	payload := `{"title":"Alps trek","destination":"Chamonix","startDate":"next tuesday","endDate":"2030-01-10"}`

	status, body := s.do(t, http.MethodPost, "/api/projects", s.bearer(t, "u1", auth.RoleUser), payload)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d %v", status, body)
	}
	if fields := fieldNames(body); len(fields) != 1 || fields[0] != "startDate" {
		t.Fatalf("fields = %v", fields)
	}
}

func TestListScopesToCaller(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(t, http.MethodGet, "/api/bookings?userId=someone-else", s.bearer(t, "u1", auth.RoleUser), "")
	if status != http.StatusForbidden {
		t.Fatalf("status = %d %v", status, body)
	}
}

func TestRefundQuoteRequiresPaymentID(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(t, http.MethodGet, "/api/refund/quote", s.bearer(t, "u1", auth.RoleUser), "")
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d %v", status, body)
	}
	if fields := fieldNames(body); len(fields) != 1 || fields[0] != "paymentId" {
		t.Fatalf("fields = %v", fields)
	}
}

func TestScopeToCaller(t *testing.T) {
	user := auth.Identity{SubjectID: "u1", Role: auth.RoleUser}
	admin := auth.Identity{SubjectID: "a1", Role: auth.RoleAdmin}
	other := "u2"
	self := "u1"

	if got, err := scopeToCaller(user, nil); err != nil || got == nil || *got != "u1" {
		t.Fatalf("user without filter = %v, %v", got, err)
	}
	if got, err := scopeToCaller(user, &self); err != nil || *got != "u1" {
		t.Fatalf("user own filter = %v, %v", got, err)
	}
	if _, err := scopeToCaller(user, &other); err == nil {
		t.Fatal("user must not list another user's records")
	}
	if got, err := scopeToCaller(admin, nil); err != nil || got != nil {
		t.Fatalf("admin without filter = %v, %v", got, err)
	}
	if got, err := scopeToCaller(admin, &other); err != nil || *got != "u2" {
		t.Fatalf("admin filter = %v, %v", got, err)
	}
}

func TestParseDate(t *testing.T) {
	tests := map[string]time.Time{
		"2030-01-10":                time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC),
		"2030-01-10T08:30:00":       time.Date(2030, 1, 10, 8, 30, 0, 0, time.UTC),
		"2030-01-10T08:30:00+02:00": time.Date(2030, 1, 10, 6, 30, 0, 0, time.UTC),
		"2030-01-10T08:30:00.500Z":  time.Date(2030, 1, 10, 8, 30, 0, 500_000_000, time.UTC),
	}
	for raw, want := range tests {
		got, err := parseDate("startDate", raw)
		if err != nil || !got.Equal(want) {
			t.Errorf("parseDate(%q) = %v, %v", raw, got, err)
		}
	}
	if _, err := parseDate("endDate", "31/12/2030"); err == nil {
		t.Fatal("expected error")
	}
}
