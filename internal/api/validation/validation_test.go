package validation

import (
	"net/http"
	"testing"

	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

type signupPayload struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
	Currency string  `json:"currency" validate:"omitempty,len=3,uppercase,alpha"`
	Method   string  `json:"paymentMethod" validate:"omitempty,oneof=credit_card paypal"`
	Rating   int     `json:"rating" validate:"omitempty,min=1,max=5"`
}

func strPtr(s string) *string { return &s }

func TestStructAcceptsValidPayload(t *testing.T) {
	payload := signupPayload{Name: "Ada", Email: "ada@trusttrip.com", Phone: strPtr("+1 (555) 010-2000"), Currency: "EUR", Method: "paypal", Rating: 4}
	if err := Struct(payload); err != nil {
		t.Fatalf("Struct() error: %v", err)
	}
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	payload := signupPayload{Name: "A", Email: "not-an-email", Phone: strPtr("call me"), Currency: "usd", Method: "bitcoin", Rating: 9}
	err := Struct(payload)
	if err == nil {
		t.Fatal("expected validation error")
	}
	domainErr := apperrors.ToDomainError(err)
	if domainErr.HTTPStatus != http.StatusBadRequest || domainErr.Code != apperrors.CodeValidation {
		t.Fatalf("error = %+v", domainErr)
	}
	fields, ok := domainErr.Details.([]apperrors.FieldError)
	if !ok {
		t.Fatalf("details = %#v", domainErr.Details)
	}

	want := map[string]string{
		"name":          "name must be at least 2 characters long",
		"email":         "Please provide a valid email address",
		"phone":         "Please provide a valid phone number",
		"currency":      "currency must be uppercase letters only",
		"paymentMethod": "paymentMethod must be one of: credit_card, paypal",
		"rating":        "rating cannot exceed 5",
	}
	if len(fields) != len(want) {
		t.Fatalf("fields = %+v", fields)
	}
	for _, f := range fields {
		if want[f.Field] != f.Message {
			t.Errorf("%s: message = %q, want %q", f.Field, f.Message, want[f.Field])
		}
	}
}

func TestStructRequired(t *testing.T) {
	err := Struct(signupPayload{})
	fields := apperrors.ToDomainError(err).Details.([]apperrors.FieldError)
	if len(fields) != 2 || fields[0].Message != "name is required" || fields[1].Message != "email is required" {
		t.Fatalf("fields = %+v", fields)
	}
}
