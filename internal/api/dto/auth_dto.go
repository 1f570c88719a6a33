package dto

import (
	"time"

	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest payload.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LogoutRequest payload. The refresh token is optional.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=100"`
}

// InspectRequest payload.
type InspectRequest struct {
	Token string `json:"token" validate:"required"`
}

// AuthResponse is returned by signup, login and refresh.
type AuthResponse struct {
	Token            string       `json:"token"`
	ExpiresAt        time.Time    `json:"expiresAt"`
	RefreshToken     string       `json:"refreshToken"`
	RefreshExpiresAt time.Time    `json:"refreshExpiresAt"`
	User             UserResponse `json:"user"`
}

// NewAuthResponse maps a signed-in user.
func NewAuthResponse(user *domain.User, pair auth.CredentialPair) AuthResponse {
	return AuthResponse{
		Token:            pair.Access.Token,
		ExpiresAt:        pair.Access.ExpiresAt,
		RefreshToken:     pair.Refresh.Token,
		RefreshExpiresAt: pair.Refresh.ExpiresAt,
		User:             NewUserResponse(user),
	}
}

// ClaimsResponse shows the decoded, unverified content of a token.
type ClaimsResponse struct {
	Subject   string     `json:"sub"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Kind      string     `json:"typ"`
	ID        string     `json:"jti"`
	IssuedAt  *time.Time `json:"iat,omitempty"`
	ExpiresAt *time.Time `json:"exp,omitempty"`
}

// NewClaimsResponse maps decoded claims.
func NewClaimsResponse(claims *auth.Claims) ClaimsResponse {
	resp := ClaimsResponse{
		Subject: claims.Subject,
		Email:   claims.Email,
		Role:    string(claims.Role),
		Kind:    string(claims.Kind),
		ID:      claims.ID,
	}
	if claims.IssuedAt != nil {
		resp.IssuedAt = &claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = &claims.ExpiresAt.Time
	}
	return resp
}
