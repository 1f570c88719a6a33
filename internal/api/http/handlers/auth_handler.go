package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trusttrip/booking-service/internal/api/dto"
	"github.com/trusttrip/booking-service/internal/api/response"
	"github.com/trusttrip/booking-service/internal/service"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

// AuthHandler exposes signup, login and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /api/auth/signup and /api/auth/register.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.auth.Signup(c.UserContext(), service.SignupInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Bio:          req.Bio,
		Phone:        req.Phone,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, "Account created successfully",
		dto.NewAuthResponse(result.User, result.Credentials))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Login successful",
		dto.NewAuthResponse(result.User, result.Credentials))
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Token refreshed successfully",
		dto.NewAuthResponse(result.User, result.Credentials))
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.LogoutRequest
	if err := parseOptionalBody(c, &req); err != nil {
		return err
	}
	if err := h.auth.Logout(c.UserContext(), identity, req.RefreshToken); err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Logged out successfully", nil)
}

// ChangePassword handles POST /api/auth/password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.PasswordChangeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.auth.ChangePassword(c.UserContext(), identity, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "Password updated successfully", nil)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	user, err := h.auth.Me(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "User retrieved successfully", dto.NewUserResponse(user))
}

// Inspect handles POST /api/auth/inspect. The token is decoded without verification.
func (h *AuthHandler) Inspect(c *fiber.Ctx) error {
	var req dto.InspectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	claims, ok := h.auth.Inspect(req.Token)
	if !ok {
		return apperrors.NewFieldError("token", "Token could not be decoded")
	}
	return response.Success(c, fiber.StatusOK, "Token decoded (signature not verified)", dto.NewClaimsResponse(claims))
}
