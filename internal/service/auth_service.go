package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/domain"
	"github.com/trusttrip/booking-service/internal/repository"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

// Detail codes of authentication failures raised by AuthService.
const (
	DetailInvalidCredentials = "INVALID_CREDENTIALS"
	DetailAccountBanned      = "ACCOUNT_BANNED"
	DetailTokenRevoked       = "TOKEN_REVOKED"
)

const msgInvalidCredentials = "Invalid email or password"

// RefreshSessions tracks refresh tokens that may still be exchanged.
type RefreshSessions interface {
	Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error
	Consume(ctx context.Context, tokenID string) (userID string, ok bool, err error)
	Revoke(ctx context.Context, tokenID string) error
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	Users    repository.UserRepository
	Tokens   *auth.TokenService
	Hasher   auth.PasswordHasher
	Sessions RefreshSessions
	Logger   *zap.Logger
}

// AuthService coordinates signup, login and credential rotation.
type AuthService struct {
	users    repository.UserRepository
	tokens   *auth.TokenService
	hasher   auth.PasswordHasher
	sessions RefreshSessions
	logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:    deps.Users,
		tokens:   deps.Tokens,
		hasher:   deps.Hasher,
		sessions: deps.Sessions,
		logger:   logger,
	}
}

// SignupInput describes a self-registration.
type SignupInput struct {
	Name         string
	Email        string
	Password     string
	Bio          *string
	Phone        *string
	ProfileImage *string
}

// AuthResult is a user together with freshly issued credentials.
type AuthResult struct {
	User        *domain.User
	Credentials auth.CredentialPair
}

// Signup creates a regular account and signs it in.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("An account with this email already exists")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         string(auth.RoleUser),
		Status:       domain.UserStatusActive,
		Bio:          input.Bio,
		Phone:        input.Phone,
		ProfileImage: input.ProfileImage,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID))
	return s.signIn(ctx, user)
}

// Login verifies credentials. Unknown emails and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewUnauthorized(msgInvalidCredentials, DetailInvalidCredentials)
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorized(msgInvalidCredentials, DetailInvalidCredentials)
	}
	if user.Banned() {
		return nil, apperrors.NewForbidden("Your account has been banned", DetailAccountBanned)
	}
	return s.signIn(ctx, user)
}

// Refresh exchanges a live refresh token for a new credential pair. The presented
// refresh session is consumed, so each refresh token works once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	result := s.tokens.Verify(refreshToken)
	switch {
	case result.Status == auth.VerifyExpired:
		return nil, apperrors.NewUnauthorized("Refresh token has expired. Please log in again.", auth.DetailTokenExpired)
	case result.Status != auth.VerifyValid || result.Claims.Kind != auth.TokenKindRefresh:
		return nil, apperrors.NewUnauthorized("Invalid refresh token", auth.DetailTokenInvalid)
	}

	owner, ok, err := s.sessions.Consume(ctx, result.Claims.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !ok || owner != result.Claims.Subject {
		return nil, apperrors.NewUnauthorized("Refresh token has been revoked", DetailTokenRevoked)
	}

	user, err := s.users.GetByID(ctx, result.Claims.Subject)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewUnauthorized("Invalid refresh token", auth.DetailTokenInvalid)
		}
		return nil, err
	}
	if user.Banned() {
		return nil, apperrors.NewForbidden("Your account has been banned", DetailAccountBanned)
	}
	return s.signIn(ctx, user)
}

// Logout revokes the caller's refresh session. Unknown or foreign tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, identity auth.Identity, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	result := s.tokens.Verify(refreshToken)
	if result.Claims == nil || result.Claims.Kind != auth.TokenKindRefresh || result.Claims.Subject != identity.SubjectID {
		return nil
	}
	if err := s.sessions.Revoke(ctx, result.Claims.ID); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.logger.Info("user logged out", zap.String("user_id", identity.SubjectID))
	return nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, identity auth.Identity, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, identity.SubjectID)
	if err != nil {
		return notFoundAs(err, "User")
	}
	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return apperrors.NewUnauthorized("Current password is incorrect", DetailInvalidCredentials)
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

// Me loads the caller's account.
func (s *AuthService) Me(ctx context.Context, identity auth.Identity) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, identity.SubjectID)
	if err != nil {
		return nil, notFoundAs(err, "User")
	}
	return user, nil
}

// Inspect decodes a token without verifying it. Diagnostics only.
func (s *AuthService) Inspect(token string) (*auth.Claims, bool) {
	return s.tokens.DecodeUnsafe(token)
}

func (s *AuthService) signIn(ctx context.Context, user *domain.User) (*AuthResult, error) {
	role, err := auth.ParseRole(user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	pair, err := s.tokens.IssuePair(auth.IdentityClaims{SubjectID: user.ID, Email: user.Email, Role: role})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := s.sessions.Save(ctx, pair.Refresh.ID, user.ID, s.tokens.RefreshTTL()); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{User: user, Credentials: pair}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
