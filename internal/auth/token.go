package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind distinguishes short-lived access credentials from refresh credentials.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

var (
	errMissingSubject = errors.New("token has no subject")
	errUnknownKind    = errors.New("token has unknown type")
)

// TokenConfig is the immutable signing configuration of a TokenService.
type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// IdentityClaims is the caller-supplied part of a credential.
type IdentityClaims struct {
	SubjectID string
	Email     string
	Role      Role
}

// Claims describes the JWT payload.
type Claims struct {
	Email string    `json:"email"`
	Role  Role      `json:"role"`
	Kind  TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// Identity returns the per-request identity carried by the claims.
func (c *Claims) Identity() Identity {
	return Identity{SubjectID: c.Subject, Email: c.Email, Role: c.Role}
}

// Credential is an issued, signed token with its lifetime.
type Credential struct {
	Token     string
	ID        string
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// CredentialPair bundles the access and refresh credentials issued at login.
type CredentialPair struct {
	Access  Credential
	Refresh Credential
}

// VerifyStatus is the outcome of verifying a credential.
type VerifyStatus int

const (
	VerifyValid VerifyStatus = iota
	VerifyExpired
	VerifyMalformed
)

func (s VerifyStatus) String() string {
	switch s {
	case VerifyValid:
		return "valid"
	case VerifyExpired:
		return "expired"
	default:
		return "malformed"
	}
}

// VerifyResult carries the verification outcome. Claims is set for Valid results and,
// for Expired results, holds the signature-checked but stale claims for logging.
type VerifyResult struct {
	Status VerifyStatus
	Claims *Claims
	Err    error
}

// TokenService issues and verifies HS256 credentials.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces the wall clock used for issuing and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(ts *TokenService) { ts.now = now }
}

// NewTokenService builds a token service from cfg.
func NewTokenService(cfg TokenConfig, opts ...TokenOption) *TokenService {
	ts := &TokenService{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
	if ts.accessTTL <= 0 {
		ts.accessTTL = time.Hour
	}
	if ts.refreshTTL <= 0 {
		ts.refreshTTL = 7 * 24 * time.Hour
	}
	for _, opt := range opts {
		opt(ts)
	}
	return ts
}

// AccessTTL returns the lifetime of access credentials.
func (ts *TokenService) AccessTTL() time.Duration { return ts.accessTTL }

// RefreshTTL returns the lifetime of refresh credentials.
func (ts *TokenService) RefreshTTL() time.Duration { return ts.refreshTTL }

// Issue signs an access credential for claims valid for ttl.
func (ts *TokenService) Issue(claims IdentityClaims, ttl time.Duration) (Credential, error) {
	return ts.issue(claims, TokenKindAccess, ttl)
}

// IssuePair signs an access and a refresh credential for the same identity.
func (ts *TokenService) IssuePair(claims IdentityClaims) (CredentialPair, error) {
	access, err := ts.issue(claims, TokenKindAccess, ts.accessTTL)
	if err != nil {
		return CredentialPair{}, err
	}
	refresh, err := ts.issue(claims, TokenKindRefresh, ts.refreshTTL)
	if err != nil {
		return CredentialPair{}, err
	}
	return CredentialPair{Access: access, Refresh: refresh}, nil
}

func (ts *TokenService) issue(claims IdentityClaims, kind TokenKind, ttl time.Duration) (Credential, error) {
	if claims.SubjectID == "" {
		return Credential{}, errMissingSubject
	}
	if !claims.Role.Valid() {
		return Credential{}, fmt.Errorf("%w: %q", ErrUnknownRole, claims.Role)
	}
	if ttl <= 0 {
		return Credential{}, fmt.Errorf("non-positive token ttl %s", ttl)
	}

	issuedAt := ts.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl)
	id := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email: claims.Email,
		Role:  claims.Role,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   claims.SubjectID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return Credential{}, fmt.Errorf("sign token: %w", err)
	}
	return Credential{Token: signed, ID: id, Kind: kind, IssuedAt: issuedAt, ExpiresAt: expiresAt}, nil
}

// Verify checks signature and expiry. Expected failures are reported through Status.
func (ts *TokenService) Verify(tokenStr string) VerifyResult {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ts.now),
	)

	claims := &Claims{}
	_, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return ts.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return VerifyResult{Status: VerifyExpired, Claims: claims, Err: err}
	default:
		return VerifyResult{Status: VerifyMalformed, Err: err}
	}

	if claims.Subject == "" {
		return VerifyResult{Status: VerifyMalformed, Err: errMissingSubject}
	}
	role, err := ParseRole(string(claims.Role))
	if err != nil {
		return VerifyResult{Status: VerifyMalformed, Err: err}
	}
	claims.Role = role
	if claims.Kind != TokenKindAccess && claims.Kind != TokenKindRefresh {
		return VerifyResult{Status: VerifyMalformed, Err: errUnknownKind}
	}
	return VerifyResult{Status: VerifyValid, Claims: claims}
}

// DecodeUnsafe parses a token without checking its signature or expiry.
// Only for diagnostics; never use the result for an authorization decision.
func (ts *TokenService) DecodeUnsafe(tokenStr string) (*Claims, bool) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, false
	}
	return claims, true
}
