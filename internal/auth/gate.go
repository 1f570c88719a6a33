package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/trusttrip/booking-service/internal/observability"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

// Machine-readable reasons placed in error.details of gate denials.
const (
	DetailHeaderMissing    = "AUTH_HEADER_MISSING"
	DetailHeaderMalformed  = "AUTH_HEADER_MALFORMED"
	DetailTokenExpired     = "TOKEN_EXPIRED"
	DetailTokenInvalid     = "TOKEN_INVALID"
	DetailInsufficientRole = "INSUFFICIENT_ROLE"
)

const (
	msgHeaderMissing   = "Authorization header missing. Use: Authorization: Bearer <token>"
	msgHeaderMalformed = "Invalid authorization header format. Use: Authorization: Bearer <token>"
	msgTokenExpired    = "Your authentication token has expired. Please log in again."
	msgTokenInvalid    = "Invalid authentication token. Please provide a valid token."
)

const (
	decisionAllow = "allow"
	decisionDeny  = "deny"
	reasonPublic  = "public"
	reasonGranted = "granted"
)

// Gate authenticates and authorizes every inbound request before routing.
type Gate struct {
	classifier *RouteClassifier
	tokens     *TokenService
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewGate constructs the gate.
func NewGate(classifier *RouteClassifier, tokens *TokenService, logger *zap.Logger, metrics *observability.Metrics) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{classifier: classifier, tokens: tokens, logger: logger, metrics: metrics}
}

// Handle is the fiber middleware entry point.
func (g *Gate) Handle(c *fiber.Ctx) error {
	path := c.Path()
	stripIdentityHeaders(c)

	class := g.classifier.Classify(path)
	if class.Kind == RoutePublic {
		g.allow(path, reasonPublic, nil)
		return c.Next()
	}

	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return g.deny(path, nil, apperrors.NewUnauthorized(msgHeaderMissing, DetailHeaderMissing), DetailHeaderMissing)
	}
	token, ok := ExtractBearer(header)
	if !ok {
		return g.deny(path, nil, apperrors.NewUnauthorized(msgHeaderMalformed, DetailHeaderMalformed), DetailHeaderMalformed)
	}

	result := g.tokens.Verify(token)
	switch result.Status {
	case VerifyExpired:
		var identity *Identity
		if result.Claims != nil {
			id := result.Claims.Identity()
			identity = &id
		}
		return g.deny(path, identity, apperrors.NewForbidden(msgTokenExpired, DetailTokenExpired), DetailTokenExpired)
	case VerifyMalformed:
		g.logger.Debug("token verification failed", zap.String("path", path), zap.Error(result.Err))
		return g.deny(path, nil, apperrors.NewForbidden(msgTokenInvalid, DetailTokenInvalid), DetailTokenInvalid)
	}

	identity := result.Claims.Identity()
	if result.Claims.Kind != TokenKindAccess {
		return g.deny(path, &identity, apperrors.NewForbidden(msgTokenInvalid, DetailTokenInvalid), DetailTokenInvalid)
	}
	if !class.Roles.Empty() && !class.Roles.Contains(identity.Role) {
		return g.deny(path, &identity,
			apperrors.NewForbidden(roleDeniedMessage(identity.Role, class.Roles), DetailInsufficientRole),
			DetailInsufficientRole)
	}

	attachIdentity(c, identity)
	g.allow(path, reasonGranted, &identity)
	return c.Next()
}

// ExtractBearer returns the token of an "Bearer <token>" header. The scheme is case sensitive
// and the header must hold exactly two parts separated by a single space.
func ExtractBearer(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func (g *Gate) allow(path, reason string, identity *Identity) {
	g.metrics.RecordAuthDecision(decisionAllow, reason)
	if identity == nil {
		g.logger.Debug("auth decision", decisionFields(path, decisionAllow, reason, nil)...)
		return
	}
	g.logger.Info("auth decision", decisionFields(path, decisionAllow, reason, identity)...)
}

func (g *Gate) deny(path string, identity *Identity, err error, reason string) error {
	g.metrics.RecordAuthDecision(decisionDeny, reason)
	g.logger.Warn("auth decision", decisionFields(path, decisionDeny, reason, identity)...)
	return err
}

func decisionFields(path, decision, reason string, identity *Identity) []zap.Field {
	fields := []zap.Field{
		zap.String("path", path),
		zap.String("decision", decision),
		zap.String("reason", reason),
	}
	if identity != nil {
		fields = append(fields,
			zap.String("subject_id", identity.SubjectID),
			zap.String("email", identity.Email),
			zap.String("role", string(identity.Role)),
		)
	}
	return fields
}
