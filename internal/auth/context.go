package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Forwarded identity headers set on requests the Gate lets through.
const (
	HeaderUserID    = "x-user-id"
	HeaderUserEmail = "x-user-email"
	HeaderUserRole  = "x-user-role"
)

const identityKey = "auth_identity"

type ctxKey struct{}

// Identity is the per-request caller identity derived from a verified credential.
type Identity struct {
	SubjectID string
	Email     string
	Role      Role
}

// IsAdmin reports whether the identity holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanActFor reports whether the identity may act on resources owned by userID.
func (i Identity) CanActFor(userID string) bool {
	return i.IsAdmin() || i.SubjectID == userID
}

// IdentityFromContext retrieves the identity attached by the Gate.
func IdentityFromContext(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(identityKey).(Identity)
	return identity, ok
}

// IdentityFromHeaders rebuilds the identity from the forwarded x-user-* headers.
func IdentityFromHeaders(c *fiber.Ctx) (Identity, bool) {
	id := c.Get(HeaderUserID)
	if id == "" {
		return Identity{}, false
	}
	role, err := ParseRole(c.Get(HeaderUserRole))
	if err != nil {
		return Identity{}, false
	}
	return Identity{SubjectID: id, Email: c.Get(HeaderUserEmail), Role: role}, true
}

// WithIdentity stores the identity in a context.Context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

// IdentityFromRequestContext extracts an identity stored with WithIdentity.
func IdentityFromRequestContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(ctxKey{}).(Identity)
	return identity, ok
}

func attachIdentity(c *fiber.Ctx, identity Identity) {
	headers := &c.Request().Header
	headers.Set(HeaderUserID, identity.SubjectID)
	headers.Set(HeaderUserEmail, identity.Email)
	headers.Set(HeaderUserRole, string(identity.Role))
	c.Locals(identityKey, identity)
	c.SetUserContext(WithIdentity(c.UserContext(), identity))
}

// stripIdentityHeaders drops client-supplied identity headers so only the Gate sets them.
func stripIdentityHeaders(c *fiber.Ctx) {
	headers := &c.Request().Header
	headers.Del(HeaderUserID)
	headers.Del(HeaderUserEmail)
	headers.Del(HeaderUserRole)
}
