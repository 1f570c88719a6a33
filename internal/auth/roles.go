package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

// Role enumerates the access levels a user identity can hold.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ErrUnknownRole is returned when a role string is not one of the known roles.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole converts a role string entering the system into a Role.
// An unset role resolves to RoleUser.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.TrimSpace(raw)) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

func (r Role) String() string {
	return string(r)
}

// RoleSet is an immutable set of roles. The zero value is empty and means "any role".
type RoleSet struct {
	members map[Role]struct{}
}

// NewRoleSet builds a set from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	if len(roles) == 0 {
		return RoleSet{}
	}
	members := make(map[Role]struct{}, len(roles))
	for _, role := range roles {
		members[role] = struct{}{}
	}
	return RoleSet{members: members}
}

// Contains reports whether role is a member.
func (s RoleSet) Contains(role Role) bool {
	_, ok := s.members[role]
	return ok
}

// Empty reports whether the set has no members.
func (s RoleSet) Empty() bool {
	return len(s.members) == 0
}

// Strings returns the members sorted by name.
func (s RoleSet) Strings() []string {
	out := make([]string, 0, len(s.members))
	for role := range s.members {
		out = append(out, string(role))
	}
	sort.Strings(out)
	return out
}

// RequireRole ensures the identity attached by the Gate holds one of the allowed roles.
func RequireRole(allowed ...Role) fiber.Handler {
	allowedSet := NewRoleSet(allowed...)

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required", DetailHeaderMissing)
		}
		if allowedSet.Empty() || allowedSet.Contains(identity.Role) {
			return c.Next()
		}
		return apperrors.NewForbidden(roleDeniedMessage(identity.Role, allowedSet), DetailInsufficientRole)
	}
}

func roleDeniedMessage(role Role, accepted RoleSet) string {
	return fmt.Sprintf("Your role (%s) does not have access to this resource. Required roles: %s",
		role, strings.Join(accepted.Strings(), ", "))
}
