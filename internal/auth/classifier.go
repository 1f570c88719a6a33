package auth

import (
	"fmt"
	"strings"

	"github.com/trusttrip/booking-service/internal/config"
)

// RouteKind is the authentication requirement of a path.
type RouteKind int

const (
	RoutePublic RouteKind = iota
	RouteAuthRequired
)

func (k RouteKind) String() string {
	if k == RoutePublic {
		return "public"
	}
	return "auth_required"
}

// RoleRule restricts a path prefix to a set of roles.
type RoleRule struct {
	Prefix string
	Roles  RoleSet
}

// RouteRules is the ordered rule table. Within each list the first matching prefix wins.
type RouteRules struct {
	Public         []string
	RoleRestricted []RoleRule
	AuthRequired   []string
	// DefaultAllow makes unmatched paths public. Off by default: unmatched paths need a token.
	DefaultAllow bool
}

// NewRouteRules validates raw configuration and converts role names into Roles.
func NewRouteRules(cfg config.RouteRulesConfig) (RouteRules, error) {
	rules := RouteRules{DefaultAllow: cfg.Default == config.RouteDefaultAllow}

	for _, prefix := range cfg.Public {
		if err := checkPrefix(prefix); err != nil {
			return RouteRules{}, fmt.Errorf("public rule: %w", err)
		}
		rules.Public = append(rules.Public, prefix)
	}
	for _, rule := range cfg.RoleBased {
		if err := checkPrefix(rule.Path); err != nil {
			return RouteRules{}, fmt.Errorf("role rule: %w", err)
		}
		roles := make([]Role, 0, len(rule.Roles))
		for _, raw := range rule.Roles {
			if strings.TrimSpace(raw) == "" {
				return RouteRules{}, fmt.Errorf("role rule %s: empty role name", rule.Path)
			}
			role, err := ParseRole(raw)
			if err != nil {
				return RouteRules{}, fmt.Errorf("role rule %s: %w", rule.Path, err)
			}
			roles = append(roles, role)
		}
		rules.RoleRestricted = append(rules.RoleRestricted, RoleRule{Prefix: rule.Path, Roles: NewRoleSet(roles...)})
	}
	for _, prefix := range cfg.AuthRequired {
		if err := checkPrefix(prefix); err != nil {
			return RouteRules{}, fmt.Errorf("auth rule: %w", err)
		}
		rules.AuthRequired = append(rules.AuthRequired, prefix)
	}
	return rules, nil
}

func checkPrefix(prefix string) error {
	if strings.TrimSpace(prefix) == "" {
		return fmt.Errorf("empty path prefix")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("path prefix %q must start with /", prefix)
	}
	return nil
}

// Classification is the requirement resolved for one path.
type Classification struct {
	Kind  RouteKind
	Roles RoleSet
	// Rule is the matching prefix, or empty when the default policy applied.
	Rule string
}

// RouteClassifier maps request paths to their authentication requirement.
type RouteClassifier struct {
	rules RouteRules
}

// NewRouteClassifier copies rules so later mutation by the caller has no effect.
func NewRouteClassifier(rules RouteRules) *RouteClassifier {
	return &RouteClassifier{rules: RouteRules{
		Public:         append([]string(nil), rules.Public...),
		RoleRestricted: append([]RoleRule(nil), rules.RoleRestricted...),
		AuthRequired:   append([]string(nil), rules.AuthRequired...),
		DefaultAllow:   rules.DefaultAllow,
	}}
}

// Classify resolves path against public, role-restricted and any-role prefixes, in that order.
func (rc *RouteClassifier) Classify(path string) Classification {
	for _, prefix := range rc.rules.Public {
		if strings.HasPrefix(path, prefix) {
			return Classification{Kind: RoutePublic, Rule: prefix}
		}
	}
	for _, rule := range rc.rules.RoleRestricted {
		if strings.HasPrefix(path, rule.Prefix) {
			return Classification{Kind: RouteAuthRequired, Roles: rule.Roles, Rule: rule.Prefix}
		}
	}
	for _, prefix := range rc.rules.AuthRequired {
		if strings.HasPrefix(path, prefix) {
			return Classification{Kind: RouteAuthRequired, Rule: prefix}
		}
	}
	if rc.rules.DefaultAllow {
		return Classification{Kind: RoutePublic}
	}
	return Classification{Kind: RouteAuthRequired}
}
