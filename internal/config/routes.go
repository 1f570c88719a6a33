package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Route default policies.
const (
	RouteDefaultDeny  = "deny"
	RouteDefaultAllow = "allow"
)

// RoleRouteConfig maps a path prefix to the roles allowed to use it.
type RoleRouteConfig struct {
	Path  string   `yaml:"path"`
	Roles []string `yaml:"roles"`
}

// RouteRulesConfig is the raw, ordered route rule table. Order inside each list is significant.
type RouteRulesConfig struct {
	Public       []string          `yaml:"public"`
	RoleBased    []RoleRouteConfig `yaml:"role_based"`
	AuthRequired []string          `yaml:"auth_required"`
	Default      string            `yaml:"default"`
}

// DefaultRouteRules returns the built-in rule table.
func DefaultRouteRules() RouteRulesConfig {
	return RouteRulesConfig{
		Public: []string{
			"/health",
			"/metrics",
			"/api/test",
			"/api/auth/login",
			"/api/auth/register",
			"/api/auth/signup",
			"/api/auth/refresh",
		},
		RoleBased: []RoleRouteConfig{
			{Path: "/api/admin", Roles: []string{"admin"}},
		},
		AuthRequired: []string{
			"/api/users",
			"/api/projects",
			"/api/bookings",
			"/api/payments",
			"/api/reviews",
			"/api/refund",
			"/api/auth/me",
			"/api/auth/logout",
			"/api/auth/password",
		},
		Default: RouteDefaultDeny,
	}
}

// LoadRouteRules reads a YAML rule file. Omitted sections stay empty; an omitted default denies.
func LoadRouteRules(path string) (RouteRulesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RouteRulesConfig{}, fmt.Errorf("read route rules: %w", err)
	}

	var rules RouteRulesConfig
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RouteRulesConfig{}, fmt.Errorf("unmarshal route rules: %w", err)
	}
	if rules.Default == "" {
		rules.Default = RouteDefaultDeny
	}
	if err := rules.validateDefault(); err != nil {
		return RouteRulesConfig{}, err
	}
	return rules, nil
}

func (r RouteRulesConfig) validateDefault() error {
	switch r.Default {
	case RouteDefaultDeny, RouteDefaultAllow:
		return nil
	default:
		return fmt.Errorf("invalid route default %q: want %q or %q", r.Default, RouteDefaultDeny, RouteDefaultAllow)
	}
}
