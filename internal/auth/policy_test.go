package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasRole(t *testing.T) {
	tests := []struct {
		name   string
		claims *Claims
		role   string
		want   bool
	}{
		{"nil claims", nil, "admin", false},
		{"no roles claim", &Claims{}, "admin", false},
		{"match", &Claims{Roles: []string{"reviewer", "admin"}}, "admin", true},
		{"no match", &Claims{Roles: []string{"reviewer"}}, "admin", false},
		{"empty role wanted", &Claims{Roles: []string{"admin"}}, "", false},
		{"case sensitive", &Claims{Roles: []string{"Admin"}}, "admin", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasRole(tt.claims, tt.role))
		})
	}
}

func TestHasScope(t *testing.T) {
	tests := []struct {
		name   string
		claims *Claims
		scope  string
		want   bool
	}{
		{"nil claims", nil, "allowed", false},
		{"empty scope claim", &Claims{}, "allowed", false},
		{"exact member", &Claims{Scope: "openid allowed profile"}, "allowed", true},
		{"single token", &Claims{Scope: "allowed"}, "allowed", true},
		// Substring matches must never count, or "not:allowed" would
		// satisfy a check for "allowed".
		{"substring of a token", &Claims{Scope: "not:allowed"}, "allowed", false},
		{"prefix of a token", &Claims{Scope: "allowedish"}, "allowed", false},
		{"empty scope wanted", &Claims{Scope: "allowed"}, "", false},
		{"extra whitespace", &Claims{Scope: "  openid \t allowed  "}, "allowed", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasScope(tt.claims, tt.scope))
		})
	}
}
