package auth

import "strings"

// HasRole reports whether the roles claim contains role. Missing or
// malformed claims are treated as access denied, never as an error.
func HasRole(claims *Claims, role string) bool {
	if claims == nil || role == "" {
		return false
	}
	for _, r := range claims.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasScope reports whether the space-delimited scope claim contains
// scope as an exact token. Substring matches never count: a token
// granting "not:allowed" does not satisfy a check for "allowed".
func HasScope(claims *Claims, scope string) bool {
	if claims == nil || scope == "" {
		return false
	}
	for _, s := range strings.Fields(claims.Scope) {
		if s == scope {
			return true
		}
	}
	return false
}
