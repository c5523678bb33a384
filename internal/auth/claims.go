// Package auth verifies bearer credentials and evaluates role and scope
// claims. Nothing in this package touches the database.
package auth

import "github.com/golang-jwt/jwt/v5"

// ClaimNamespace prefixes the custom claims our identity provider adds
// to access tokens.
const ClaimNamespace = "https://talentbridge.io/"

// Claims is the verified claim set of a bearer token. It exists only
// for the duration of a request and is never persisted.
type Claims struct {
	jwt.RegisteredClaims
	Email string   `json:"https://talentbridge.io/email,omitempty"`
	Roles []string `json:"https://talentbridge.io/roles,omitempty"`
	Scope string   `json:"scope,omitempty"`
}

// Identity is the request-scoped result of credential resolution.
// ApplicantID is zero until the caller has been matched to an applicant
// row; Registered distinguishes "matched" from "valid credentials, no
// applicant yet".
type Identity struct {
	Claims      *Claims // nil when resolved from a session cookie
	ApplicantID uint
	Registered  bool
}
