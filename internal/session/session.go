// Package session persists server-side session records keyed by a
// signed cookie value. A record carries nothing but the applicant id;
// expiry is enforced by the store's TTL, sessions are never explicitly
// invalidated.
package session

import (
	"context"
	"time"
)

// ApplicantRef is the entire session payload.
type ApplicantRef struct {
	ID uint `json:"id"`
}

type Record struct {
	Applicant ApplicantRef `json:"applicant"`
}

// Store is the server-side session backend.
type Store interface {
	Create(ctx context.Context, id string, rec Record, ttl time.Duration) error
	// Get returns (nil, nil) when the session does not exist or has expired.
	Get(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
}
