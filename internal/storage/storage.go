// Package storage signs time-limited object-storage credentials for
// upload and download and removes stored objects. No object bytes ever
// pass through this process.
package storage

import (
	"context"
	"time"
)

// PresignedPost is a POST policy document the client submits as a
// multipart form to the storage endpoint.
type PresignedPost struct {
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields"`
}

// ObjectStore abstracts the object-storage operations the upload
// lifecycle needs.
type ObjectStore interface {
	SignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	SignPost(ctx context.Context, key, contentType string, ttl time.Duration) (*PresignedPost, error)
	SignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	// DeletePrefix removes every object under prefix. Best-effort in the
	// sense that it stops at the first storage error and reports it.
	DeletePrefix(ctx context.Context, prefix string) error
}
