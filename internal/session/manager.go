package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const CookieName = "tb_session"

// Manager issues and resolves signed session cookies backed by a Store.
// The cookie value is "<id>.<hmac>"; a value whose signature does not
// verify is treated the same as an absent session.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: []byte(secret), ttl: ttl}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Open creates a session for the applicant and returns the signed
// cookie value.
func (m *Manager) Open(ctx context.Context, applicantID uint) (string, error) {
	id := uuid.NewString()
	rec := Record{Applicant: ApplicantRef{ID: applicantID}}
	if err := m.store.Create(ctx, id, rec, m.ttl); err != nil {
		return "", fmt.Errorf("session: create: %w", err)
	}
	return id + "." + m.sign(id), nil
}

// Resolve maps a cookie value back to an applicant id. The boolean is
// false for any non-resolving value: bad format, bad signature, expired
// or unknown session, empty payload. Only store I/O failures return an
// error.
func (m *Manager) Resolve(ctx context.Context, cookieValue string) (uint, bool, error) {
	id, sig, found := strings.Cut(cookieValue, ".")
	if !found || id == "" {
		return 0, false, nil
	}
	if !hmac.Equal([]byte(sig), []byte(m.sign(id))) {
		return 0, false, nil
	}

	rec, err := m.store.Get(ctx, id)
	if err != nil {
		return 0, false, err
	}
	if rec == nil || rec.Applicant.ID == 0 {
		return 0, false, nil
	}
	return rec.Applicant.ID, true, nil
}

func (m *Manager) sign(id string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
