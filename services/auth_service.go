// Package services: services/auth_service.go
package services

import (
	"errors"

	"go-holo-council/logger"
	"go-holo-council/store"

	"go-holo-council/models"
)

// ErrBadCredentials is the single authentication rejection: unknown
// username or wrong access code, indistinguishable to the caller.
var ErrBadCredentials = errors.New("invalid operator name or access code")

// Identity is the authenticated result: who the operator is and whether
// they hold the reserved privileged identity.
type Identity struct {
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	IsPrivileged bool   `json:"isAdmin"`
}

// AuthService checks credentials against the synced Operator Directory.
type AuthService struct {
	store *store.Store
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(st *store.Store) *AuthService {
	return &AuthService{store: st}
}

// Authenticate succeeds iff the directory contains the username
// (case-insensitive, trimmed) with exactly the given code. The access code
// is an exact string match, not a password hash: the directory lives inside
// the replicated document and the admin console edits it in plain text.
func (s *AuthService) Authenticate(username, code string) (Identity, error) {
	key := normalizeUsername(username)
	doc := s.store.Snapshot()

	expected, ok := doc.Operators[key]
	if !ok || expected != code {
		logger.Warn.Printf("[auth] Failed login attempt for %q", key)
		return Identity{}, ErrBadCredentials
	}

	identity := Identity{
		Username:     key,
		DisplayName:  doc.DisplayNames[key],
		IsPrivileged: key == models.AdminUsername,
	}
	if identity.DisplayName == "" {
		identity.DisplayName = key
	}
	logger.Info.Printf("[auth] Operator %s authenticated (admin=%v)", key, identity.IsPrivileged)
	return identity, nil
}
