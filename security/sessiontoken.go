package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	mrand "math/rand"
	"sync"
	"time"
)

const sessionTokenTTL = time.Hour

var (
	ErrUnknownSession = errors.New("unknown session")
	ErrTokenExpired   = errors.New("session token expired")
	ErrTokenMismatch  = errors.New("session token mismatch")
	ErrUserMismatch   = errors.New("session token issued to a different user")
)

type sessionToken struct {
	token     string
	userID    string
	expiresAt time.Time
}

// SessionTokenStore issues and verifies the short-lived per-session
// tokens required on every mutating call. Construct one per service
// instance and inject it; there is no package-level store.
type SessionTokenStore struct {
	mu       sync.Mutex
	sessions map[string]sessionToken
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionTokenStore() *SessionTokenStore {
	return &SessionTokenStore{
		sessions: make(map[string]sessionToken),
		ttl:      sessionTokenTTL,
		now:      time.Now,
	}
}

// Issue returns the session's current token, minting a fresh one if none
// exists or the old one expired. Tokens are opaque 32-byte random values,
// hex encoded.
func (s *SessionTokenStore) Issue(sessionID, userID string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("sessionId is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Occasional sweep keeps memory bounded without a background ticker.
	if mrand.Intn(100) == 0 {
		s.sweepLocked()
	}

	if existing, ok := s.sessions[sessionID]; ok && s.now().Before(existing.expiresAt) && existing.userID == userID {
		return existing.token, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	s.sessions[sessionID] = sessionToken{
		token:     token,
		userID:    userID,
		expiresAt: s.now().Add(s.ttl),
	}
	return token, nil
}

// Verify checks existence, expiry, token equality and, when userID is
// given, the user match.
func (s *SessionTokenStore) Verify(sessionID, token, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[sessionID]
	if !ok {
		return ErrUnknownSession
	}
	if !s.now().Before(existing.expiresAt) {
		delete(s.sessions, sessionID)
		return ErrTokenExpired
	}
	if existing.token != token {
		return ErrTokenMismatch
	}
	if userID != "" && existing.userID != userID {
		return ErrUserMismatch
	}
	return nil
}

// Invalidate removes the session's token.
func (s *SessionTokenStore) Invalidate(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *SessionTokenStore) sweepLocked() {
	now := s.now()
	for id, tok := range s.sessions {
		if !now.Before(tok.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
