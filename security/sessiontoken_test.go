package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSessionID = "0d8ab3fa-7c62-4b1e-9b0f-2a4c6e8d0f12"
	testUserID    = "5f1e2d3c-4b5a-6978-8899-aabbccddeeff"
)

func TestIssueAndVerify(t *testing.T) {
	s := NewSessionTokenStore()

	token, err := s.Issue(testSessionID, testUserID)
	require.NoError(t, err)
	assert.Len(t, token, 64)

	assert.NoError(t, s.Verify(testSessionID, token, testUserID))
	assert.NoError(t, s.Verify(testSessionID, token, ""))

	// Re-issuing for the same session and user returns the live token.
	again, err := s.Issue(testSessionID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, token, again)
}

func TestIssueRequiresSessionID(t *testing.T) {
	s := NewSessionTokenStore()
	_, err := s.Issue("", testUserID)
	assert.Error(t, err)
}

func TestVerifyRejections(t *testing.T) {
	s := NewSessionTokenStore()
	token, err := s.Issue(testSessionID, testUserID)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Verify("unknown-session", token, testUserID), ErrUnknownSession)
	assert.ErrorIs(t, s.Verify(testSessionID, "forged", testUserID), ErrTokenMismatch)
	assert.ErrorIs(t, s.Verify(testSessionID, token, "someone-else"), ErrUserMismatch)
}

func TestVerifyExpiry(t *testing.T) {
	s := NewSessionTokenStore()
	base := time.Now()
	s.now = func() time.Time { return base }

	token, err := s.Issue(testSessionID, testUserID)
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(59 * time.Minute) }
	assert.NoError(t, s.Verify(testSessionID, token, testUserID))

	s.now = func() time.Time { return base.Add(61 * time.Minute) }
	assert.ErrorIs(t, s.Verify(testSessionID, token, testUserID), ErrTokenExpired)

	// Expired sessions are evicted; a second verify no longer finds one.
	assert.ErrorIs(t, s.Verify(testSessionID, token, testUserID), ErrUnknownSession)

	// A fresh issue mints a new token.
	fresh, err := s.Issue(testSessionID, testUserID)
	require.NoError(t, err)
	assert.NotEqual(t, token, fresh)
	assert.NoError(t, s.Verify(testSessionID, fresh, testUserID))
}

func TestIssueRotatesForDifferentUser(t *testing.T) {
	s := NewSessionTokenStore()

	token, err := s.Issue(testSessionID, testUserID)
	require.NoError(t, err)

	other, err := s.Issue(testSessionID, "5f1e2d3c-4b5a-6978-8899-000000000000")
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	// The old token no longer verifies for the original user.
	assert.Error(t, s.Verify(testSessionID, token, testUserID))
}

func TestInvalidate(t *testing.T) {
	s := NewSessionTokenStore()
	token, err := s.Issue(testSessionID, testUserID)
	require.NoError(t, err)

	s.Invalidate(testSessionID)
	assert.ErrorIs(t, s.Verify(testSessionID, token, testUserID), ErrUnknownSession)
}
