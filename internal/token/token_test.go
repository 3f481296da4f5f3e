package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(sessionTTL, resetTTL time.Duration) *Issuer {
	return NewIssuer("test-secret", sessionTTL, resetTTL)
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer(time.Hour, time.Hour)
	signed, exp, err := iss.Session("adminuser", 42, 2)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), exp, 5*time.Second)

	claims, err := iss.ParseSession(signed)
	require.NoError(t, err)
	assert.Equal(t, "adminuser", claims.Subject)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, uint64(2), claims.RoleID)
}

func TestParseSessionExpired(t *testing.T) {
	t.Parallel()

	// A token that was perfectly valid at issuance is rejected once its
	// expiry has passed.
	iss := newTestIssuer(-time.Second, time.Hour)
	signed, _, err := iss.Session("u", 1, 3)
	require.NoError(t, err)

	_, err = iss.ParseSession(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestParseSessionWrongSecret(t *testing.T) {
	t.Parallel()

	signed, _, err := NewIssuer("right-secret", time.Hour, time.Hour).Session("u", 1, 1)
	require.NoError(t, err)

	_, err = NewIssuer("wrong-secret", time.Hour, time.Hour).ParseSession(signed)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseSessionMalformed(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer(time.Hour, time.Hour)
	for _, raw := range []string{"", "not.a.jwt", "a.b"} {
		_, err := iss.ParseSession(raw)
		assert.ErrorIs(t, err, ErrInvalid, "raw=%q", raw)
	}
}

func TestResetRoundTrip(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer(time.Hour, time.Hour)
	signed, _, err := iss.Reset("User@Example.com")
	require.NoError(t, err)

	claims, err := iss.ParseReset(signed)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, PurposeReset, claims.Purpose)
}

func TestResetExpired(t *testing.T) {
	t.Parallel()

	// Equivalent of presenting a reset token one second after its
	// one-hour lifetime ran out.
	iss := newTestIssuer(time.Hour, -time.Second)
	signed, _, err := iss.Reset("a@x.com")
	require.NoError(t, err)

	_, err = iss.ParseReset(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestTokenPurposesAreNotInterchangeable(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer(time.Hour, time.Hour)

	// A reset token must never pass the session validation path even
	// though it carries a valid signature from the same secret.
	reset, _, err := iss.Reset("a@x.com")
	require.NoError(t, err)
	_, err = iss.ParseSession(reset)
	assert.ErrorIs(t, err, ErrInvalid)

	// And a session token is useless for resetting a password.
	session, _, err := iss.Session("u", 1, 1)
	require.NoError(t, err)
	_, err = iss.ParseReset(session)
	assert.ErrorIs(t, err, ErrInvalid)
}
