// Package token issues and validates the signed artifacts the service
// hands out: short-lived session tokens for authenticated calls and
// single-purpose reset tokens for the password-reset flow. Both are
// HS256 JWTs signed with the same server secret but they are not
// interchangeable: reset tokens carry a purpose claim that the session
// parser rejects, and session tokens lack it so the reset parser
// rejects them in turn.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PurposeReset is the purpose claim value stamped on reset tokens.
const PurposeReset = "password_reset"

var (
	// ErrExpired marks a token whose exp claim has passed. Callers
	// surface the same unauthorized outcome as for ErrInvalid; the
	// distinction exists for logs and tests.
	ErrExpired = errors.New("token expired")
	// ErrInvalid covers bad signatures, malformed payloads and tokens
	// presented to the wrong validation path.
	ErrInvalid = errors.New("token invalid")
)

// SessionClaims is the payload embedded in a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID uint64 `json:"uid"`
	RoleID uint64 `json:"role_id"`
	// Purpose stays empty on session tokens; a non-empty value means
	// the token was minted for something else and must be rejected.
	Purpose string `json:"purpose,omitempty"`
}

// ResetClaims is the payload embedded in a password-reset token. It
// deliberately carries no role: a reset token proves only that the
// holder received mail sent to the embedded address.
type ResetClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

// Issuer signs and verifies tokens with a process-wide secret fixed at
// construction. It holds no mutable state and is safe for concurrent use.
type Issuer struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
}

// NewIssuer builds an Issuer from the configured secret and TTLs.
func NewIssuer(secret string, sessionTTL, resetTTL time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), sessionTTL: sessionTTL, resetTTL: resetTTL}
}

// Session signs a session token for the given user. The subject claim
// holds the username, uid the numeric id and role_id the user's role.
func (i *Issuer) Session(username string, userID, roleID uint64) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(i.sessionTTL)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID: userID,
		RoleID: roleID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseSession verifies signature and expiry and returns the claims.
// Tokens signed with a non-HMAC method, malformed tokens and reset
// tokens all fail with ErrInvalid; past-expiry tokens fail with
// ErrExpired regardless of how valid they were at issuance.
func (i *Issuer) ParseSession(raw string) (SessionClaims, error) {
	var claims SessionClaims
	if err := i.parse(raw, &claims); err != nil {
		return SessionClaims{}, err
	}
	if claims.Purpose != "" {
		return SessionClaims{}, ErrInvalid
	}
	return claims, nil
}

// Reset signs a single-purpose reset token bound to the given email.
func (i *Issuer) Reset(email string) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(i.resetTTL)
	claims := ResetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email:   strings.ToLower(strings.TrimSpace(email)),
		Purpose: PurposeReset,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseReset verifies a reset token. Session tokens fail here because
// they lack the reset purpose claim.
func (i *Issuer) ParseReset(raw string) (ResetClaims, error) {
	var claims ResetClaims
	if err := i.parse(raw, &claims); err != nil {
		return ResetClaims{}, err
	}
	if claims.Purpose != PurposeReset {
		return ResetClaims{}, ErrInvalid
	}
	return claims, nil
}

// parse runs the shared verification: HMAC method, signature, expiry.
func (i *Issuer) parse(raw string, claims jwt.Claims) error {
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpired
		}
		return ErrInvalid
	}
	if !tok.Valid {
		return ErrInvalid
	}
	return nil
}
