// Package sessioncookie issues and reads the signed web session cookie.
//
// The cookie value is an HS256 JWT whose jti is the server-side session id;
// the API key itself never leaves the server.
package sessioncookie

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/octofit/tracker/internal/services/web/platform/requestmeta"
)

// Name is the web session cookie name.
const Name = "octofit_session"

const issuer = "octofit-web"

// minSecretLen is the shortest accepted HMAC secret in bytes.
const minSecretLen = 32

var (
	// ErrInvalidToken reports a cookie that fails signature or claim checks.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrExpiredToken reports a well-formed cookie past its expiry.
	ErrExpiredToken = errors.New("session token expired")
)

// Codec signs and verifies session cookies.
type Codec struct {
	secret []byte
	policy requestmeta.SchemePolicy
	now    func() time.Time
}

// NewCodec builds a codec signing with secret.
func NewCodec(secret []byte, policy requestmeta.SchemePolicy) (*Codec, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("session secret must be at least %d bytes", minSecretLen)
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Codec{secret: key, policy: policy, now: time.Now}, nil
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

type claims struct {
	jwt.RegisteredClaims
}

// Encode signs sessionID into a token valid until expiresAt.
func (c *Codec) Encode(sessionID string, expiresAt time.Time) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", errors.New("session id is required")
	}
	now := c.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    issuer,
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt.UTC()),
	}})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies token and returns its session id.
func (c *Codec) Decode(token string) (string, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), &parsed, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	sessionID := strings.TrimSpace(parsed.ID)
	if sessionID == "" {
		return "", fmt.Errorf("%w: missing jti", ErrInvalidToken)
	}
	return sessionID, nil
}

// Read returns the verified session id carried by r.
func (c *Codec) Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return "", false
	}
	sessionID, err := c.Decode(cookie.Value)
	if err != nil {
		return "", false
	}
	return sessionID, true
}

// Present reports whether r carries a session cookie, valid or not.
func Present(r *http.Request) bool {
	if r == nil {
		return false
	}
	cookie, err := r.Cookie(Name)
	return err == nil && strings.TrimSpace(cookie.Value) != ""
}

// Write sets the signed cookie for sessionID.
func (c *Codec) Write(w http.ResponseWriter, r *http.Request, sessionID string, expiresAt time.Time) error {
	token, err := c.Encode(sessionID, expiresAt)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt.UTC(),
		HttpOnly: true,
		Secure:   c.policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (c *Codec) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
