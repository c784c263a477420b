// Package session seals the backend-issued access token into a signed
// HttpOnly cookie and verifies it on admin routes. The browser never
// sees the backend token directly; handlers read it back out of the
// request context when calling the API.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fresh-motors-web/internal/config"
	"fresh-motors-web/internal/repository"
)

// minSecretLength is the smallest accepted signing secret. Anything
// shorter makes HS256 brute-forceable offline.
const minSecretLength = 32

var (
	// ErrNoSession indicates the request carries no session cookie.
	ErrNoSession = errors.New("no session")
	// ErrInvalidSession indicates a cookie that is expired, tampered
	// with, or signed with a different secret.
	ErrInvalidSession = errors.New("invalid session")
)

// Session is the verified content of an admin session cookie.
type Session struct {
	UserID       int64
	Email        string
	Name         string
	Role         string
	BackendToken string
	ExpiresAt    time.Time
}

// sessionClaims is the JWT payload stored in the cookie.
type sessionClaims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role"`
	// btk is the backend access token replayed on outgoing API calls.
	BackendToken string `json:"btk"`
}

// Manager signs, sets, verifies and clears session cookies.
type Manager struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool

	// now is replaced in tests to steer expiry.
	now func() time.Time
}

// NewManager validates the signing secret and builds a manager from the
// security policy. secure controls the cookie Secure flag and is off
// only for plain-HTTP development.
func NewManager(secret []byte, cfg *config.SecurityConfig, secure bool) (*Manager, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d bytes, got %d", minSecretLength, len(secret))
	}
	return &Manager{
		secret:     secret,
		cookieName: cfg.GetSessionCookieName(),
		ttl:        time.Duration(cfg.GetSessionTTLHours()) * time.Hour,
		secure:     secure,
		now:        time.Now,
	}, nil
}

// Issue seals the login result into a session cookie on w. The session
// never outlives the backend token: when the backend reports a shorter
// expiry than the configured TTL, the shorter one wins.
func (m *Manager) Issue(w http.ResponseWriter, creds *repository.Credentials) error {
	if creds == nil || creds.User == nil {
		return errors.New("issue session: missing user")
	}

	now := m.now()
	expiry := now.Add(m.ttl)
	if creds.ExpiresIn > 0 {
		if backendExpiry := now.Add(time.Duration(creds.ExpiresIn) * time.Second); backendExpiry.Before(expiry) {
			expiry = backendExpiry
		}
	}

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   creds.User.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
		UserID:       creds.User.ID,
		Name:         creds.User.Name,
		Role:         creds.User.Role,
		BackendToken: creds.AccessToken,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		Expires:  expiry,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie. Logout and broken-session recovery
// both go through here.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Verify reads and validates the session cookie of a request.
func (m *Manager) Verify(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, ErrNoSession
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	return &Session{
		UserID:       claims.UserID,
		Email:        claims.Subject,
		Name:         claims.Name,
		Role:         claims.Role,
		BackendToken: claims.BackendToken,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}
