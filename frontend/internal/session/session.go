// Package session gives every browser a stable anonymous id, carried in a
// signed cookie. The id keys per-visitor state such as the status message.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mergington/activities/shared/logger"
)

const CookieName = "session"

type contextKey struct{}

type Manager struct {
	secret        []byte
	ttl           time.Duration
	secureCookies bool
}

func New(secret string, ttl time.Duration, secureCookies bool) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	return &Manager{secret: []byte(secret), ttl: ttl, secureCookies: secureCookies}, nil
}

// NewToken signs a fresh session id.
func (m *Manager) NewToken() (id string, token string, err error) {
	id = uuid.NewString()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", "", fmt.Errorf("signing session token: %w", err)
	}
	return id, token, nil
}

// Decode verifies token and returns the session id it carries.
func (m *Manager) Decode(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	return claims.ID, nil
}

// Middleware puts the session id into the request context, issuing a new
// cookie when the request has none or an invalid one.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(CookieName); err == nil {
			if id, err := m.Decode(cookie.Value); err == nil {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, id)))
				return
			}
		}

		id, token, err := m.NewToken()
		if err != nil {
			logger.Log.Error("failed to issue session", "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			Secure:   m.secureCookies,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(m.ttl.Seconds()),
		})
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, id)))
	})
}

// FromContext returns the session id set by Middleware, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
