package security

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrUnauthorized is returned when a webhook call carries no valid credentials
var ErrUnauthorized = errors.New("unauthorized")

// WebhookAuthenticator checks the credentials the dialog platform sends with
// each fulfillment call: HTTP basic auth against a bcrypt hash, or an HS256
// bearer token.
type WebhookAuthenticator struct {
	user         string
	passwordHash []byte
	jwtSecret    []byte
	jwtIssuer    string
}

// NewWebhookAuthenticator creates an authenticator. Empty credentials disable
// the corresponding scheme.
func NewWebhookAuthenticator(user, passwordHash, jwtSecret, jwtIssuer string) *WebhookAuthenticator {
	return &WebhookAuthenticator{
		user:         user,
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
		jwtIssuer:    jwtIssuer,
	}
}

// Enabled reports whether any scheme is configured
func (a *WebhookAuthenticator) Enabled() bool {
	return a.basicEnabled() || a.bearerEnabled()
}

func (a *WebhookAuthenticator) basicEnabled() bool {
	return a.user != "" && len(a.passwordHash) > 0
}

func (a *WebhookAuthenticator) bearerEnabled() bool {
	return len(a.jwtSecret) > 0
}

// Authenticate validates the request credentials
func (a *WebhookAuthenticator) Authenticate(r *http.Request) error {
	if !a.Enabled() {
		return nil
	}

	if user, password, ok := r.BasicAuth(); ok && a.basicEnabled() {
		if subtle.ConstantTimeCompare([]byte(user), []byte(a.user)) != 1 {
			return fmt.Errorf("%w: unknown user", ErrUnauthorized)
		}
		if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
			return fmt.Errorf("%w: bad password", ErrUnauthorized)
		}
		return nil
	}

	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && a.bearerEnabled() {
		return a.verifyToken(strings.TrimSpace(token))
	}

	return fmt.Errorf("%w: missing credentials", ErrUnauthorized)
}

func (a *WebhookAuthenticator) verifyToken(token string) error {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired()}
	if a.jwtIssuer != "" {
		options = append(options, jwt.WithIssuer(a.jwtIssuer))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.jwtSecret, nil
	}, options...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return nil
}
