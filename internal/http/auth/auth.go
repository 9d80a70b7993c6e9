// Package auth guards the API with HS256 bearer tokens.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/pedidos/internal/http/render"
)

var signingMethod = jwt.SigningMethodHS256

var ErrMissingToken = errors.New("missing bearer token")

type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier returns nil when secret is empty, which disables authentication.
func NewVerifier(secret, issuer string) *Verifier {
	if strings.TrimSpace(secret) == "" {
		return nil
	}

	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Issue signs a token for subject, valid for ttl. Tokens are minted by cmd/token.
func (v *Verifier) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    v.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token, err := jwt.NewWithClaims(signingMethod, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return token, nil
}

func (v *Verifier) Verify(token string) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("verifying token: %w", err)
	}

	return claims, nil
}

// Middleware rejects requests without a valid "Authorization: Bearer" token.
// A nil Verifier lets every request through.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	if v == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")

		if _, err := v.Verify(strings.TrimSpace(raw)); err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="pedidos"`)
			render.Error(w, http.StatusUnauthorized, "unauthorized")

			return
		}

		next.ServeHTTP(w, r)
	})
}
