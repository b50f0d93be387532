package userservice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSession = errors.New("invalid or missing authentication token")
)

// SessionVerifier validates HS256 session tokens minted by the identity provider.
type SessionVerifier struct {
	secret []byte
	issuer string
}

func NewSessionVerifier(secret, issuer string) *SessionVerifier {
	return &SessionVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *SessionVerifier) Verify(token string) (*SessionClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" || len(v.secret) == 0 {
		return nil, ErrInvalidSession
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}

	if claims.Subject == "" {
		return nil, ErrInvalidSession
	}

	return claims, nil
}

// Sign mints a token for claims with the verifier's secret. Used by local tooling and tests.
func (v *SessionVerifier) Sign(claims *SessionClaims) (string, error) {
	if claims.Issuer == "" {
		claims.Issuer = v.issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
