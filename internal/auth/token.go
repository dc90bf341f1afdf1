package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrTokenExpired means the token was well-formed and correctly signed
	// but its exp claim is in the past.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid covers everything else: malformed tokens, bad
	// signatures, wrong algorithms, missing claims.
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenService issues and verifies HS256-signed bearer tokens carrying a
// subject and an absolute expiry. Tokens are stateless; the server keeps no
// session table, so a token cannot be revoked before it expires short of
// rotating the secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue signs a token for the subject, expiring ttl from now.
func (s *TokenService) Issue(subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature and expiry and returns the subject. Expiry is
// compared against the current wall clock with no skew allowance.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrTokenInvalid
	}
	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", ErrTokenInvalid
	}
	return subject, nil
}
