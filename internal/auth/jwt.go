package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Mode is the system-wide auth toggle, resolved once at startup.
// Disabled means no signing secret is configured and every token check
// is bypassed.
type Mode int

const (
	ModeDisabled Mode = iota
	ModeEnabled
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService issues and verifies HS256 bearer tokens carrying a subject
// (the username) and an absolute expiry. Access and refresh tokens use the
// same shape with different TTLs.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	mode       Mode
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	mode := ModeEnabled
	if secret == "" {
		mode = ModeDisabled
	}

	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		mode:       mode,
	}
}

func (s *TokenService) Mode() Mode {
	return s.mode
}

func (s *TokenService) IssueAccessToken(subject string) (string, error) {
	return s.issue(subject, s.accessTTL)
}

func (s *TokenService) IssueRefreshToken(subject string) (string, error) {
	return s.issue(subject, s.refreshTTL)
}

func (s *TokenService) issue(subject string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates signature and expiry and returns the embedded subject.
// Any failure (tampered, expired, malformed, empty) yields ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})

	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)

	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
