package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var _ AuthProvider = &JWTAuthProvider{}

// ErrInvalidToken is returned for tokens that are malformed, expired or signed with another key.
var ErrInvalidToken = errors.New("invalid token")

const jwtIssuer = "seafarer"

// JWTAuthProvider issues and verifies HS256 tokens for locally registered users.
type JWTAuthProvider struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type jwtClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTAuthProvider creates a provider signing with secret. A ttl of zero issues tokens that never expire.
func NewJWTAuthProvider(secret string, ttl time.Duration) *JWTAuthProvider {
	return &JWTAuthProvider{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// IssueToken signs a token for the given user.
func (p *JWTAuthProvider) IssueToken(uid string, email string) (string, error) {
	if strings.TrimSpace(uid) == "" {
		return "", fmt.Errorf("user id required")
	}
	now := p.now()
	claims := jwtClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   jwtIssuer,
			Subject:  uid,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if p.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(p.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %v", err)
	}
	return signed, nil
}

// VerifyToken verifies a token issued by IssueToken
func (p *JWTAuthProvider) VerifyToken(ctx context.Context, idToken string) (*TokenClaims, error) {
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(idToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithIssuer(jwtIssuer), jwt.WithTimeFunc(p.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{
		UID:   claims.Subject,
		Email: claims.Email,
	}, nil
}
