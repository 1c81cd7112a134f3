package authenticator

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTProvider implements the TokenProvider interface with HMAC-signed JWTs
type JWTProvider struct {
	secret []byte
	ttl    time.Duration
}

// JWTConfig holds JWT provider configuration
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// DefaultTokenTTL matches the original 30-day token lifetime
const DefaultTokenTTL = 30 * 24 * time.Hour

type jwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTProvider creates a new JWT token provider with the given configuration
func NewJWTProvider(cfg JWTConfig) (TokenProvider, error) {
	if cfg.Secret == "" {
		return nil, errors.New("JWT secret is required")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &JWTProvider{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
	}, nil
}

// IssueToken signs a new token for the given user
func (p *JWTProvider) IssueToken(userID, role string) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken validates a token's signature and expiry and returns its claims
func (p *JWTProvider) VerifyToken(tokenString string) (*Claims, error) {
	var claims jwtClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" {
		return nil, errors.New("token carries no user id")
	}

	return &Claims{
		UserID: claims.UserID,
		Role:   claims.Role,
	}, nil
}
