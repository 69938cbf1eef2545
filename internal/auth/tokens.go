package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"AnimeTrackserver/internal/domain"
)

// Identity is the canonical caller identity derived from a verified token.
type Identity struct {
	UserID string
	Email  string
}

// TokenCodec signs and verifies HS256 bearer tokens. The subject claim is
// written as "_id"; verification accepts "_id" or "id" for compatibility with
// tokens issued by older clients.
type TokenCodec struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenCodec{Secret: secret, TTL: ttl}
}

func (c *TokenCodec) Issue(userID, email string) (string, error) {
	now := c.now()
	claims := jwt.MapClaims{
		"_id":   userID,
		"email": email,
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(c.TTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (c *TokenCodec) Verify(tokenString string) (Identity, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.Secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !token.Valid {
		return Identity{}, domain.ErrUnauthorized
	}

	userID := stringClaim(claims, "_id")
	if userID == "" {
		userID = stringClaim(claims, "id")
	}
	if userID == "" {
		return Identity{}, domain.ErrUnauthorized
	}

	return Identity{UserID: userID, Email: stringClaim(claims, "email")}, nil
}

func (c *TokenCodec) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, ok := claims[key].(string)
	if !ok {
		return ""
	}
	return v
}
