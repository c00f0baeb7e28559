package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// claims is the JWT body: registered claims plus the user id.
type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// JWTCodec issues HS256 tokens with an embedded expiry.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTCodec(secret string, ttl time.Duration) (*JWTCodec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWTCodec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (c *JWTCodec) Issue(p Payload) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: p.UserID,
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (c *JWTCodec) Parse(tokenString string) Payload {
	if tokenString == "" {
		return Payload{}
	}
	var cl claims
	token, err := jwt.ParseWithClaims(tokenString, &cl,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return Payload{}
	}
	return Payload{UserID: cl.UserID}
}
