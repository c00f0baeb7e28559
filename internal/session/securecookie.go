package session

import (
	"fmt"
	"time"

	"github.com/gorilla/securecookie"
)

// SecureCookieCodec signs payloads with HMAC-SHA256 and, when a block key is
// configured, encrypts them with AES before signing.
type SecureCookieCodec struct {
	name string
	sc   *securecookie.SecureCookie
}

// NewSecureCookieCodec builds a codec bound to the cookie name. blockKey is optional
// and must be 16, 24 or 32 bytes when set.
func NewSecureCookieCodec(name, hashKey, blockKey string, ttl time.Duration) (*SecureCookieCodec, error) {
	if hashKey == "" {
		return nil, ErrEmptySecret
	}
	var block []byte
	if blockKey != "" {
		switch len(blockKey) {
		case 16, 24, 32:
			block = []byte(blockKey)
		default:
			return nil, fmt.Errorf("session encryption key must be 16, 24 or 32 bytes, got %d", len(blockKey))
		}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	sc := securecookie.New([]byte(hashKey), block)
	sc.MaxAge(int(ttl.Seconds()))
	sc.SetSerializer(securecookie.JSONEncoder{})
	return &SecureCookieCodec{name: name, sc: sc}, nil
}

func (c *SecureCookieCodec) Issue(p Payload) (string, error) {
	token, err := c.sc.Encode(c.name, p)
	if err != nil {
		return "", fmt.Errorf("encode session cookie: %w", err)
	}
	return token, nil
}

func (c *SecureCookieCodec) Parse(token string) Payload {
	if token == "" {
		return Payload{}
	}
	var p Payload
	if err := c.sc.Decode(c.name, token, &p); err != nil {
		return Payload{}
	}
	return p
}
