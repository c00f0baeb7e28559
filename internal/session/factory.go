package session

import (
	"fmt"

	"taskmate/internal/config"
)

// NewCodec builds the codec selected by cfg.Codec.
func NewCodec(cfg config.SessionConfig) (Codec, error) {
	switch cfg.Codec {
	case config.CodecJWT, "":
		c, err := NewJWTCodec(cfg.Secret, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.CodecSecureCookie:
		c, err := NewSecureCookieCodec(CookieName, cfg.Secret, cfg.EncryptionKey, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported session codec %q", cfg.Codec)
	}
}
