// Package config loads runtime settings from configs/config.yml and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	CodecJWT          = "jwt"
	CodecSecureCookie = "securecookie"
)

// bcrypt accepts costs in [4, 31].
const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// ErrMissingSessionSecret is returned by Load when SESSION_SECRET is not set.
var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set")

type Config struct {
	Port               string
	Env                string
	LogLevel           string
	BcryptCost         int
	CORSAllowedOrigins []string
	DB                 DBConfig
	Session            SessionConfig
}

type DBConfig struct {
	Driver          string
	Path            string // sqlite file
	DSN             string // postgres connection string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type SessionConfig struct {
	Secret        string
	EncryptionKey string
	Codec         string
	TTL           time.Duration
}

// Production reports whether secure cookies and release mode should be used.
func (c *Config) Production() bool {
	return c.Env == EnvProduction
}

// Load reads configuration from the optional config.yml found in paths, the environment
// and an optional .env.local file. It fails when required settings are missing.
func Load(paths ...string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:               v.GetString("port"),
		Env:                strings.ToLower(strings.TrimSpace(v.GetString("env"))),
		LogLevel:           v.GetString("log.level"),
		BcryptCost:         v.GetInt("auth.bcrypt_cost"),
		CORSAllowedOrigins: splitList(v.GetStringSlice("cors.allowed_origins")),
		DB: DBConfig{
			Driver:          strings.ToLower(v.GetString("db.driver")),
			Path:            v.GetString("db.path"),
			DSN:             v.GetString("db.dsn"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		},
		Session: SessionConfig{
			Secret:        v.GetString("session.secret"),
			EncryptionKey: v.GetString("session.encryption_key"),
			Codec:         strings.ToLower(v.GetString("session.codec")),
			TTL:           v.GetDuration("session.ttl"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("log.level", "info")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", "taskmate.db")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("session.codec", CodecJWT)
	v.SetDefault("session.ttl", 30*24*time.Hour)
}

// bindEnv maps the documented environment variables onto config keys.
func bindEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"port":                   {"PORT"},
		"env":                    {"NODE_ENV", "APP_ENV"},
		"log.level":              {"LOG_LEVEL"},
		"auth.bcrypt_cost":       {"BCRYPT_COST"},
		"cors.allowed_origins":   {"CORS_ALLOWED_ORIGINS"},
		"db.driver":              {"DB_DRIVER"},
		"db.path":                {"DB_PATH"},
		"db.dsn":                 {"DATABASE_URL"},
		"session.secret":         {"SESSION_SECRET"},
		"session.encryption_key": {"SESSION_ENCRYPTION_KEY"},
		"session.codec":          {"SESSION_CODEC"},
		"session.ttl":            {"SESSION_TTL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}

// Validate checks required settings and value ranges.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return ErrMissingSessionSecret
	}
	switch c.Session.Codec {
	case CodecJWT, CodecSecureCookie:
	default:
		return fmt.Errorf("unsupported session codec %q (want %s or %s)", c.Session.Codec, CodecJWT, CodecSecureCookie)
	}
	if c.Session.EncryptionKey != "" {
		switch len(c.Session.EncryptionKey) {
		case 16, 24, 32:
		default:
			return fmt.Errorf("SESSION_ENCRYPTION_KEY must be 16, 24 or 32 bytes, got %d", len(c.Session.EncryptionKey))
		}
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.Session.TTL)
	}
	if c.BcryptCost < minBcryptCost || c.BcryptCost > maxBcryptCost {
		return fmt.Errorf("bcrypt cost must be within [%d, %d], got %d", minBcryptCost, maxBcryptCost, c.BcryptCost)
	}
	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.Path == "" {
			return errors.New("db.path is required for sqlite")
		}
	case DriverPostgres:
		if c.DB.DSN == "" {
			return errors.New("DATABASE_URL is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	return nil
}

// loadEnvFile loads .env.local from the working directory or its parent, if present.
func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}
	cwd, err := os.Getwd()
	if err != nil {
		return
	}
	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}
	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// splitList flattens comma separated entries, as env vars arrive as a single string.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
