package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ClientConfig configures the game client.
type ClientConfig struct {
	APIURL         string        `env:"SEAFARER_API_URL" envDefault:"http://localhost:8080"`
	TokenStore     string        `env:"SEAFARER_TOKEN_STORE" envDefault:"file"`
	TokenFile      string        `env:"SEAFARER_TOKEN_FILE"`
	TokenDB        string        `env:"SEAFARER_TOKEN_DB" envDefault:"seafarer-client.db"`
	RedisAddr      string        `env:"SEAFARER_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string        `env:"SEAFARER_REDIS_PASSWORD"`
	RequestTimeout time.Duration `env:"SEAFARER_REQUEST_TIMEOUT" envDefault:"10s"`
}

// ServerConfig configures the save service.
type ServerConfig struct {
	Port              int           `env:"SEAFARER_PORT" envDefault:"8080"`
	DatabaseURL       string        `env:"SEAFARER_DATABASE_URL" envDefault:"sqlite://seafarer.db"`
	AuthProvider      string        `env:"SEAFARER_AUTH_PROVIDER" envDefault:"local"`
	JWTSecret         string        `env:"SEAFARER_JWT_SECRET"`
	TokenTTL          time.Duration `env:"SEAFARER_TOKEN_TTL" envDefault:"168h"`
	FirebaseProjectID string        `env:"SEAFARER_FIREBASE_PROJECT_ID"`
	FirebaseAPIKey    string        `env:"SEAFARER_FIREBASE_API_KEY"`
	AllowOrigin       string        `env:"SEAFARER_ALLOW_ORIGIN" envDefault:"*"`
	LoginRate         float64       `env:"SEAFARER_LOGIN_RATE" envDefault:"1"`
	LoginBurst        int           `env:"SEAFARER_LOGIN_BURST" envDefault:"5"`
	TLSCertFile       string        `env:"SEAFARER_TLS_CERT_FILE"`
	TLSKeyFile        string        `env:"SEAFARER_TLS_KEY_FILE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from the given files into the environment
// without overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// LoadClient reads the client configuration from .env and the environment.
func LoadClient() (*ClientConfig, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg := &ClientConfig{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadServer reads the server configuration from .env and the environment.
func LoadServer() (*ServerConfig, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg := &ServerConfig{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings required by the selected auth provider are present.
func (c *ServerConfig) Validate() error {
	switch c.AuthProvider {
	case "local":
		if c.JWTSecret == "" {
			return fmt.Errorf("SEAFARER_JWT_SECRET must be set for the local auth provider")
		}
	case "firebase":
		if c.FirebaseProjectID == "" || c.FirebaseAPIKey == "" {
			return fmt.Errorf("SEAFARER_FIREBASE_PROJECT_ID and SEAFARER_FIREBASE_API_KEY must be set for the firebase auth provider")
		}
	default:
		return fmt.Errorf("unknown auth provider: %s", c.AuthProvider)
	}
	return nil
}
