package config

import (
	"errors"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-this-in-production"

type JWTConfig struct {
	Secret     []byte
	Expiration time.Duration
	Issuer     string
}

func loadJWT() JWTConfig {
	return JWTConfig{
		Secret:     []byte(getEnv("JWT_SECRET", defaultJWTSecret)),
		Expiration: getDurationEnv("JWT_EXPIRATION", 7*24*time.Hour),
		Issuer:     getEnv("JWT_ISSUER", "wildlife-api"),
	}
}

func (c JWTConfig) validate(env string) error {
	if len(c.Secret) == 0 {
		return errors.New("JWT_SECRET is required")
	}
	if env == "production" && string(c.Secret) == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.Expiration <= 0 {
		return errors.New("JWT_EXPIRATION must be positive")
	}
	return nil
}
