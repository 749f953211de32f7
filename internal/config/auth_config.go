package config

import (
	"strconv"
	"time"
)

type AuthConfig interface {
	GetIssuer() string
	GetAudience() string
	GetTokenTTL() time.Duration
	GetKeysDirectory() string
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetIssuer() string {
	return GetEnv("JWT_ISSUER", "ProjectPulse")
}

func (Auth) GetAudience() string {
	return GetEnv("JWT_AUDIENCE", "ProjectPulse")
}

// GetTokenTTL returns the access token validity window, default 24 hours.
func (Auth) GetTokenTTL() time.Duration {
	hours, err := strconv.Atoi(GetEnv("JWT_EXPIRY_HOURS", "24"))
	if err != nil || hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

func (Auth) GetKeysDirectory() string {
	return GetEnv("KEYS_DIR", "./keys")
}
