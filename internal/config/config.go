package config

import "github.com/joho/godotenv"

type Config interface {
	EnvConfig
	CorsConfig
	AuthConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetDatabaseURL() string
	GetSeedAdminEmail() string
	GetSeedAdminPassword() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Auth
}

func New() Config {
	// A missing .env file is fine, the environment may already be populated.
	_ = godotenv.Load()
	return mainConfig{}
}
