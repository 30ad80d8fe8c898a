package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config interface {
	EnvConfig
	OAuthConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
	GetCredentialStore() string
}

type mainConfig struct {
	EnvVars
	OAuth
	Security
}

// New reads the configuration from the environment. Unset variables fall back to their defaults.
func New() (Config, error) {
	var c mainConfig
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// FromMap reads the configuration from vars instead of the process environment.
func FromMap(vars map[string]string) (Config, error) {
	var c mainConfig
	if vars == nil {
		vars = map[string]string{}
	}
	if err := env.ParseWithOptions(&c, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}
