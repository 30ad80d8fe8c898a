package config

import "time"

type SecurityConfig interface {
	GetSessionSecret() string
	GetMaxSessionAge() time.Duration
	GetCSRFEnabled() bool
}

type Security struct {
	SessionSecret string        `env:"SESSION_SECRET" envDefault:"change-me-in-production"`
	MaxSessionAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"12h"`
	CSRFEnabled   bool          `env:"CSRF_ENABLED" envDefault:"true"`
}

var _ SecurityConfig = Security{}

func (s Security) GetSessionSecret() string {
	return s.SessionSecret
}

func (s Security) GetMaxSessionAge() time.Duration {
	if s.MaxSessionAge <= 0 {
		return 12 * time.Hour
	}
	return s.MaxSessionAge
}

func (s Security) GetCSRFEnabled() bool {
	return s.CSRFEnabled
}
