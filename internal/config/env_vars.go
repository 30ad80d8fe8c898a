package config

import (
	"fmt"
	"os"
	"strings"
)

// EnvDev enables console logging and route listing.
const EnvDev = "DEV"

const (
	CredentialStoreFile = "file"
	CredentialStoreBolt = "bolt"
)

type EnvVars struct {
	Port            string `env:"PORT" envDefault:"8080"`
	AppName         string `env:"APP_NAME" envDefault:"EduFlow"`
	DataFolder      string `env:"FOLDER" envDefault:"./data"`
	Environment     string `env:"ENV" envDefault:"DEV"`
	CredentialStore string `env:"CREDENTIAL_STORE" envDefault:"file"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" {
		port = "8080"
	}
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetDataFolder() string {
	return e.DataFolder
}

func (e EnvVars) GetEnv() string {
	if e.Environment == "" {
		return EnvDev
	}
	return e.Environment
}

// GetCredentialStore returns the credential backend, "file" or "bolt".
func (e EnvVars) GetCredentialStore() string {
	switch strings.ToLower(e.CredentialStore) {
	case CredentialStoreBolt:
		return CredentialStoreBolt
	default:
		return CredentialStoreFile
	}
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
