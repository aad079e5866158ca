package config

import (
	"fmt"
	"net/url"
	"os"
)

// validSSLModes are the sslmode values accepted by libpq-compatible drivers.
var validSSLModes = map[string]bool{
	"disable":     true,
	"allow":       true,
	"prefer":      true,
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

// Validate checks the configuration for structural problems.
// It does not check environment secrets; see ValidateModelKey.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if c.ModelName == "" {
		return fmt.Errorf("%w: model name is empty", ErrInvalidModelName)
	}
	if c.EmbedderModel == "" {
		return fmt.Errorf("%w: embedder model is empty", ErrInvalidEmbedderModel)
	}

	for name, raw := range map[string]string{
		"auth":         c.AuthServiceURL,
		"appointment":  c.AppointmentServiceURL,
		"vehicle":      c.VehicleServiceURL,
		"notification": c.NotificationServiceURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %s service URL %q", ErrInvalidServiceURL, name, raw)
		}
	}

	if c.ServiceTimeoutSeconds < 1 || c.ServiceTimeoutSeconds > 300 {
		return fmt.Errorf("%w: %d seconds (want 1-300)", ErrInvalidTimeout, c.ServiceTimeoutSeconds)
	}

	if c.PostgresHost == "" {
		return fmt.Errorf("%w: host is empty", ErrInvalidPostgresHost)
	}
	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPostgresPort, c.PostgresPort)
	}
	if !validSSLModes[c.PostgresSSLMode] {
		return fmt.Errorf("%w: %q", ErrInvalidPostgresSSLMode, c.PostgresSSLMode)
	}

	return nil
}

// ValidateModelKey verifies the model API key is present in the environment.
// Genkit reads GEMINI_API_KEY directly; the config layer only checks presence
// so serve/index fail fast with a clear message instead of on the first call.
func (c *Config) ValidateModelKey() error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrMissingAPIKey)
	}
	return nil
}
