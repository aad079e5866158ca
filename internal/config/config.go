// Package config provides application configuration management with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.servexa/config.yaml or ./config.yaml)
//  3. Default values
//
// Main configuration categories:
//   - Server: listen address, CORS origins
//   - Services: base URLs for the four downstream microservices
//   - AI: model and embedder selection for routing and retrieval
//   - Storage: PostgreSQL connection for the knowledge base (pgvector)
//   - Observability: OTLP trace export
//
// Sensitive data (the Postgres password) is masked in MarshalJSON and String.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates the model API key is missing from the environment.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidModelName indicates the model name is empty or malformed.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidEmbedderModel indicates the embedder model is empty.
	ErrInvalidEmbedderModel = errors.New("invalid embedder model")

	// ErrInvalidServiceURL indicates a downstream service base URL is malformed.
	ErrInvalidServiceURL = errors.New("invalid service URL")

	// ErrInvalidPostgresHost indicates the PostgreSQL host is empty.
	ErrInvalidPostgresHost = errors.New("invalid PostgreSQL host")

	// ErrInvalidPostgresPort indicates the PostgreSQL port is out of range.
	ErrInvalidPostgresPort = errors.New("invalid PostgreSQL port")

	// ErrInvalidPostgresSSLMode indicates the PostgreSQL SSL mode is not recognized.
	ErrInvalidPostgresSSLMode = errors.New("invalid PostgreSQL SSL mode")

	// ErrInvalidTimeout indicates the downstream service timeout is out of range.
	ErrInvalidTimeout = errors.New("invalid service timeout")
)

// DefaultModelName is the routing/answering model.
const DefaultModelName = "googleai/gemini-2.5-flash"

// DefaultEmbedderModel is the embedder used for knowledge-base vectors.
// gemini-embedding-001 supports truncation to 768 dimensions, matching the
// documents table schema in db/migrations.
const DefaultEmbedderModel = "gemini-embedding-001"

// Config stores application configuration.
// SECURITY: sensitive fields are explicitly masked in MarshalJSON.
type Config struct {
	// HTTP server
	Addr        string   `mapstructure:"addr" json:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins" json:"cors_origins"`

	// Downstream microservice base URLs
	AuthServiceURL         string `mapstructure:"auth_service_url" json:"auth_service_url"`
	AppointmentServiceURL  string `mapstructure:"appointment_service_url" json:"appointment_service_url"`
	VehicleServiceURL      string `mapstructure:"vehicle_service_url" json:"vehicle_service_url"`
	NotificationServiceURL string `mapstructure:"notification_service_url" json:"notification_service_url"`

	// ServiceTimeoutSeconds bounds every downstream request.
	ServiceTimeoutSeconds int `mapstructure:"service_timeout_seconds" json:"service_timeout_seconds"`

	// AI model configuration
	ModelName     string `mapstructure:"model_name" json:"model_name"`
	EmbedderModel string `mapstructure:"embedder_model" json:"embedder_model"`

	// RAG configuration
	KnowledgePath string `mapstructure:"knowledge_path" json:"knowledge_path"`
	RAGTopK       int    `mapstructure:"rag_top_k" json:"rag_top_k"`

	// Storage configuration (knowledge base)
	PostgresHost     string `mapstructure:"postgres_host" json:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port" json:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user" json:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password" json:"postgres_password"` // SENSITIVE: masked in MarshalJSON
	PostgresDBName   string `mapstructure:"postgres_db_name" json:"postgres_db_name"`
	PostgresSSLMode  string `mapstructure:"postgres_ssl_mode" json:"postgres_ssl_mode"`

	// Observability configuration
	OTLPEndpoint string `mapstructure:"otlp_endpoint" json:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name" json:"service_name"`
	Environment  string `mapstructure:"environment" json:"environment"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	v := viper.New()

	// Configuration directory: ~/.servexa/
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}
	configDir := filepath.Join(home, ".servexa")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Also support current directory

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is not an error; defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// DATABASE_URL takes priority over the individual Postgres fields.
	if err := cfg.parseDatabaseURL(os.Getenv("DATABASE_URL")); err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	// Validate immediately (fail-fast).
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
// Service URLs match the docker-compose port assignments of the ServeXa stack.
func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", "127.0.0.1:8090")
	v.SetDefault("cors_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	v.SetDefault("auth_service_url", "http://localhost:8081")
	v.SetDefault("appointment_service_url", "http://localhost:8083")
	v.SetDefault("vehicle_service_url", "http://localhost:8084")
	v.SetDefault("notification_service_url", "http://localhost:8085")
	v.SetDefault("service_timeout_seconds", 30)

	v.SetDefault("model_name", DefaultModelName)
	v.SetDefault("embedder_model", DefaultEmbedderModel)

	v.SetDefault("knowledge_path", "ServeXa.md")
	v.SetDefault("rag_top_k", 4)

	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", 5432)
	v.SetDefault("postgres_user", "servexa")
	v.SetDefault("postgres_password", "servexa_dev_password")
	v.SetDefault("postgres_db_name", "servexa")
	v.SetDefault("postgres_ssl_mode", "disable")

	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("service_name", "chatbot-gateway")
	v.SetDefault("environment", "dev")
}

// bindEnvVariables binds environment variables explicitly.
// The downstream service URL variables keep the names used across the ServeXa
// deployment so the gateway drops into the existing compose files unchanged.
//
// NOTE: GEMINI_API_KEY is read directly by Genkit, not via Viper; Validate
// only checks its presence.
func bindEnvVariables(v *viper.Viper) {
	// Hardcoded keys cannot fail to bind; a panic here is a bug, not a runtime error.
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("addr", "SERVEXA_CHATBOT_ADDR")
	mustBind("cors_origins", "SERVEXA_CORS_ORIGINS")

	mustBind("auth_service_url", "AUTH_SERVICE_URL")
	mustBind("appointment_service_url", "APPOINTMENT_SERVICE_URL")
	mustBind("vehicle_service_url", "VEHICLE_SERVICE_URL")
	mustBind("notification_service_url", "NOTIFICATION_SERVICE_URL")

	mustBind("model_name", "SERVEXA_MODEL_NAME")
	mustBind("embedder_model", "SERVEXA_EMBEDDER_MODEL")
	mustBind("knowledge_path", "SERVEXA_KNOWLEDGE_PATH")

	mustBind("postgres_password", "SERVEXA_POSTGRES_PASSWORD")

	mustBind("otlp_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
	mustBind("environment", "SERVEXA_ENVIRONMENT")
}

// parseDatabaseURL overrides the Postgres fields from a postgres:// URL.
// Empty input is a no-op.
func (c *Config) parseDatabaseURL(raw string) error {
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	c.PostgresHost = u.Hostname()
	if port := u.Port(); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("parsing port: %w", err)
		}
		c.PostgresPort = p
	}
	if u.User != nil {
		c.PostgresUser = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			c.PostgresPassword = pw
		}
	}
	if db := filepath.Base(u.Path); db != "." && db != "/" {
		c.PostgresDBName = db
	}
	if mode := u.Query().Get("sslmode"); mode != "" {
		c.PostgresSSLMode = mode
	}
	return nil
}

// PostgresURL returns the connection string in URL form, as expected by
// golang-migrate and pgxpool.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.PostgresUser),
		url.QueryEscape(c.PostgresPassword),
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDBName,
		c.PostgresSSLMode,
	)
}

// maskedValue is the placeholder for masked sensitive data.
const maskedValue = "████████"

// maskSecret masks a secret string for safe logging.
// Short secrets are fully masked; longer ones show the first and last two
// characters for debug utility.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with explicit sensitive field masking.
// When adding new sensitive fields, update this method.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.PostgresPassword = maskSecret(a.PostgresPassword)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
