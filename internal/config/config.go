package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Logger      LoggerConfig
	Auth        AuthConfig
	Gateway     GatewayConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Recommender RecommenderConfig
	Dashboard   DashboardConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// Address returns the host:port the HTTP server binds to.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// ConnectionString builds a pgx-compatible DSN.
func (d DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Database)
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds JWT and admin credentials. The admin panel logs in
// against a single configured account, matching the original deployment.
type AuthConfig struct {
	JWTSecret     string
	AdminEmail    string
	AdminPassword string
}

// GatewayConfig holds payment gateway (Snap/Core API) credentials and
// endpoints. Secrets are threaded through this struct rather than read
// from the environment at call sites.
type GatewayConfig struct {
	ServerKey     string
	ClientKey     string
	SnapBaseURL   string
	CoreBaseURL   string
	FrontendURL   string // callback base for finish/error/pending pages
	ExpiryMinutes int
	Timeout       time.Duration
}

// RedisConfig holds the dashboard summary cache configuration.
type RedisConfig struct {
	Enabled    bool
	Addr       string
	SummaryTTL time.Duration
}

// KafkaConfig holds the order-event producer configuration. An empty
// broker list disables publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RecommenderConfig holds the external recommendation service endpoint.
type RecommenderConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DashboardConfig holds aggregation behavior toggles.
type DashboardConfig struct {
	// RevenueFallback enables the diagnostic mode that sums ALL order
	// amounts when no paid order exists. Off by default; revenue is then
	// reported as 0 until something is actually paid.
	RevenueFallback bool
}

// Load loads configuration from environment variables. A .env file in
// the working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 4000),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "storefront"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			AdminEmail:    getEnv("ADMIN_EMAIL", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		},
		Gateway: GatewayConfig{
			ServerKey:     getEnv("GATEWAY_SERVER_KEY", ""),
			ClientKey:     getEnv("GATEWAY_CLIENT_KEY", ""),
			SnapBaseURL:   getEnv("GATEWAY_SNAP_URL", "https://app.sandbox.midtrans.com"),
			CoreBaseURL:   getEnv("GATEWAY_CORE_URL", "https://api.sandbox.midtrans.com"),
			FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
			ExpiryMinutes: getEnvAsInt("GATEWAY_EXPIRY_MINUTES", 60),
			Timeout:       time.Duration(getEnvAsInt("GATEWAY_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:    getEnvAsBool("REDIS_ENABLED", false),
			Addr:       getEnv("REDIS_ADDR", "localhost:6379"),
			SummaryTTL: time.Duration(getEnvAsInt("DASHBOARD_CACHE_TTL_SECONDS", 30)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: splitCSV(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_ORDER_TOPIC", "orders.events"),
		},
		Recommender: RecommenderConfig{
			BaseURL: getEnv("RECOMMENDER_URL", ""),
			Timeout: time.Duration(getEnvAsInt("RECOMMENDER_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Dashboard: DashboardConfig{
			RevenueFallback: getEnvAsBool("DASHBOARD_REVENUE_FALLBACK", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.Gateway.ExpiryMinutes < 1 {
		return fmt.Errorf("gateway expiry must be at least 1 minute")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns
// a default value.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool retrieves an environment variable as a boolean or returns
// a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// splitCSV splits a comma-separated list, dropping empty entries.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
