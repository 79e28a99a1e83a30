package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database        DatabaseConfig
	JWT             JWTConfig
	App             AppConfig
	OAuth2Microsoft OAuth2MicrosoftConfig
	Graph           GraphConfig
	CORS            CORSConfig
	Profile         ProfileConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port         int
	Env          string
	LogLevel     string
	FrontendURL  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// OAuth2MicrosoftConfig holds the identity provider settings. BaseScopes are
// requested at sign-in; CalendarScope is only requested via incremental consent.
type OAuth2MicrosoftConfig struct {
	ClientID      string
	ClientSecret  string
	RedirectURL   string
	TenantID      string
	BaseScopes    []string
	CalendarScope string
}

// GraphConfig holds the calendar provider API settings.
type GraphConfig struct {
	BaseURL string
	Timeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// ProfileConfig tunes lazy provisioning behavior.
type ProfileConfig struct {
	ProvisionRetryDelay time.Duration
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win either way
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "leaveport"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_WRITE_TIMEOUT: %w", err)
	}

	config.App = AppConfig{
		Port:         appPort,
		Env:          getEnv("APP_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	// JWT configuration
	jwtRefreshExpiration := getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h")
	jwtAccessExpiration := getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h")

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: jwtRefreshExpiration,
		AccessExpiration:  jwtAccessExpiration,
	}

	// OAuth2 Microsoft configuration. The base scope set stays minimal;
	// the calendar scope is added on demand, never up front.
	baseScopes := getEnvSlice("MSAL_SCOPES")
	if len(baseScopes) == 0 {
		baseScopes = []string{"openid", "profile", "email", "offline_access", "User.Read"}
	}
	config.OAuth2Microsoft = OAuth2MicrosoftConfig{
		ClientID:      getEnv("MSAL_CLIENT_ID", ""),
		ClientSecret:  getEnv("MSAL_CLIENT_SECRET", ""),
		RedirectURL:   getEnv("MSAL_REDIRECT_URL", ""),
		TenantID:      getEnv("MSAL_TENANT_ID", "common"),
		BaseScopes:    baseScopes,
		CalendarScope: getEnv("MSAL_CALENDAR_SCOPE", "Calendars.Read"),
	}

	graphTimeout, err := time.ParseDuration(getEnv("GRAPH_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GRAPH_TIMEOUT: %w", err)
	}
	config.Graph = GraphConfig{
		BaseURL: getEnv("GRAPH_BASE_URL", "https://graph.microsoft.com/v1.0"),
		Timeout: graphTimeout,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSliceDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	retryDelay, err := time.ParseDuration(getEnv("PROFILE_PROVISION_RETRY_DELAY", "400ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROFILE_PROVISION_RETRY_DELAY: %w", err)
	}
	config.Profile = ProfileConfig{ProvisionRetryDelay: retryDelay}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.OAuth2Microsoft.ClientID == "" {
		return fmt.Errorf("MSAL_CLIENT_ID is required")
	}
	if c.OAuth2Microsoft.ClientSecret == "" {
		return fmt.Errorf("MSAL_CLIENT_SECRET is required")
	}
	if c.OAuth2Microsoft.RedirectURL == "" {
		return fmt.Errorf("MSAL_REDIRECT_URL is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}

func getEnvSliceDefault(env string, fallback []string) []string {
	if v := getEnvSlice(env); len(v) > 0 {
		return v
	}
	return fallback
}
