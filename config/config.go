package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Notifier      NotifierConfig
	Mailer        MailerConfig
	ContactPolicy ContactPolicyConfig
	AdminSession  AdminSessionConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Cache         CacheConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// NotifierConfig covers both sides of the dispatch contract: the API's
// client endpoint and the notifier service's own listener.
type NotifierConfig struct {
	EndpointURL string
	AuthToken   string
	Port        string
}

type MailerConfig struct {
	ResendAPIKey string
	FromAddress  string
}

// ContactPolicyConfig holds the admission policy knobs for connection requests.
type ContactPolicyConfig struct {
	MessageMinLength  int
	DailyRequestLimit int
}

type AdminSessionConfig struct {
	JWTSecret            string
	JWTIssuer            string
	SessionTTLHours      int
	LoginTokenTTLMinutes int
	CookieDomain         string
	CookieSecure         bool
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	CollectorEndpoint string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

type CacheConfig struct {
	DirectoryTTLSeconds   int  // Approved-mentor directory cache TTL in seconds
	DisableDirectoryCache bool // Read from the database on every request
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8081")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "https://cybermentor.me")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://cybermentor.me,https://www.cybermentor.me")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("NOTIFIER_PORT", "8082")
	v.SetDefault("MAILER_FROM_ADDRESS", "CyberMentor ME <onboarding@resend.dev>")
	v.SetDefault("CONTACT_MESSAGE_MIN_LENGTH", 120)
	v.SetDefault("CONTACT_DAILY_REQUEST_LIMIT", 3)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "cybermentor-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "cybermentor-me")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "cybermentor-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines,mutex,block")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)
	v.SetDefault("DIRECTORY_CACHE_TTL", 600) // 10 minutes in seconds
	v.SetDefault("DISABLE_DIRECTORY_CACHE", false)

	// Admin session defaults
	v.SetDefault("JWT_ISSUER", "cybermentor-api")
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("LOGIN_TOKEN_TTL_MINUTES", 15)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	originsStr := v.GetString("ALLOWED_CORS_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: allowedOrigins,
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: 20,
			MinConns: 2,
		},
		Notifier: NotifierConfig{
			EndpointURL: v.GetString("NOTIFIER_ENDPOINT_URL"),
			AuthToken:   v.GetString("NOTIFIER_AUTH_TOKEN"),
			Port:        v.GetString("NOTIFIER_PORT"),
		},
		Mailer: MailerConfig{
			ResendAPIKey: v.GetString("RESEND_API_KEY"),
			FromAddress:  v.GetString("MAILER_FROM_ADDRESS"),
		},
		ContactPolicy: ContactPolicyConfig{
			MessageMinLength:  v.GetInt("CONTACT_MESSAGE_MIN_LENGTH"),
			DailyRequestLimit: v.GetInt("CONTACT_DAILY_REQUEST_LIMIT"),
		},
		AdminSession: AdminSessionConfig{
			JWTSecret:            v.GetString("JWT_SECRET"),
			JWTIssuer:            v.GetString("JWT_ISSUER"),
			SessionTTLHours:      v.GetInt("SESSION_TTL_HOURS"),
			LoginTokenTTLMinutes: v.GetInt("LOGIN_TOKEN_TTL_MINUTES"),
			CookieDomain:         v.GetString("COOKIE_DOMAIN"),
			CookieSecure:         v.GetBool("COOKIE_SECURE"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			CollectorEndpoint: v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
		Cache: CacheConfig{
			DirectoryTTLSeconds:   v.GetInt("DIRECTORY_CACHE_TTL"),
			DisableDirectoryCache: v.GetBool("DISABLE_DIRECTORY_CACHE"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.Notifier.EndpointURL == "" {
		return fmt.Errorf("NOTIFIER_ENDPOINT_URL is required")
	}

	if c.ContactPolicy.MessageMinLength <= 0 {
		return fmt.Errorf("CONTACT_MESSAGE_MIN_LENGTH must be positive")
	}
	if c.ContactPolicy.DailyRequestLimit <= 0 {
		return fmt.Errorf("CONTACT_DAILY_REQUEST_LIMIT must be positive")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
