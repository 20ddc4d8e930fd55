package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v9"
)

// DefaultBaseURL is the marketplace backend used when MARKETPLACE_API_URL is unset.
const DefaultBaseURL = "https://ca-marketplace-backend-dev.jollydesert-5443c3db.eastasia.azurecontainerapps.io"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	API      APIConfig
	Logger   LoggerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Theme    ThemeConfig
	Media    MediaConfig
	S3       S3Config
}

// ServerConfig holds the web shell listener configuration.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" envDefault:"3000"`
}

// APIConfig holds the marketplace backend client configuration.
type APIConfig struct {
	BaseURL   string `env:"MARKETPLACE_API_URL"`
	LoginPath string `env:"LOGIN_PATH" envDefault:"/login"`
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "console"
}

// StorageConfig selects where the auth token and user record are persisted.
type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER" envDefault:"file"` // "memory", "file", "postgres" or "redis"
	Path   string `env:"STORAGE_PATH" envDefault:".marketplace/storage.json"`
}

// DatabaseConfig holds database-related configuration for the postgres storage driver.
type DatabaseConfig struct {
	Host            string `env:"DB_HOST" envDefault:"localhost"`
	Port            int    `env:"DB_PORT" envDefault:"5432"`
	User            string `env:"DB_USER" envDefault:"postgres"`
	Password        string `env:"DB_PASSWORD"`
	Database        string `env:"DB_NAME" envDefault:"marketplace"`
	MaxConnections  int    `env:"DB_MAX_CONNECTIONS" envDefault:"10"`
	MinConnections  int    `env:"DB_MIN_CONNECTIONS" envDefault:"1"`
	MaxConnLifetime int    `env:"DB_MAX_CONN_LIFETIME" envDefault:"300"` // seconds
}

// RedisConfig holds connection settings for the redis storage driver.
type RedisConfig struct {
	Address   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"marketplace:"`
}

// ThemeConfig holds the default theme served to new visitors.
type ThemeConfig struct {
	Default string `env:"THEME_DEFAULT" envDefault:"light"`
}

// MediaConfig holds the local fallback for listing image uploads.
type MediaConfig struct {
	Dir     string `env:"MEDIA_DIR" envDefault:".marketplace/uploads"`
	BaseURL string `env:"MEDIA_BASE_URL" envDefault:"/uploads/"`
}

// S3Config holds AWS S3 configuration for listing images.
type S3Config struct {
	Enabled bool   `env:"S3_ENABLED" envDefault:"false"`
	Bucket  string `env:"S3_BUCKET"`
	Region  string `env:"S3_REGION" envDefault:"us-east-1"`
	Prefix  string `env:"S3_PREFIX" envDefault:"listings/"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.API.BaseURL = ResolveBaseURL(cfg.API.BaseURL)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ResolveBaseURL returns override without a trailing slash, or DefaultBaseURL
// when override is blank.
func ResolveBaseURL(override string) string {
	override = strings.TrimSpace(override)
	if override == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(override, "/")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("invalid API base URL: %q (must start with http:// or https://)", c.API.BaseURL)
	}

	if !strings.HasPrefix(c.API.LoginPath, "/") || strings.ContainsAny(c.API.LoginPath, "{} ") {
		return fmt.Errorf("invalid login path: %q (must start with /)", c.API.LoginPath)
	}

	if IsReservedPath(c.API.LoginPath) {
		return fmt.Errorf("invalid login path: %q (already served by the web shell)", c.API.LoginPath)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	switch c.Storage.Driver {
	case "memory":
	case "file":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for the file driver")
		}
	case "postgres":
		if err := c.Database.Validate(); err != nil {
			return err
		}
	case "redis":
		if c.Redis.Address == "" {
			return fmt.Errorf("redis address is required for the redis driver")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("invalid redis db: %d", c.Redis.DB)
		}
	default:
		return fmt.Errorf("invalid storage driver: %s (must be memory, file, postgres, or redis)", c.Storage.Driver)
	}

	if c.Theme.Default != "light" && c.Theme.Default != "dark" {
		return fmt.Errorf("invalid default theme: %s (must be light or dark)", c.Theme.Default)
	}

	if !strings.HasPrefix(c.Media.BaseURL, "http://") && !strings.HasPrefix(c.Media.BaseURL, "https://") {
		mount := c.Media.MountPath()
		if mount == "" {
			return fmt.Errorf("invalid media base URL: %q (must be an absolute URL or a path starting with /)", c.Media.BaseURL)
		}
		if IsReservedPath(mount) || strings.HasPrefix(c.API.LoginPath, mount) {
			return fmt.Errorf("invalid media base URL: %q (collides with a web shell route)", c.Media.BaseURL)
		}
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	} else if c.Media.Dir == "" {
		return fmt.Errorf("media directory is required when S3 is disabled")
	}

	return nil
}

// Validate validates the database settings used by the postgres storage driver.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// MountPath returns the path prefix the web shell serves local images under,
// or "" when BaseURL points at another host.
func (c MediaConfig) MountPath() string {
	if !strings.HasPrefix(c.BaseURL, "/") || strings.HasPrefix(c.BaseURL, "//") {
		return ""
	}
	return strings.TrimRight(c.BaseURL, "/") + "/"
}

// reservedPaths are the web shell's own routes. Entries ending in "/" cover
// everything beneath them.
var reservedPaths = []string{
	"/",
	"/marketplace",
	"/product/",
	"/profile",
	"/list-item",
	"/auth/callback",
	"/health",
	"/logout",
}

// IsReservedPath reports whether path collides with a route the web shell
// serves itself.
func IsReservedPath(path string) bool {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return true
	}
	for _, p := range reservedPaths {
		if p == "/" {
			continue
		}
		if strings.HasSuffix(p, "/") {
			if strings.HasPrefix(path, p) || trimmed == strings.TrimSuffix(p, "/") {
				return true
			}
			continue
		}
		if trimmed == p {
			return true
		}
	}
	return false
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
