// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	AI         AIConfig         `mapstructure:"ai"`
	Image      ImageConfig      `mapstructure:"image"`
	Storage    StorageConfig    `mapstructure:"storage"`
	AWS        AWSConfig        `mapstructure:"aws"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`

	v *viper.Viper
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes    int           `mapstructure:"max_header_bytes"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	EnableCORS        bool          `mapstructure:"enable_cors"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
	EnableCompression bool          `mapstructure:"enable_compression"`
}

// DatabaseConfig contains database configuration. Driver selects the
// backend: "postgres" for deployments, "sqlite" for local development.
type DatabaseConfig struct {
	Driver             string        `mapstructure:"driver"`
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Database           string        `mapstructure:"database"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	SSLMode            string        `mapstructure:"ssl_mode"`
	SQLitePath         string        `mapstructure:"sqlite_path"`
	ReplicaHosts       []string      `mapstructure:"replica_hosts"`
	MaxOpenConns       int           `mapstructure:"max_open_conns"`
	MaxIdleConns       int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime    time.Duration `mapstructure:"conn_max_idle_time"`
	LogLevel           string        `mapstructure:"log_level"`
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
	AutoMigrate        bool          `mapstructure:"auto_migrate"`
}

// RedisConfig contains Redis configuration. When disabled the service
// falls back to an in-process cache.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	JWTExpiration time.Duration `mapstructure:"jwt_expiration"`
}

// AIConfig contains recipe generation configuration. Mode selects the
// backend: "ollama", "api" or "local".
type AIConfig struct {
	Mode          string        `mapstructure:"mode"`
	OllamaBaseURL string        `mapstructure:"ollama_base_url"`
	OllamaModel   string        `mapstructure:"ollama_model"`
	OllamaTimeout time.Duration `mapstructure:"ollama_timeout"`
	APIURL        string        `mapstructure:"api_url"`
	APIKey        string        `mapstructure:"api_key"`
	APIModel      string        `mapstructure:"api_model"`
	APITimeout    time.Duration `mapstructure:"api_timeout"`
	HealthTimeout time.Duration `mapstructure:"health_timeout"`
}

// ImageConfig contains food image generation configuration. Mode is
// "ollama" or "placeholder".
type ImageConfig struct {
	Mode           string        `mapstructure:"mode"`
	OllamaModel    string        `mapstructure:"ollama_model"`
	Timeout        time.Duration `mapstructure:"timeout"`
	PlaceholderURL string        `mapstructure:"placeholder_url"`
}

// StorageConfig contains generated image storage configuration.
// Provider is "local" or "s3".
type StorageConfig struct {
	Provider  string `mapstructure:"provider"`
	LocalPath string `mapstructure:"local_path"`
	BaseURL   string `mapstructure:"base_url"`
}

// AWSConfig contains AWS client configuration for the S3 image store
type AWSConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Endpoint        string `mapstructure:"endpoint"`
	S3Bucket        string `mapstructure:"s3_bucket"`
}

// MonitoringConfig contains monitoring configuration
type MonitoringConfig struct {
	EnableMetrics bool `mapstructure:"enable_metrics"`
}

// RateLimitConfig limits recipe generation per user
type RateLimitConfig struct {
	Enable         bool    `mapstructure:"enable"`
	RequestsPerSec float64 `mapstructure:"requests_per_sec"`
	Burst          int     `mapstructure:"burst"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/pantrywizard")
	}

	// Enable environment variable override
	v.SetEnvPrefix("PANTRYWIZARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Unmarshal configuration
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	config.v = v
	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "PantryWizard")
	v.SetDefault("app.version", "2.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.max_header_bytes", 1<<20) // 1MB
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.enable_cors", true)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:3001"})
	v.SetDefault("server.enable_compression", true)

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.sqlite_path", "./pantry.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.slow_query_threshold", "100ms")
	v.SetDefault("database.auto_migrate", true)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "dev-secret-change-me")
	v.SetDefault("auth.jwt_expiration", "24h")

	// AI defaults
	v.SetDefault("ai.mode", "ollama")
	v.SetDefault("ai.ollama_base_url", "http://localhost:11434")
	v.SetDefault("ai.ollama_model", "llama3.1:8b-instruct-q4_K_M")
	v.SetDefault("ai.ollama_timeout", "120s")
	v.SetDefault("ai.api_model", "gpt-3.5-turbo")
	v.SetDefault("ai.api_timeout", "30s")
	v.SetDefault("ai.health_timeout", "5s")

	// Image defaults
	v.SetDefault("image.mode", "ollama")
	v.SetDefault("image.ollama_model", "abedalswaity7/flux-prompt:latest")
	v.SetDefault("image.timeout", "180s")
	v.SetDefault("image.placeholder_url", "/static/images/placeholder.jpg")

	// Storage defaults
	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.local_path", "./static/images")
	v.SetDefault("storage.base_url", "/static/images")

	// AWS defaults
	v.SetDefault("aws.region", "us-east-1")

	// Monitoring defaults
	v.SetDefault("monitoring.enable_metrics", true)

	// Rate limit defaults
	v.SetDefault("rate_limit.enable", true)
	v.SetDefault("rate_limit.requests_per_sec", 1)
	v.SetDefault("rate_limit.burst", 5)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Database == "" {
			return fmt.Errorf("database.database is required for the postgres driver")
		}
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("database.sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver)
	}

	if c.IsProduction() {
		if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == "dev-secret-change-me" {
			return fmt.Errorf("auth.jwt_secret must be set in production")
		}
	}

	switch c.AI.Mode {
	case "ollama", "api", "local":
	default:
		return fmt.Errorf("ai.mode must be ollama, api or local, got %q", c.AI.Mode)
	}

	switch c.Image.Mode {
	case "ollama", "placeholder":
	default:
		return fmt.Errorf("image.mode must be ollama or placeholder, got %q", c.Image.Mode)
	}

	switch c.Storage.Provider {
	case "local":
	case "s3":
		if c.AWS.S3Bucket == "" {
			return fmt.Errorf("aws.s3_bucket is required for the s3 storage provider")
		}
	default:
		return fmt.Errorf("storage.provider must be local or s3, got %q", c.Storage.Provider)
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// GetDSN returns the primary database connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Username,
		c.Database.Password,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetReplicaDSNs returns connection strings for read replicas, one per
// configured replica host
func (c *Config) GetReplicaDSNs() []string {
	dsns := make([]string, 0, len(c.Database.ReplicaHosts))
	for _, host := range c.Database.ReplicaHosts {
		dsns = append(dsns, fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			host,
			c.Database.Port,
			c.Database.Username,
			c.Database.Password,
			c.Database.Database,
			c.Database.SSLMode,
		))
	}
	return dsns
}

// RedisAddr returns the Redis host:port address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Watch invokes onChange with a freshly loaded Config whenever the
// underlying config file changes. Reloads that fail to parse or
// validate are dropped. The receiver is never mutated.
func (c *Config) Watch(onChange func(*Config)) {
	if c.v == nil {
		return
	}
	c.v.OnConfigChange(func(_ fsnotify.Event) {
		var next Config
		if err := c.v.Unmarshal(&next); err != nil {
			return
		}
		if err := next.Validate(); err != nil {
			return
		}
		onChange(&next)
	})
	c.v.WatchConfig()
}
