package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	JWT          JWTConfig          `yaml:"jwt"`
	Log          LogConfig          `yaml:"log"`
	Payment      PaymentConfig      `yaml:"payment"`
	Notification NotificationConfig `yaml:"notification"`
	Scheduler    SchedulerConfig    `yaml:"scheduler"`
}

// ServerConfig contains HTTP and gRPC health server settings
type ServerConfig struct {
	Host                  string   `yaml:"host"`
	Port                  int      `yaml:"port"`
	GRPCHealthPort        int      `yaml:"grpc_health_port"`
	RequestTimeoutSeconds int      `yaml:"request_timeout_seconds"`
	AllowedOrigins        []string `yaml:"allowed_origins"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_open_conns"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// PaymentConfig contains checkout provider settings
type PaymentConfig struct {
	Provider              string `yaml:"provider"` // "stripe" or "mock"
	SecretKey             string `yaml:"secret_key"`
	Domain                string `yaml:"domain"` // public base URL for success/cancel callbacks
	Currency              string `yaml:"currency"`
	TimeoutSeconds        int    `yaml:"timeout_seconds"`
	RetryAttempts         int    `yaml:"retry_attempts"`
	RetryBackoffMillis    int    `yaml:"retry_backoff_ms"`
	RetryMaxBackoffMillis int    `yaml:"retry_max_backoff_ms"`
}

// NotificationConfig contains operator notification settings
type NotificationConfig struct {
	Sink           string `yaml:"sink"` // "telegram", "sendgrid", "firebase" or "log"
	AdminChannel   string `yaml:"admin_channel"`
	Workers        int    `yaml:"workers"`
	QueueSize      int    `yaml:"queue_size"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`

	TelegramBotToken string `yaml:"telegram_bot_token"`

	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`

	FirebaseProjectID       string `yaml:"firebase_project_id"`
	FirebaseCredentialsFile string `yaml:"firebase_credentials_file"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	NotifyOverdueRentals     string `yaml:"notify_overdue_rentals"`
	ReconcilePendingPayments string `yaml:"reconcile_pending_payments"`
}

// Load reads configuration from a YAML file. A .env file next to the
// working directory, if any, is loaded into the environment first.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("GRPC_HEALTH_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.GRPCHealthPort)
	}
	if val := os.Getenv("CORS_ALLOWED_ORIGINS"); val != "" {
		c.Server.AllowedOrigins = strings.Split(val, ",")
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Payment
	if val := os.Getenv("PAYMENT_PROVIDER"); val != "" {
		c.Payment.Provider = val
	}
	if val := os.Getenv("STRIPE_SECRET_KEY"); val != "" {
		c.Payment.SecretKey = val
	}
	if val := os.Getenv("PAYMENT_DOMAIN"); val != "" {
		c.Payment.Domain = val
	}

	// Notification
	if val := os.Getenv("NOTIFICATION_SINK"); val != "" {
		c.Notification.Sink = val
	}
	if val := os.Getenv("ADMIN_CHANNEL"); val != "" {
		c.Notification.AdminChannel = val
	}
	if val := os.Getenv("TELEGRAM_BOT_TOKEN"); val != "" {
		c.Notification.TelegramBotToken = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Notification.SendGridAPIKey = val
	}
	if val := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); val != "" {
		c.Notification.FirebaseCredentialsFile = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.GRPCHealthPort < 0 || c.Server.GRPCHealthPort > 65535 {
		return fmt.Errorf("invalid grpc health port: %d", c.Server.GRPCHealthPort)
	}
	if c.Server.RequestTimeoutSeconds == 0 {
		c.Server.RequestTimeoutSeconds = 30
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}

	// Payment validation
	switch c.Payment.Provider {
	case "":
		c.Payment.Provider = "mock"
	case "mock":
	case "stripe":
		if c.Payment.SecretKey == "" {
			return fmt.Errorf("stripe secret key is required")
		}
	default:
		return fmt.Errorf("unknown payment provider: %s", c.Payment.Provider)
	}
	if c.Payment.Domain == "" {
		return fmt.Errorf("payment callback domain is required")
	}
	if c.Payment.Currency == "" {
		c.Payment.Currency = "usd"
	}
	if c.Payment.TimeoutSeconds == 0 {
		c.Payment.TimeoutSeconds = 10
	}
	if c.Payment.RetryAttempts == 0 {
		c.Payment.RetryAttempts = 3
	}
	if c.Payment.RetryBackoffMillis == 0 {
		c.Payment.RetryBackoffMillis = 200
	}
	if c.Payment.RetryMaxBackoffMillis == 0 {
		c.Payment.RetryMaxBackoffMillis = 2000
	}

	// Notification validation
	switch c.Notification.Sink {
	case "":
		c.Notification.Sink = "log"
	case "log":
	case "telegram":
		if c.Notification.TelegramBotToken == "" {
			return fmt.Errorf("telegram bot token is required")
		}
	case "sendgrid":
		if c.Notification.SendGridAPIKey == "" || c.Notification.FromEmail == "" {
			return fmt.Errorf("sendgrid api key and from email are required")
		}
	case "firebase":
		if c.Notification.FirebaseProjectID == "" {
			return fmt.Errorf("firebase project id is required")
		}
	default:
		return fmt.Errorf("unknown notification sink: %s", c.Notification.Sink)
	}
	if c.Notification.Sink != "log" && c.Notification.AdminChannel == "" {
		return fmt.Errorf("notification admin channel is required")
	}
	if c.Notification.Workers == 0 {
		c.Notification.Workers = 2
	}
	if c.Notification.QueueSize == 0 {
		c.Notification.QueueSize = 100
	}
	if c.Notification.TimeoutSeconds == 0 {
		c.Notification.TimeoutSeconds = 10
	}

	// Scheduler defaults
	if c.Scheduler.NotifyOverdueRentals == "" {
		c.Scheduler.NotifyOverdueRentals = "0 0 8 * * *" // 8 AM UTC
	}
	if c.Scheduler.ReconcilePendingPayments == "" {
		c.Scheduler.ReconcilePendingPayments = "0 */15 * * * *" // every 15 minutes
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetGRPCHealthAddress returns the gRPC health server address
func (c *Config) GetGRPCHealthAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCHealthPort)
}

func (c *Config) PaymentTimeout() time.Duration {
	return time.Duration(c.Payment.TimeoutSeconds) * time.Second
}

func (c *Config) NotificationTimeout() time.Duration {
	return time.Duration(c.Notification.TimeoutSeconds) * time.Second
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

func (c *Config) AccessTokenExpiry() time.Duration {
	return time.Duration(c.JWT.AccessTokenExpiry) * time.Minute
}
