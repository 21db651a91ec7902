package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Redis   RedisConfig
	Billing BillingConfig
	Email   EmailConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
	ReplyTo     string `mapstructure:"reply_to"`
	// ConfigurationSet routes SES bounce/complaint events; empty disables it.
	ConfigurationSet string `mapstructure:"configuration_set"`
}

// BillingConfig holds invoice defaults applied on conversion.
type BillingConfig struct {
	InvoiceDueDays int    `mapstructure:"invoice_due_days"`
	Currency       string `mapstructure:"currency"`
}

// RedisConfig holds the conversion lock backend settings.
// An empty Addr disables locking.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for resident documents.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the STAYOS_ prefix.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("STAYOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "stayos")
	v.SetDefault("db.password", "stayos_secret")
	v.SetDefault("db.name", "stayos_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "stayos")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "stayos-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.presign_expiry", 900)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Redis defaults (empty addr = no conversion lock)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.lock_ttl", "30s")

	v.SetDefault("billing.invoice_due_days", 7)
	v.SetDefault("billing.currency", "GBP")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-2")
	v.SetDefault("email.from_address", "billing@stayos.app")
	v.SetDefault("email.from_name", "StayOS")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "STAYOS_SERVER_PORT",
		"server.read_timeout":      "STAYOS_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "STAYOS_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout":  "STAYOS_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":       "STAYOS_SERVER_ENVIRONMENT",
		"db.host":                  "STAYOS_DB_HOST",
		"db.port":                  "STAYOS_DB_PORT",
		"db.user":                  "STAYOS_DB_USER",
		"db.password":              "STAYOS_DB_PASSWORD",
		"db.name":                  "STAYOS_DB_NAME",
		"db.sslmode":               "STAYOS_DB_SSLMODE",
		"db.max_open":              "STAYOS_DB_MAX_OPEN",
		"db.max_idle":              "STAYOS_DB_MAX_IDLE",
		"jwt.secret":               "STAYOS_JWT_SECRET",
		"jwt.access_expiry":        "STAYOS_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":       "STAYOS_JWT_REFRESH_EXPIRY",
		"jwt.issuer":               "STAYOS_JWT_ISSUER",
		"s3.region":                "STAYOS_S3_REGION",
		"s3.bucket":                "STAYOS_S3_BUCKET",
		"s3.endpoint":              "STAYOS_S3_ENDPOINT",
		"s3.access_key":            "STAYOS_S3_ACCESS_KEY",
		"s3.secret_key":            "STAYOS_S3_SECRET_KEY",
		"s3.max_file_size_mb":      "STAYOS_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":        "STAYOS_S3_PRESIGN_EXPIRY",
		"log.level":                "STAYOS_LOG_LEVEL",
		"log.format":               "STAYOS_LOG_FORMAT",
		"cors.allowed_origins":     "STAYOS_CORS_ALLOWED_ORIGINS",
		"redis.addr":               "STAYOS_REDIS_ADDR",
		"redis.password":           "STAYOS_REDIS_PASSWORD",
		"redis.db":                 "STAYOS_REDIS_DB",
		"redis.lock_ttl":           "STAYOS_REDIS_LOCK_TTL",
		"billing.invoice_due_days": "STAYOS_BILLING_INVOICE_DUE_DAYS",
		"billing.currency":         "STAYOS_BILLING_CURRENCY",
		"email.provider":           "STAYOS_EMAIL_PROVIDER",
		"email.region":             "STAYOS_EMAIL_REGION",
		"email.from_address":       "STAYOS_EMAIL_FROM_ADDRESS",
		"email.from_name":          "STAYOS_EMAIL_FROM_NAME",
		"email.frontend_url":       "STAYOS_EMAIL_FRONTEND_URL",
		"email.reply_to":           "STAYOS_EMAIL_REPLY_TO",
		"email.configuration_set":  "STAYOS_EMAIL_CONFIGURATION_SET",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if STAYOS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("STAYOS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
		LockTTL:  v.GetDuration("redis.lock_ttl"),
	}

	cfg.Billing = BillingConfig{
		InvoiceDueDays: v.GetInt("billing.invoice_due_days"),
		Currency:       v.GetString("billing.currency"),
	}
	if cfg.Billing.InvoiceDueDays < 0 {
		return nil, fmt.Errorf("billing.invoice_due_days must not be negative, got %d", cfg.Billing.InvoiceDueDays)
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
		ReplyTo:     v.GetString("email.reply_to"),

		ConfigurationSet: v.GetString("email.configuration_set"),
	}

	return cfg, nil
}
