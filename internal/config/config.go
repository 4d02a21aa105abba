package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	S3         S3Config
	Log        LogConfig
	Generator  GeneratorConfig
	Analysis   AnalysisConfig
	CORS       CORSConfig
	Extraction ExtractionConfig
	Share      ShareConfig
	Email      EmailConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// ShareConfig holds settings for signed analysis share links.
type ShareConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// ExtractionConfig holds reference text extraction worker settings.
type ExtractionConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxAttempts      int `mapstructure:"max_attempts"`
	Concurrency      int `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AnalysisConfig holds compliance analysis settings.
type AnalysisConfig struct {
	// IssuerCatalogPath overrides the embedded issuer profiles when set.
	IssuerCatalogPath string        `mapstructure:"issuer_catalog_path"`
	DefaultIssuer     string        `mapstructure:"default_issuer"`
	MaxImages         int           `mapstructure:"max_images"`
	MaxImageSizeMB    int64         `mapstructure:"max_image_size_mb"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
}

// GeneratorProviderConfig holds settings for a single LLM provider.
type GeneratorProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxTokens    int    `mapstructure:"max_tokens"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// GeneratorConfig holds LLM text generator settings.
type GeneratorConfig struct {
	// Legacy flat fields (backwards-compatible)
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxTokens    int    `mapstructure:"max_tokens"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	Primary GeneratorProviderConfig `mapstructure:"primary"`
}

// PrimaryConfig returns the primary provider config, falling back to legacy flat fields.
func (g *GeneratorConfig) PrimaryConfig() *GeneratorProviderConfig {
	if g.Primary.Provider != "" {
		return &g.Primary
	}
	return &GeneratorProviderConfig{
		Provider:     g.Provider,
		APIKey:       g.APIKey,
		DefaultModel: g.DefaultModel,
		MaxTokens:    g.MaxTokens,
		TimeoutSecs:  g.TimeoutSecs,
	}
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
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

// S3Config holds AWS S3 settings.
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

// Load reads configuration from environment variables with the CARDCOMPLY_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CARDCOMPLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "cardcomply")
	v.SetDefault("db.password", "cardcomply_secret")
	v.SetDefault("db.name", "cardcomply_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "cardcomply-assets")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Extraction worker defaults
	v.SetDefault("extraction.poll_interval_secs", 10)
	v.SetDefault("extraction.max_attempts", 3)
	v.SetDefault("extraction.concurrency", 2)

	// Share link defaults
	v.SetDefault("share.secret", "change-me-in-production")
	v.SetDefault("share.expiry", "168h")
	v.SetDefault("share.issuer", "cardcomply")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@cardcomply.dev")
	v.SetDefault("email.from_name", "Card Compliance")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Analysis defaults
	v.SetDefault("analysis.issuer_catalog_path", "")
	v.SetDefault("analysis.default_issuer", "amex")
	v.SetDefault("analysis.max_images", 4)
	v.SetDefault("analysis.max_image_size_mb", 10)
	v.SetDefault("analysis.request_timeout", "150s")

	// Generator defaults (legacy flat)
	v.SetDefault("generator.provider", "claude")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.default_model", "claude-sonnet-4-20250514")
	v.SetDefault("generator.max_tokens", 2048)
	v.SetDefault("generator.timeout_secs", 120)

	// Generator primary defaults
	v.SetDefault("generator.primary.provider", "")
	v.SetDefault("generator.primary.api_key", "")
	v.SetDefault("generator.primary.default_model", "")
	v.SetDefault("generator.primary.max_tokens", 2048)
	v.SetDefault("generator.primary.timeout_secs", 120)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                     "CARDCOMPLY_SERVER_PORT",
		"server.read_timeout":             "CARDCOMPLY_SERVER_READ_TIMEOUT",
		"server.write_timeout":            "CARDCOMPLY_SERVER_WRITE_TIMEOUT",
		"server.environment":              "CARDCOMPLY_SERVER_ENVIRONMENT",
		"db.host":                         "CARDCOMPLY_DB_HOST",
		"db.port":                         "CARDCOMPLY_DB_PORT",
		"db.user":                         "CARDCOMPLY_DB_USER",
		"db.password":                     "CARDCOMPLY_DB_PASSWORD",
		"db.name":                         "CARDCOMPLY_DB_NAME",
		"db.sslmode":                      "CARDCOMPLY_DB_SSLMODE",
		"db.max_open":                     "CARDCOMPLY_DB_MAX_OPEN",
		"db.max_idle":                     "CARDCOMPLY_DB_MAX_IDLE",
		"s3.region":                       "CARDCOMPLY_S3_REGION",
		"s3.bucket":                       "CARDCOMPLY_S3_BUCKET",
		"s3.endpoint":                     "CARDCOMPLY_S3_ENDPOINT",
		"s3.access_key":                   "CARDCOMPLY_S3_ACCESS_KEY",
		"s3.secret_key":                   "CARDCOMPLY_S3_SECRET_KEY",
		"s3.max_file_size_mb":             "CARDCOMPLY_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":               "CARDCOMPLY_S3_PRESIGN_EXPIRY",
		"log.level":                       "CARDCOMPLY_LOG_LEVEL",
		"log.format":                      "CARDCOMPLY_LOG_FORMAT",
		"cors.allowed_origins":            "CARDCOMPLY_CORS_ALLOWED_ORIGINS",
		"extraction.poll_interval_secs":   "CARDCOMPLY_EXTRACTION_POLL_INTERVAL_SECS",
		"extraction.max_attempts":         "CARDCOMPLY_EXTRACTION_MAX_ATTEMPTS",
		"extraction.concurrency":          "CARDCOMPLY_EXTRACTION_CONCURRENCY",
		"share.secret":                    "CARDCOMPLY_SHARE_SECRET",
		"share.expiry":                    "CARDCOMPLY_SHARE_EXPIRY",
		"share.issuer":                    "CARDCOMPLY_SHARE_ISSUER",
		"email.provider":                  "CARDCOMPLY_EMAIL_PROVIDER",
		"email.region":                    "CARDCOMPLY_EMAIL_REGION",
		"email.from_address":              "CARDCOMPLY_EMAIL_FROM_ADDRESS",
		"email.from_name":                 "CARDCOMPLY_EMAIL_FROM_NAME",
		"email.frontend_url":              "CARDCOMPLY_EMAIL_FRONTEND_URL",
		"analysis.issuer_catalog_path":    "CARDCOMPLY_ANALYSIS_ISSUER_CATALOG_PATH",
		"analysis.default_issuer":         "CARDCOMPLY_ANALYSIS_DEFAULT_ISSUER",
		"analysis.max_images":             "CARDCOMPLY_ANALYSIS_MAX_IMAGES",
		"analysis.max_image_size_mb":      "CARDCOMPLY_ANALYSIS_MAX_IMAGE_SIZE_MB",
		"analysis.request_timeout":        "CARDCOMPLY_ANALYSIS_REQUEST_TIMEOUT",
		"generator.provider":              "CARDCOMPLY_GENERATOR_PROVIDER",
		"generator.api_key":               "CARDCOMPLY_GENERATOR_API_KEY",
		"generator.default_model":         "CARDCOMPLY_GENERATOR_DEFAULT_MODEL",
		"generator.max_tokens":            "CARDCOMPLY_GENERATOR_MAX_TOKENS",
		"generator.timeout_secs":          "CARDCOMPLY_GENERATOR_TIMEOUT_SECS",
		"generator.primary.provider":      "CARDCOMPLY_GENERATOR_PRIMARY_PROVIDER",
		"generator.primary.api_key":       "CARDCOMPLY_GENERATOR_PRIMARY_API_KEY",
		"generator.primary.default_model": "CARDCOMPLY_GENERATOR_PRIMARY_DEFAULT_MODEL",
		"generator.primary.max_tokens":    "CARDCOMPLY_GENERATOR_PRIMARY_MAX_TOKENS",
		"generator.primary.timeout_secs":  "CARDCOMPLY_GENERATOR_PRIMARY_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CARDCOMPLY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CARDCOMPLY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
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
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCSV(v.GetString("cors.allowed_origins")),
	}
	cfg.Extraction = ExtractionConfig{
		PollIntervalSecs: v.GetInt("extraction.poll_interval_secs"),
		MaxAttempts:      v.GetInt("extraction.max_attempts"),
		Concurrency:      v.GetInt("extraction.concurrency"),
	}
	cfg.Share = ShareConfig{
		Secret: v.GetString("share.secret"),
		Expiry: v.GetDuration("share.expiry"),
		Issuer: v.GetString("share.issuer"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Analysis = AnalysisConfig{
		IssuerCatalogPath: v.GetString("analysis.issuer_catalog_path"),
		DefaultIssuer:     v.GetString("analysis.default_issuer"),
		MaxImages:         v.GetInt("analysis.max_images"),
		MaxImageSizeMB:    v.GetInt64("analysis.max_image_size_mb"),
		RequestTimeout:    v.GetDuration("analysis.request_timeout"),
	}
	cfg.Generator = GeneratorConfig{
		Provider:     v.GetString("generator.provider"),
		APIKey:       v.GetString("generator.api_key"),
		DefaultModel: v.GetString("generator.default_model"),
		MaxTokens:    v.GetInt("generator.max_tokens"),
		TimeoutSecs:  v.GetInt("generator.timeout_secs"),
		Primary: GeneratorProviderConfig{
			Provider:     v.GetString("generator.primary.provider"),
			APIKey:       v.GetString("generator.primary.api_key"),
			DefaultModel: v.GetString("generator.primary.default_model"),
			MaxTokens:    v.GetInt("generator.primary.max_tokens"),
			TimeoutSecs:  v.GetInt("generator.primary.timeout_secs"),
		},
	}

	return cfg, nil
}

// splitCSV parses a comma-separated list, dropping blanks.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
