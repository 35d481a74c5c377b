package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host                   string
	Port                   string
	User                   string
	Password               string
	Name                   string
	SSLMode                string
	InstanceConnectionName string // Cloud SQL unix-socket connection, if set
}

// TwilioConfig holds SMS gateway credentials.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

// ExtractionConfig holds text-extraction service client settings.
type ExtractionConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// OTPConfig holds OTP lifecycle knobs.
type OTPConfig struct {
	CodeLength  int
	TTL         time.Duration
	MaxAttempts int
}

// Config is the full application configuration, loaded from the environment.
type Config struct {
	Port           string
	Environment    string
	UseMemoryStore bool

	Database   DatabaseConfig
	Twilio     TwilioConfig
	Extraction ExtractionConfig
	OTP        OTPConfig

	AWBMaxAttempts     int
	NameMatchThreshold float64
	OTPCleanupInterval time.Duration
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("USE_MEMORY_STORE", false)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "courier")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("INSTANCE_CONNECTION_NAME", "")

	v.SetDefault("TWILIO_ACCOUNT_SID", "")
	v.SetDefault("TWILIO_AUTH_TOKEN", "")
	v.SetDefault("TWILIO_FROM", "")

	v.SetDefault("EXTRACTION_URL", "")
	v.SetDefault("EXTRACTION_API_KEY", "")
	v.SetDefault("EXTRACTION_TIMEOUT", "15s")

	v.SetDefault("OTP_CODE_LENGTH", 6)
	v.SetDefault("OTP_TTL", "5m")
	v.SetDefault("OTP_MAX_ATTEMPTS", 3)
	v.SetDefault("OTP_CLEANUP_INTERVAL", "10m")

	v.SetDefault("AWB_MAX_ATTEMPTS", 10)
	v.SetDefault("NAME_MATCH_THRESHOLD", 0.6)

	cfg := &Config{
		Port:           v.GetString("PORT"),
		Environment:    v.GetString("ENVIRONMENT"),
		UseMemoryStore: v.GetBool("USE_MEMORY_STORE"),
		Database: DatabaseConfig{
			Host:                   v.GetString("DB_HOST"),
			Port:                   v.GetString("DB_PORT"),
			User:                   v.GetString("DB_USER"),
			Password:               v.GetString("DB_PASS"),
			Name:                   v.GetString("DB_NAME"),
			SSLMode:                v.GetString("DB_SSLMODE"),
			InstanceConnectionName: v.GetString("INSTANCE_CONNECTION_NAME"),
		},
		Twilio: TwilioConfig{
			AccountSID: v.GetString("TWILIO_ACCOUNT_SID"),
			AuthToken:  v.GetString("TWILIO_AUTH_TOKEN"),
			From:       v.GetString("TWILIO_FROM"),
		},
		Extraction: ExtractionConfig{
			URL:     v.GetString("EXTRACTION_URL"),
			APIKey:  v.GetString("EXTRACTION_API_KEY"),
			Timeout: v.GetDuration("EXTRACTION_TIMEOUT"),
		},
		OTP: OTPConfig{
			CodeLength:  v.GetInt("OTP_CODE_LENGTH"),
			TTL:         v.GetDuration("OTP_TTL"),
			MaxAttempts: v.GetInt("OTP_MAX_ATTEMPTS"),
		},
		AWBMaxAttempts:     v.GetInt("AWB_MAX_ATTEMPTS"),
		NameMatchThreshold: v.GetFloat64("NAME_MATCH_THRESHOLD"),
		OTPCleanupInterval: v.GetDuration("OTP_CLEANUP_INTERVAL"),
	}

	if cfg.OTP.CodeLength < 4 || cfg.OTP.CodeLength > 10 {
		return nil, fmt.Errorf("OTP_CODE_LENGTH must be between 4 and 10, got %d", cfg.OTP.CodeLength)
	}
	if cfg.OTP.MaxAttempts < 1 {
		return nil, fmt.Errorf("OTP_MAX_ATTEMPTS must be positive, got %d", cfg.OTP.MaxAttempts)
	}
	if cfg.AWBMaxAttempts < 1 {
		return nil, fmt.Errorf("AWB_MAX_ATTEMPTS must be positive, got %d", cfg.AWBMaxAttempts)
	}
	return cfg, nil
}
