package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application, loaded from the
// environment. Redis, RabbitMQ and SMTP are optional; leaving their
// settings empty disables the corresponding feature.
type Config struct {
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`

	// AdminEmail is the single privileged address. The derived admin flag
	// is an exact, case-sensitive match against it.
	AdminEmail string `mapstructure:"ADMIN_EMAIL"`

	ClientURL string `mapstructure:"CLIENT_URL"`

	// ContactTimeoutSeconds bounds a contact-form write; whichever of the
	// write and the timer settles first wins.
	ContactTimeoutSeconds int `mapstructure:"CONTACT_TIMEOUT_SECONDS"`

	RedisAddress  string `mapstructure:"REDIS_ADDRESS"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	AMQPURL   string `mapstructure:"AMQP_URL"`
	AMQPQueue string `mapstructure:"AMQP_QUEUE"`

	SMTPHost   string `mapstructure:"SMTP_HOST"`
	SMTPPort   string `mapstructure:"SMTP_PORT"`
	SMTPUser   string `mapstructure:"SMTP_USER"`
	SMTPPass   string `mapstructure:"SMTP_PASS"`
	NotifyFrom string `mapstructure:"NOTIFY_FROM"`
	NotifyTo   string `mapstructure:"NOTIFY_TO"`
}

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("CONTACT_TIMEOUT_SECONDS", 10)
	viper.SetDefault("AMQP_QUEUE", "contact-messages")
	viper.SetDefault("SMTP_PORT", "2525")

	for _, key := range []string{
		"PORT", "GIN_MODE",
		"FIREBASE_PROJECT_ID", "GOOGLE_APPLICATION_CREDENTIALS", "FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
		"ADMIN_EMAIL", "CLIENT_URL", "CONTACT_TIMEOUT_SECONDS",
		"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB",
		"AMQP_URL", "AMQP_QUEUE",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "NOTIFY_FROM", "NOTIFY_TO",
	} {
		viper.BindEnv(key)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	if cfg.AdminEmail == "" {
		return nil, errors.New("ADMIN_EMAIL is required")
	}
	if cfg.ContactTimeoutSeconds <= 0 {
		return nil, errors.New("CONTACT_TIMEOUT_SECONDS must be positive")
	}
	// Credentials may be absent entirely, in which case the Firebase SDK
	// falls back to Application Default Credentials.

	if cfg.NotifyTo == "" {
		cfg.NotifyTo = cfg.AdminEmail
	}
	if cfg.NotifyFrom == "" {
		cfg.NotifyFrom = cfg.SMTPUser
	}

	return &cfg, nil
}
