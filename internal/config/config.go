package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration parsed from environment variables.
type Config struct {
	ServerPort    string `env:"SERVER_PORT" envDefault:"5000"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"driveeasy"`

	JWTSecret      string        `env:"JWT_SECRET"`
	TokenIssuer    string        `env:"TOKEN_ISSUER" envDefault:"driveeasy"`
	TokenExpiresIn time.Duration `env:"TOKEN_EXPIRES_IN" envDefault:"24h"`

	AllowedOrigin string `env:"ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"local"`
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"uploads"`
	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3Region       string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Bucket       string `env:"S3_BUCKET"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`

	// SMTPHost doubles as the switch for the booking-confirmation mailer;
	// the mailer parses the rest of its SMTP settings itself.
	SMTPHost string `env:"SMTP_HOST"`

	// BookingConflictCheck rejects bookings whose time range intersects an
	// existing booking for the same car. Off unless explicitly enabled.
	BookingConflictCheck bool `env:"BOOKING_CONFLICT_CHECK" envDefault:"false"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks if the server configuration is valid.
func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.StorageBackend != "local" && c.StorageBackend != "s3" {
		return fmt.Errorf("STORAGE_BACKEND must be either local or s3")
	}
	if c.StorageBackend == "s3" {
		if c.S3Bucket == "" {
			return fmt.Errorf("missing S3_BUCKET environment variable")
		}
		if c.S3AccessKey == "" || c.S3SecretKey == "" {
			return fmt.Errorf("missing S3 credentials environment variables")
		}
	}

	return nil
}
