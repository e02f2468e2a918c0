// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/janisto/connect-provisioner/internal/service/connect"
	"github.com/janisto/connect-provisioner/internal/service/provisioning"
)

// ErrMissingInstance is returned when no Connect instance is configured.
var ErrMissingInstance = errors.New("CONNECT_INSTANCE_ID or CONNECT_ARN must be set")

// Config holds every setting read from the environment.
type Config struct {
	InstanceID  string `env:"CONNECT_INSTANCE_ID"`
	InstanceARN string `env:"CONNECT_ARN"`
	Endpoint    string `env:"CONNECT_ENDPOINT"`
	PageSize    int32  `env:"CONNECT_PROFILE_PAGE_SIZE" envDefault:"100"`

	Region          string `env:"AWS_DEFAULT_REGION"`
	FallbackRegion  string `env:"AWS_REGION"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	SessionToken    string `env:"AWS_SESSION_TOKEN"`

	ErrorModeName string `env:"PROVISION_ERROR_MODE" envDefault:"strict"`

	Port           string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads a .env file when present, then parses and validates the environment.
// Variables already set in the process take precedence over the file.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	if c.Instance() == "" {
		return ErrMissingInstance
	}
	if c.PageSize < 1 || c.PageSize > provisioning.MaxPageSize {
		return fmt.Errorf("CONNECT_PROFILE_PAGE_SIZE must be between 1 and %d, got %d", provisioning.MaxPageSize, c.PageSize)
	}
	if _, err := provisioning.ParseErrorMode(c.ErrorModeName); err != nil {
		return fmt.Errorf("PROVISION_ERROR_MODE: %w", err)
	}
	return nil
}

// Instance returns the Connect instance identifier. An instance ARN is reduced
// to its trailing identifier.
func (c *Config) Instance() string {
	if id := strings.TrimSpace(c.InstanceID); id != "" {
		return instanceFromARN(id)
	}
	return instanceFromARN(strings.TrimSpace(c.InstanceARN))
}

// AWSRegion prefers AWS_DEFAULT_REGION, then AWS_REGION, then us-east-1.
func (c *Config) AWSRegion() string {
	switch {
	case c.Region != "":
		return c.Region
	case c.FallbackRegion != "":
		return c.FallbackRegion
	default:
		return connect.DefaultRegion
	}
}

// Session returns the settings used to open the Connect client.
func (c *Config) Session() connect.SessionConfig {
	return connect.SessionConfig{
		Region:          c.AWSRegion(),
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		SessionToken:    c.SessionToken,
		Endpoint:        c.Endpoint,
	}
}

// ErrorMode returns the parsed failure emission policy. Validate has already
// rejected unknown values.
func (c *Config) ErrorMode() provisioning.ErrorMode {
	mode, _ := provisioning.ParseErrorMode(c.ErrorModeName)
	return mode
}

// ServiceOptions returns the provisioning options derived from the config.
func (c *Config) ServiceOptions() []provisioning.Option {
	return []provisioning.Option{
		provisioning.WithErrorMode(c.ErrorMode()),
		provisioning.WithPageSize(c.PageSize),
	}
}

// instanceFromARN accepts arn:aws:connect:<region>:<account>:instance/<id>.
func instanceFromARN(s string) string {
	if !strings.HasPrefix(s, "arn:") {
		return s
	}
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}
