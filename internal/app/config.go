package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/novanode/client-portal/internal/access"
)

// Portal variants.
const (
	VariantFinance   = "finance"
	VariantMarketing = "marketing"
)

// Preset secrets used when neither PORTAL_SECRET nor PORTAL_SECRET_HASH is set.
const (
	FinanceVariantSecret   = "admin123"
	MarketingVariantSecret = "novanode"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"12h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`

	Variant    string `envconfig:"PORTAL_VARIANT" default:"finance"`
	Secret     string `envconfig:"PORTAL_SECRET"`
	SecretHash string `envconfig:"PORTAL_SECRET_HASH"`
	// Seed fixes the synthetic marketing series; zero draws a new one per request.
	Seed     uint64 `envconfig:"PORTAL_SEED" default:"0"`
	Client   string `envconfig:"PORTAL_CLIENT" default:"FitLife Gym"`
	Location string `envconfig:"PORTAL_LOCATION" default:"Hyderabad"`
	Currency string `envconfig:"PORTAL_CURRENCY" default:"₹"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields envconfig cannot.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("session secret must be provided")
	}
	if c.CSRFSecret == "" {
		return errors.New("csrf secret must be provided")
	}
	switch c.Variant {
	case VariantFinance, VariantMarketing:
	default:
		return fmt.Errorf("unknown portal variant %q", c.Variant)
	}
	if c.Secret != "" && c.SecretHash != "" {
		return errors.New("set either PORTAL_SECRET or PORTAL_SECRET_HASH, not both")
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// FinanceEnabled reports whether the Financial HQ tab and transaction form are served.
func (c *Config) FinanceEnabled() bool {
	return c != nil && c.Variant == VariantFinance
}

// Authenticator builds the password check for the configured variant.
func (c *Config) Authenticator() (access.Authenticator, error) {
	switch {
	case c.SecretHash != "":
		return access.NewHashAuthenticator(c.SecretHash)
	case c.Secret != "":
		return access.NewSecretAuthenticator(c.Secret), nil
	case c.Variant == VariantMarketing:
		return access.NewSecretAuthenticator(MarketingVariantSecret), nil
	default:
		return access.NewSecretAuthenticator(FinanceVariantSecret), nil
	}
}

// Subtitle is the client label shown under the portal header.
func (c *Config) Subtitle() string {
	switch {
	case c.Client != "" && c.Location != "":
		return c.Client + " - " + c.Location
	default:
		return c.Client
	}
}
