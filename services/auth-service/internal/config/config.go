package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// AuthServiceConfig holds the runtime configuration of the auth service.
type AuthServiceConfig struct {
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`

	MongoURI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"campusroom"`

	// StorageBucket is the object store bucket holding identity documents.
	StorageBucket string `env:"STORAGE_BUCKET" envDefault:"student"`

	// PhonePattern is the national-mobile pattern a phone number must match
	// before a verification code is issued.
	PhonePattern string `env:"PHONE_PATTERN" envDefault:"^\\+237[0-9]{9}$"`

	Token TokenConfig
}

// TokenConfig holds the signing secrets and lifetimes of the issued tokens.
type TokenConfig struct {
	Issuer                      string        `env:"TOKEN_ISSUER"                    envDefault:"campusroom"`
	SessionTokenSecret          string        `env:"SESSION_TOKEN_SECRET"`
	SessionTokenExpiresIn       time.Duration `env:"SESSION_TOKEN_EXPIRES_IN"        envDefault:"720h"`
	PasswordResetTokenSecret    string        `env:"PASSWORD_RESET_TOKEN_SECRET"`
	PasswordResetTokenExpiresIn time.Duration `env:"PASSWORD_RESET_TOKEN_EXPIRES_IN" envDefault:"15m"`
}

// New parses the configuration from environment variables and terminates the
// process when it is unusable.
func New(logger *zerolog.Logger) *AuthServiceConfig {
	cfg, err := env.ParseAs[AuthServiceConfig]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate auth service configuration")
	}

	return &cfg
}

// validate checks if the configuration is valid.
func (c *AuthServiceConfig) validate() error {
	if c.Token.SessionTokenSecret == "" {
		return fmt.Errorf("missing SESSION_TOKEN_SECRET environment variable")
	}
	if c.Token.PasswordResetTokenSecret == "" {
		return fmt.Errorf("missing PASSWORD_RESET_TOKEN_SECRET environment variable")
	}
	if _, err := regexp.Compile(c.PhonePattern); err != nil {
		return fmt.Errorf("invalid PHONE_PATTERN: %w", err)
	}

	return nil
}
