package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Mode selects how the counterpart side of the filter is interpreted.
type Mode string

const (
	// ModePair matches correspondence with one exact counterpart address.
	ModePair Mode = "pair"
	// ModeDomain matches correspondence with any address under a domain suffix.
	ModeDomain Mode = "domain"
)

// Config holds everything a sync run needs: the two-party filter, the
// database location, and the OAuth credential files.
type Config struct {
	PersonalAddress string `json:"personalAddress"`
	Counterpart     string `json:"counterpart"`
	Mode            Mode   `json:"mode"`
	DatabasePath    string `json:"databasePath"`
	CredentialsPath string `json:"credentialsPath"`
	TokenPath       string `json:"tokenPath"`
	LogLevel        string `json:"logLevel"`
}

// Load builds the configuration in three layers: defaults, an optional JSON
// config file, and environment variables (a .env file is honored if present).
// Environment variables win over the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	cfg := &Config{
		Mode:            ModePair,
		DatabasePath:    "emails.db",
		CredentialsPath: "credentials.json",
		TokenPath:       "token.json",
		LogLevel:        "info",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file %s: %w", path, err)
			}
		} else if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.PersonalAddress = getEnv("SYNC_PERSONAL_ADDRESS", cfg.PersonalAddress)
	cfg.Counterpart = getEnv("SYNC_COUNTERPART", cfg.Counterpart)
	cfg.Mode = Mode(getEnv("SYNC_MODE", string(cfg.Mode)))
	cfg.DatabasePath = getEnv("SYNC_DB_PATH", cfg.DatabasePath)
	cfg.CredentialsPath = getEnv("GMAIL_CREDENTIALS_FILE", cfg.CredentialsPath)
	cfg.TokenPath = getEnv("GMAIL_TOKEN_FILE", cfg.TokenPath)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	cfg.PersonalAddress = strings.ToLower(strings.TrimSpace(cfg.PersonalAddress))
	cfg.Counterpart = strings.ToLower(strings.TrimSpace(cfg.Counterpart))
	cfg.Mode = Mode(strings.ToLower(strings.TrimSpace(string(cfg.Mode))))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the filter fields. Address syntax is deliberately not
// checked here; a malformed address simply never matches during
// classification.
func (c *Config) Validate() error {
	if c.PersonalAddress == "" {
		return fmt.Errorf("personal address is required (SYNC_PERSONAL_ADDRESS)")
	}
	if c.Counterpart == "" {
		return fmt.Errorf("counterpart address or domain is required (SYNC_COUNTERPART)")
	}
	switch c.Mode {
	case ModePair:
	case ModeDomain:
		if !strings.HasPrefix(c.Counterpart, "@") {
			return fmt.Errorf("domain mode counterpart must start with '@', got %q", c.Counterpart)
		}
	default:
		return fmt.Errorf("unknown sync mode %q (want %q or %q)", c.Mode, ModePair, ModeDomain)
	}
	return nil
}

// NewLogger configures a console zerolog logger at the configured level.
func (c *Config) NewLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger().
		Level(level)
}

// getEnv gets an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
