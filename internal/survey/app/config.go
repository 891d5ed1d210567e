package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store/drivers/sqlite"
	"github.com/aussiebroadwan/qasurvey/pkg/httpx"
	"github.com/aussiebroadwan/qasurvey/pkg/jwtx"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config struct {
	Port                 int           `toml:"port"`                  // HTTP server port (default: 8080)
	Env                  string        `toml:"env"`                   // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        `toml:"log_level"`             // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        `toml:"log_format"`            // Log format (json, text) (default: json)
	ShutdownGracePeriod  time.Duration `toml:"shutdown_grace_period"` // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration `toml:"housekeeping_interval"` // Expired lockout sweep interval (default: 1m)

	StoreDriver string `toml:"store_driver"` // memory or sqlite (default: memory)
	DatabaseDSN string `toml:"database_dsn"` // SQLite DSN (default: in-memory)

	TokenAlgorithm string `toml:"token_algorithm"` // HS256 or EdDSA (default: HS256)
	TokenSecret    string `toml:"token_secret"`    // HS256 secret, generated at boot when empty
	TokenKeyFile   string `toml:"token_key_file"`  // EdDSA PKCS8 PEM key, generated at boot when empty
	TokenIssuer    string `toml:"token_issuer"`    // iss claim (default: qasurvey)

	Pepper     string `toml:"pepper"`      // Optional password pepper
	PepperFile string `toml:"pepper_file"` // Optional file holding the pepper; wins over Pepper

	Admin      AdminConfig      `toml:"admin"`
	RateLimits RateLimitsConfig `toml:"rate_limits"`
}

// AdminConfig seeds the first administrator into an empty store. Leaving
// Email empty disables the seed.
type AdminConfig struct {
	Name       string `toml:"name"`
	Email      string `toml:"email"`
	Password   string `toml:"password"` // generated and logged once when empty
	NationalID string `toml:"national_id"`
}

type RateLimitsConfig struct {
	Login    httpx.RateLimitConfig `toml:"login"`
	Register httpx.RateLimitConfig `toml:"register"`
	API      httpx.RateLimitConfig `toml:"api"`
}

// DefaultConfig is the configuration before any file or environment
// overrides.
func DefaultConfig() Config {
	return Config{
		Port:                 8080,
		Env:                  "dev",
		LogLevel:             "info",
		LogFormat:            "json",
		ShutdownGracePeriod:  10 * time.Second,
		HousekeepingInterval: time.Minute,
		StoreDriver:          DriverMemory,
		DatabaseDSN:          sqlite.MemoryDSN,
		TokenAlgorithm:       jwtx.AlgHS256,
		TokenIssuer:          "qasurvey",
		RateLimits: RateLimitsConfig{
			Login:    httpx.LoginLimit,
			Register: httpx.RegisterLimit,
			API:      httpx.APILimit,
		},
	}
}

// LoadConfig builds the configuration from defaults, then the TOML file
// named by SURVEY_CONFIG_FILE when set, then environment variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("SURVEY_CONFIG_FILE"); path != "" {
		if err := LoadTOML(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML overlays the file at path onto cfg. Keys absent from the file
// keep their current value; unknown keys are an error.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnvOverrides replaces any field whose environment variable is set.
func (c *Config) ApplyEnvOverrides() {
	c.Port = getEnvIntOrDefault("PORT", c.Port)
	c.Env = getEnvOrDefault("ENV", c.Env)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnvOrDefault("LOG_FORMAT", c.LogFormat)
	c.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", c.ShutdownGracePeriod)
	c.HousekeepingInterval = getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", c.HousekeepingInterval)

	c.StoreDriver = getEnvOrDefault("SURVEY_STORE_DRIVER", c.StoreDriver)
	c.DatabaseDSN = getEnvOrDefault("SURVEY_DATABASE_DSN", c.DatabaseDSN)

	c.TokenAlgorithm = getEnvOrDefault("SURVEY_TOKEN_ALGORITHM", c.TokenAlgorithm)
	c.TokenSecret = getEnvOrDefault("SURVEY_TOKEN_SECRET", c.TokenSecret)
	c.TokenKeyFile = getEnvOrDefault("SURVEY_TOKEN_KEY_FILE", c.TokenKeyFile)
	c.TokenIssuer = getEnvOrDefault("SURVEY_TOKEN_ISSUER", c.TokenIssuer)

	c.Pepper = getEnvOrDefault("SURVEY_PEPPER", c.Pepper)
	c.PepperFile = getEnvOrDefault("SURVEY_PEPPER_FILE", c.PepperFile)

	c.Admin.Name = getEnvOrDefault("SURVEY_ADMIN_NAME", c.Admin.Name)
	c.Admin.Email = getEnvOrDefault("SURVEY_ADMIN_EMAIL", c.Admin.Email)
	c.Admin.Password = getEnvOrDefault("SURVEY_ADMIN_PASSWORD", c.Admin.Password)
	c.Admin.NationalID = getEnvOrDefault("SURVEY_ADMIN_NATIONAL_ID", c.Admin.NationalID)
}

// Validate normalizes enumerated settings and rejects impossible ones.
func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}

	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q (want %s or %s)", c.StoreDriver, DriverMemory, DriverSQLite))
	}

	alg := jwtx.NormalizeAlg(c.TokenAlgorithm)
	if alg == "" {
		errs = append(errs, fmt.Errorf("unsupported token algorithm %q (want %s or %s)", c.TokenAlgorithm, jwtx.AlgHS256, jwtx.AlgEdDSA))
	}
	c.TokenAlgorithm = alg

	if c.TokenSecret != "" && len(c.TokenSecret) < jwtx.MinHS256SecretSize {
		errs = append(errs, fmt.Errorf("token secret must be at least %d bytes", jwtx.MinHS256SecretSize))
	}
	if c.TokenIssuer == "" {
		errs = append(errs, errors.New("token issuer must not be empty"))
	}

	c.RateLimits.Login = c.RateLimits.Login.Or(httpx.LoginLimit)
	c.RateLimits.Register = c.RateLimits.Register.Or(httpx.RegisterLimit)
	c.RateLimits.API = c.RateLimits.API.Or(httpx.APILimit)

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
