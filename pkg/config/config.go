// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. NAVTREE_PORT.
const Prefix = "NAVTREE"

// EnvTreeFile names the navigation declaration override.
const EnvTreeFile = Prefix + "_TREE_FILE"

// Defaults, kept in sync with the struct tags below.
const (
	DefaultPort            = 9876
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultShutdownTimeout = 5 * time.Second
)

// Config holds the service configuration.
type Config struct {
	// Port is the HTTP port.
	// Env: NAVTREE_PORT (default: 9876)
	Port int `envconfig:"PORT" default:"9876"`

	// LogLevel is one of debug, info, warn, error.
	// Env: NAVTREE_LOG_LEVEL (default: info)
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogFormat is json or text.
	// Env: NAVTREE_LOG_FORMAT (default: json)
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// TreeFile is a navigation declaration overriding the embedded one.
	// Env: NAVTREE_TREE_FILE
	TreeFile string `envconfig:"TREE_FILE"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: NAVTREE_SHUTDOWN_TIMEOUT (default: 5s)
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// Env: NAVTREE_TLS_CERT_FILE, NAVTREE_TLS_KEY_FILE
	TLSCertFile string `envconfig:"TLS_CERT_FILE"`
	TLSKeyFile  string `envconfig:"TLS_KEY_FILE"`
}

// TLSEnabled reports whether both TLS files are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Validate checks value ranges that envconfig cannot express.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("both TLS_CERT_FILE and TLS_KEY_FILE are required for TLS")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// Load reads the optional .env file at envFile, then the environment.
// A missing .env file is not an error. Variables already set in the
// environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}

	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadTreeFile returns the navigation declaration override from the
// environment or, when unset there, from the optional .env file. The rest
// of the configuration is neither read nor validated.
func LoadTreeFile(envFile string) (string, error) {
	if v, ok := os.LookupEnv(EnvTreeFile); ok {
		return v, nil
	}

	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err != nil {
		return "", nil
	}

	vals, err := godotenv.Read(envFile)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	return vals[EnvTreeFile], nil
}
