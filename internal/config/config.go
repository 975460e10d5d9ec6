// Package config holds the server configuration. Values come from flags,
// then environment variables, then defaults; an optional .env file is loaded
// into the environment first.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// Config is the server configuration.
type Config struct {
	Listen      string        `help:"Listen address." default:":8080" env:"LISTEN_ADDR"`
	DBPath      string        `help:"Path to the SQLite database file." default:"./data/shoppinglist.db" env:"DB_PATH" name:"db-path"`
	JWTSecret   string        `help:"Secret used to sign session tokens." env:"JWT_SECRET" name:"jwt-secret"`
	TokenTTL    time.Duration `help:"Session token lifetime." default:"24h" env:"TOKEN_TTL" name:"token-ttl"`
	LogLevel    string        `help:"Log level." default:"info" enum:"debug,info,warn,error" env:"LOG_LEVEL"`
	MetricsPath string        `help:"Path the Prometheus metrics are served on." default:"/metrics" env:"METRICS_PATH"`
	CORSOrigins []string      `help:"Allowed CORS origins." default:"*" env:"CORS_ORIGINS" name:"cors-origins"`
}

// Validate checks values kong cannot check on its own.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("jwt secret is required (--jwt-secret or JWT_SECRET)")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// LoadDotEnv loads variables from the given files into the environment
// without overriding variables that are already set. Missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
		slog.Debug("Loaded environment file", "path", f)
	}
	return nil
}

// Parse loads .env, parses args into a Config and validates it.
func Parse(args []string, options ...kong.Option) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	var cfg Config
	options = append([]kong.Option{
		kong.Name("shoppinglist"),
		kong.Description("Shopping list aggregation and ledger server."),
	}, options...)
	parser, err := kong.New(&cfg, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
