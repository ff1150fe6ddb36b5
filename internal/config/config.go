// Package config holds the queryd runtime configuration, assembled
// from an optional YAML file overridden by command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/queryx/queryd/internal/exit"
)

const (
	// DefaultListen is the default listen address.
	DefaultListen = "127.0.0.1:8000"
	// DefaultRequestTimeout bounds a single request end to end.
	DefaultRequestTimeout = 30 * time.Second
	// DefaultMaxBodyBytes bounds a request body.
	DefaultMaxBodyBytes = 10 << 20
)

var (
	ErrEmptyListen     = errors.New("listen address cannot be empty")
	ErrInvalidBodySize = errors.New("max body size must be positive")
	ErrDocumentRoot    = errors.New("document root does not exist")
)

// Config represents the complete configuration for the queryd server.
type Config struct {
	Listen         string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	RateLimit      float64 // Requests per second (0 = unlimited)
	RateBurst      int
	AllowedOrigins []string
	DocumentRoot   string // Jail for load-and-search file paths ("" = unrestricted)
	Debug          bool
}

// fileConfig mirrors Config for YAML decoding.
type fileConfig struct {
	Listen         string   `yaml:"listen"`
	RequestTimeout string   `yaml:"request_timeout"`
	MaxBodyBytes   int64    `yaml:"max_body_bytes"`
	RateLimit      float64  `yaml:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	DocumentRoot   string   `yaml:"document_root"`
	Debug          bool     `yaml:"debug"`
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return ErrEmptyListen
	}
	if c.MaxBodyBytes <= 0 {
		return ErrInvalidBodySize
	}
	if c.DocumentRoot != "" {
		info, err := os.Stat(c.DocumentRoot)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrDocumentRoot, c.DocumentRoot)
		}
	}
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: no arguments provided\n\n%s", Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		configFile   = fs.String("config", "", "Path to YAML configuration file")
		listen       = fs.String("listen", DefaultListen, "Listen address")
		timeout      = fs.Duration("request-timeout", DefaultRequestTimeout, "Per-request timeout")
		maxBody      = fs.Int64("max-body-bytes", DefaultMaxBodyBytes, "Maximum request body size in bytes")
		rateLimit    = fs.Float64("rate-limit", 0, "Rate limit in requests per second (0 for unlimited)")
		rateBurst    = fs.Int("rate-burst", 1, "Rate limit burst size")
		origins      = fs.String("allowed-origins", "*", "Comma-separated list of allowed CORS origins")
		documentRoot = fs.String("document-root", "", "Directory to restrict load-and-search file paths to (empty for unrestricted)")
		debug        = fs.Bool("debug", false, "Enable debug logging")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}
	if fs.NArg() > 0 {
		return nil, exit.Errorf("Error: unexpected argument %q\n\n%s", fs.Arg(0), Usage())
	}

	config := &Config{
		Listen:         DefaultListen,
		RequestTimeout: DefaultRequestTimeout,
		MaxBodyBytes:   DefaultMaxBodyBytes,
		RateBurst:      1,
		AllowedOrigins: []string{"*"},
	}

	if *configFile != "" {
		if err := loadConfigFile(*configFile, config); err != nil {
			return nil, exit.Errorf("Error: failed to load config file: %v\n\n%s", err, Usage())
		}
	}

	// Flags given on the command line win over file values.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			config.Listen = *listen
		case "request-timeout":
			config.RequestTimeout = *timeout
		case "max-body-bytes":
			config.MaxBodyBytes = *maxBody
		case "rate-limit":
			config.RateLimit = *rateLimit
		case "rate-burst":
			config.RateBurst = *rateBurst
		case "allowed-origins":
			config.AllowedOrigins = splitOrigins(*origins)
		case "document-root":
			config.DocumentRoot = *documentRoot
		case "debug":
			config.Debug = *debug
		}
	})

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// loadConfigFile applies YAML file settings onto config.
func loadConfigFile(path string, config *Config) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(content, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.Listen != "" {
		config.Listen = fc.Listen
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("invalid request_timeout %q: %w", fc.RequestTimeout, err)
		}
		config.RequestTimeout = d
	}
	if fc.MaxBodyBytes != 0 {
		config.MaxBodyBytes = fc.MaxBodyBytes
	}
	if fc.RateLimit != 0 {
		config.RateLimit = fc.RateLimit
	}
	if fc.RateBurst != 0 {
		config.RateBurst = fc.RateBurst
	}
	if len(fc.AllowedOrigins) > 0 {
		config.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.DocumentRoot != "" {
		config.DocumentRoot = fc.DocumentRoot
	}
	if fc.Debug {
		config.Debug = true
	}
	return nil
}

func splitOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// Usage returns the complete usage documentation for queryd.
func Usage() string {
	return `queryd - pattern matching query service

Usage: queryd [options]

Options:
  --config FILE           Path to YAML configuration file
  --listen ADDR           Listen address (default: 127.0.0.1:8000)
  --request-timeout D     Per-request timeout (default: 30s)
  --max-body-bytes N      Maximum request body size in bytes (default: 10485760)
  --rate-limit N          Rate limit in requests per second (0 for unlimited)
  --rate-burst N          Rate limit burst size (default: 1)
  --allowed-origins LIST  Comma-separated CORS origins (default: *)
  --document-root DIR     Restrict load-and-search file paths to DIR
  --debug                 Enable debug logging
  -h, --help              Show this help message

Examples:
  queryd                                 # Serve on 127.0.0.1:8000
  queryd --listen :9000 --debug          # Custom port with debug logging
  queryd --config queryd.yaml            # Settings from file, flags win
  queryd --rate-limit 50 --rate-burst 10 # Throttle incoming requests
`
}
