// Package config loads service configuration from a YAML file, environment
// variables, and defaults, in increasing order of precedence for the
// environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the environment variables read by Load.
const envPrefix = "WTF_"

// Config holds the full service configuration.
type Config struct {
	Server   Server   `koanf:"server"`
	Auth     Auth     `koanf:"auth"`
	Analyzer Analyzer `koanf:"analyzer"`
	Storage  Storage  `koanf:"storage"`
	Slack    Slack    `koanf:"slack"`
}

// Server configures the HTTP listener.
type Server struct {
	Listen              string        `koanf:"listen"`
	ReadTimeout         time.Duration `koanf:"readtimeout"`
	WriteTimeout        time.Duration `koanf:"writetimeout"`
	ShutdownGracePeriod time.Duration `koanf:"shutdowngraceperiod"`
	MaxBodySize         int64         `koanf:"maxbodysize"`
	Debug               bool          `koanf:"debug"`
	Pretty              bool          `koanf:"pretty"`
}

// Auth configures optional bearer token authentication. An empty secret
// disables it and every caller shares the anonymous identity.
type Auth struct {
	TokenSecret string `koanf:"tokensecret"`
}

// Analyzer configures page fetching and bulk orchestration.
type Analyzer struct {
	FetchTimeout    time.Duration `koanf:"fetchtimeout"`
	UserAgent       string        `koanf:"useragent"`
	MaxBodyBytes    int64         `koanf:"maxbodybytes"`
	BulkConcurrency int           `koanf:"bulkconcurrency"`
	BulkRate        float64       `koanf:"bulkrate"`
}

// Storage configures the SQLite record store.
type Storage struct {
	Path string `koanf:"path"`
}

// Slack configures webhook notifications for completed bulk jobs.
type Slack struct {
	WebhookURL     string        `koanf:"webhookurl"`
	RequestTimeout time.Duration `koanf:"requesttimeout"`
}

// defaults returns the configuration used when nothing overrides it.
func defaults() *Config {
	return &Config{
		Server: Server{
			Listen:              ":8080",
			ReadTimeout:         30 * time.Second,
			WriteTimeout:        30 * time.Second,
			ShutdownGracePeriod: 10 * time.Second,
			MaxBodySize:         1 << 20,
		},
		Analyzer: Analyzer{
			FetchTimeout:    30 * time.Second,
			MaxBodyBytes:    5 << 20,
			BulkConcurrency: 4,
			BulkRate:        5,
		},
		Storage: Storage{
			Path: "./data/wtf.db",
		},
		Slack: Slack{
			RequestTimeout: 10 * time.Second,
		},
	}
}

// Load reads configuration from the given YAML file (when it exists) and
// WTF_-prefixed environment variables layered over the defaults.
// Environment variables use underscores for nesting, e.g.
// WTF_SERVER_LISTEN or WTF_STORAGE_PATH.
func Load(cfgPath *string) (*Config, error) {
	k := koanf.New(".")

	cfg := defaults()

	if cfgPath != nil && *cfgPath != "" {
		if _, err := os.Stat(*cfgPath); err == nil {
			if err := k.Load(file.Provider(*cfgPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", *cfgPath, err)
			}
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	return cfg, nil
}
