package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Sink selection values.
const (
	SinkPostgres = "postgres"
	SinkKafka    = "kafka"
	SinkNone     = "none"
)

// Source is one HURDAT2 input file. Basin is an optional operator label used
// only in logs; the data carries its own basin codes.
type Source struct {
	Path  string `yaml:"path"`
	Basin string `yaml:"basin"`
}

// Config holds all service settings, populated from environment variables.
type Config struct {
	Inputs []Source
	Sink   string

	PostgresDSN string

	KafkaBrokers []string
	KafkaTopic   string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. Input files come from INPUT_PATHS (comma separated) or from a
// YAML manifest named by SOURCES_FILE; at least one is required.
func Load() (*Config, error) {
	shutdownTimeout, err := parseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	inputs, err := loadInputs()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Inputs:          inputs,
		Sink:            envOrDefault("SINK", SinkNone),
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		KafkaBrokers:    splitAndTrim(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:      envOrDefault("KAFKA_TOPIC", "hurdat2-records"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if len(cfg.Inputs) == 0 {
		return nil, errors.New("INPUT_PATHS or SOURCES_FILE is required")
	}
	switch cfg.Sink {
	case SinkPostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("SINK is postgres but POSTGRES_DSN is not set")
		}
	case SinkKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("SINK is kafka but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("SINK is kafka but KAFKA_TOPIC is empty")
		}
	case SinkNone:
	default:
		return nil, fmt.Errorf("unknown SINK %q (want postgres, kafka, or none)", cfg.Sink)
	}

	return cfg, nil
}

func loadInputs() ([]Source, error) {
	if paths := os.Getenv("INPUT_PATHS"); paths != "" {
		var inputs []Source
		for _, p := range splitAndTrim(paths) {
			inputs = append(inputs, Source{Path: p})
		}
		return inputs, nil
	}

	manifestPath := os.Getenv("SOURCES_FILE")
	if manifestPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read SOURCES_FILE: %w", err)
	}
	var manifest struct {
		Sources []Source `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse SOURCES_FILE: %w", err)
	}
	for _, src := range manifest.Sources {
		if src.Path == "" {
			return nil, errors.New("SOURCES_FILE entry is missing a path")
		}
	}
	return manifest.Sources, nil
}

func parseShutdownTimeout() (time.Duration, error) {
	raw := envOrDefault("SHUTDOWN_TIMEOUT", "10s")
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q", raw)
	}
	return d, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
