// Package config loads runtime settings from .env, an optional YAML file and
// the environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jbdamask/dinebot/pkg/llm"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "dinebot.yaml"

type Config struct {
	Provider       llm.Provider  `yaml:"provider"`
	APIKey         string        `yaml:"-"`
	Model          string        `yaml:"model"`
	BaseURL        string        `yaml:"base_url"`
	DataDir        string        `yaml:"data_dir"`
	Addr           string        `yaml:"addr"`
	LogLevel       string        `yaml:"log_level"`
	LogFormat      string        `yaml:"log_format"`
	RedisURL       string        `yaml:"redis_url"`
	RabbitMQURL    string        `yaml:"rabbitmq_url"`
	TranscriptDir  string        `yaml:"transcript_dir"`
	RequestTimeout time.Duration `yaml:"-"`

	// RequestTimeoutSeconds is the YAML spelling of RequestTimeout.
	RequestTimeoutSeconds int `yaml:"request_timeout"`
}

func defaults() *Config {
	return &Config{
		Provider:  llm.ProviderGroq,
		DataDir:   "./data",
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load builds the configuration. A missing .env file is ignored, as is a
// missing DefaultFile; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.finish()
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("invalid request_timeout: %d", c.RequestTimeoutSeconds)
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Model, "DINEBOT_MODEL")
	setString(&c.BaseURL, "DINEBOT_BASE_URL")
	setString(&c.DataDir, "DINEBOT_DATA_DIR")
	setString(&c.Addr, "DINEBOT_ADDR")
	setString(&c.LogLevel, "DINEBOT_LOG_LEVEL")
	setString(&c.LogFormat, "DINEBOT_LOG_FORMAT")
	setString(&c.RedisURL, "REDIS_URL")
	setString(&c.RabbitMQURL, "RABBITMQ_URL")
	setString(&c.TranscriptDir, "DINEBOT_TRANSCRIPT_DIR")

	if v := os.Getenv("DINEBOT_PROVIDER"); v != "" {
		c.Provider = llm.Provider(v)
	}

	if v := os.Getenv("DINEBOT_REQUEST_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DINEBOT_REQUEST_TIMEOUT: %w", err)
		}
		if secs < 0 {
			return fmt.Errorf("invalid DINEBOT_REQUEST_TIMEOUT: %d", secs)
		}
		c.RequestTimeout = time.Duration(secs) * time.Second
	}

	if env := llm.APIKeyEnv(c.Provider); env != "" {
		c.APIKey = os.Getenv(env)
	}
	return nil
}

func (c *Config) finish() {
	if c.Model == "" {
		c.Model = llm.DefaultModel(c.Provider)
	}
	if c.TranscriptDir == "" {
		c.TranscriptDir = filepath.Join(c.DataDir, "transcripts")
	}
}

// Offline reports whether no model backend is configured.
func (c *Config) Offline() bool {
	return c.APIKey == "" || c.Provider == llm.ProviderOffline
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
