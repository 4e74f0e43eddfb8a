package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// PathEnv names an optional YAML file read before the environment.
const PathEnv = "VISION_CONFIG"

type (
	AzureConfig struct {
		APIVersion string `yaml:"api_version" env:"AZURE_VISION_API_VERSION" env-default:"v3.2"`
		Language   string `yaml:"language" env:"AZURE_VISION_LANGUAGE" env-default:"en"`
	}

	LogConfig struct {
		File       string `yaml:"file" env:"VISION_LOG_FILE"`
		Level      string `yaml:"level" env:"VISION_LOG_LEVEL" env-default:"info"`
		Format     string `yaml:"format" env:"VISION_LOG_FORMAT" env-default:"text"`
		MaxSizeMB  int    `yaml:"max_size_mb" env:"VISION_LOG_MAX_SIZE_MB" env-default:"10"`
		MaxBackups int    `yaml:"max_backups" env:"VISION_LOG_MAX_BACKUPS" env-default:"3"`
	}

	// Config holds tuning only. API keys and endpoints are typed in at the
	// prompt for every analysis and never read from here.
	Config struct {
		Backend     string        `yaml:"backend" env:"VISION_BACKEND" env-default:"azure"`
		HTTPTimeout time.Duration `yaml:"http_timeout" env:"VISION_HTTP_TIMEOUT" env-default:"60s"`

		Azure  AzureConfig `yaml:"azure"`
		Gemini struct {
			Model string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
		} `yaml:"gemini"`
		OpenAI struct {
			Model string `yaml:"model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
		} `yaml:"openai"`

		Log LogConfig `yaml:"log"`
	}
)

func Load() (*Config, error) {
	var cfg Config
	var err error
	if path := os.Getenv(PathEnv); path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))

	var errs []error
	if c.Backend == "" {
		errs = append(errs, errors.New("VISION_BACKEND is empty"))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("VISION_HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("VISION_LOG_FORMAT must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
