package llm

import (
	"fmt"
	"net/http"
	"os"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds settings for the README generator, read from the environment.
type Config struct {
	APIKey      string        `env:"OPENAI_API_KEY"`
	BaseURL     string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	Model       string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	Temperature float64       `env:"OPENAI_TEMPERATURE" envDefault:"0.2"`
	Timeout     time.Duration `env:"OPENAI_TIMEOUT" envDefault:"60s"`
}

// LoadDotEnv loads KEY=VALUE pairs from files into the process environment
// without overriding variables that are already set. With no arguments it
// reads .env in the working directory. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// LoadConfig parses Config from the process environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing LLM config: %w", err)
	}
	return &cfg, nil
}

// Enabled reports whether an API key is configured.
func (c *Config) Enabled() bool {
	return c.APIKey != ""
}

// NewGenerator builds a TextGenerator from the config, or returns nil when no
// API key is configured.
func (c *Config) NewGenerator() TextGenerator {
	if !c.Enabled() {
		return nil
	}
	return NewOpenAI(c.APIKey,
		WithBaseURL(c.BaseURL),
		WithModel(c.Model),
		WithTemperature(c.Temperature),
		WithHTTPClient(&http.Client{Timeout: c.Timeout}),
	)
}
