package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	LLM struct {
		Provider    string
		BaseURL     string
		Model       string
		APIKey      string
		Temperature float64
		Timeout     time.Duration
		Prompt      string
	}
	Log struct {
		Level  string
		Format string
	}
}

// Load reads config from an optional .env file, an optional joe-advisor.yaml
// and the environment (JOE_ prefix), in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // optional .env; never overrides variables already set

	v := viper.New()
	v.SetEnvPrefix("JOE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("joe-advisor")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("llm.base_url", "http://localhost:11434")
	v.SetDefault("llm.model", "llama2")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", "120s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.LLM.Provider = strings.ToLower(v.GetString("llm.provider"))
	cfg.LLM.BaseURL = v.GetString("llm.base_url")
	cfg.LLM.Model = v.GetString("llm.model")
	cfg.LLM.APIKey = v.GetString("llm.api_key")
	cfg.LLM.Temperature = v.GetFloat64("llm.temperature")
	cfg.LLM.Prompt = v.GetString("llm.prompt")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	timeout, err := time.ParseDuration(v.GetString("llm.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOE_LLM_TIMEOUT: %w", err)
	}
	cfg.LLM.Timeout = timeout

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot default its way out of.
func (c *Config) Validate() error {
	if c.LLM.Provider == "" {
		return fmt.Errorf("JOE_LLM_PROVIDER is required (ollama, openai, openai-compatible)")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("JOE_LLM_MODEL is required")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("JOE_LLM_TEMPERATURE must be between 0 and 2, got %v", c.LLM.Temperature)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("JOE_LLM_TIMEOUT must be positive, got %s", c.LLM.Timeout)
	}
	return nil
}
