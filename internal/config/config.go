// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonathan/resume-analyzer/internal/llm"
)

// Environment variables consulted by ApplyEnv
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvSkillsPath   = "RESUME_SKILLS_PATH"
	EnvPort         = "PORT"
)

// Config represents the analyzer configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Dictionary
	SkillsPath string `json:"skills_path,omitempty"` // JSON array or YAML list of skill terms

	// Suggestion generator
	Provider           string `json:"provider,omitempty"`           // gemini or openai
	Model              string `json:"model,omitempty"`              // Overrides the provider's standard model
	BaseURL            string `json:"base_url,omitempty"`           // OpenAI-compatible endpoint
	APIKey             string `json:"api_key,omitempty"`            // Provider API key
	SuggestionTimeout  string `json:"suggestion_timeout,omitempty"` // Go duration, e.g. "20s"
	DisableSuggestions bool   `json:"disable_suggestions,omitempty"`

	// Output
	PreviewLength int  `json:"preview_length,omitempty"` // Runes kept in text_preview
	Verbose       bool `json:"verbose,omitempty"`        // Print detailed debug information

	// Server
	Port int `json:"port,omitempty"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Provider:          string(llm.ProviderGemini),
		SuggestionTimeout: "20s",
		PreviewLength:     500,
		Port:              8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required values are not checked here; an unset API key only disables suggestions.
func (c *Config) Validate() error {
	if _, err := llm.ConfigForProvider(c.Provider); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.SuggestionTimeout != "" {
		d, err := time.ParseDuration(c.SuggestionTimeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'suggestion_timeout': %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'suggestion_timeout' must be positive")
		}
	}

	if c.PreviewLength < 0 {
		return fmt.Errorf("config error: 'preview_length' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.SkillsPath != "" {
		if _, err := os.Stat(c.SkillsPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: skills file not found: %s", c.SkillsPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.SkillsPath == "" {
		result.SkillsPath = defaults.SkillsPath
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SuggestionTimeout == "" {
		result.SuggestionTimeout = defaults.SuggestionTimeout
	}
	if result.PreviewLength == 0 {
		result.PreviewLength = defaults.PreviewLength
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills unset values from the environment. The API key variable is
// chosen by provider.
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		switch llm.Provider(c.Provider) {
		case llm.ProviderOpenAI:
			c.APIKey = os.Getenv(EnvOpenAIAPIKey)
		default:
			c.APIKey = os.Getenv(EnvGeminiAPIKey)
		}
	}
	if c.SkillsPath == "" {
		c.SkillsPath = os.Getenv(EnvSkillsPath)
	}
	if c.Port == 0 {
		if port, err := parsePort(os.Getenv(EnvPort)); err == nil {
			c.Port = port
		}
	}
}

// Timeout returns the parsed suggestion timeout, or zero when unset
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.SuggestionTimeout)
	if err != nil {
		return 0
	}
	return d
}

// LLMConfig builds the client configuration for the selected provider
func (c *Config) LLMConfig() (*llm.Config, error) {
	cfg, err := llm.ConfigForProvider(c.Provider)
	if err != nil {
		return nil, err
	}
	if c.Model != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.Model)
	}
	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	return cfg, nil
}

// SuggestionsEnabled reports whether a generator should be wired
func (c *Config) SuggestionsEnabled() bool {
	return !c.DisableSuggestions && c.APIKey != ""
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", port)
	}
	return port, nil
}
