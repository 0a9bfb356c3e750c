package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/suggestions"
)

// resolveConfig loads the optional config file and fills the gaps from the
// environment and built-in defaults. Flag overrides are applied by the caller
// before validation.
func resolveConfig(path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	cfg.ApplyEnv()
	return cfg.MergeWithDefaults(config.Defaults()), nil
}

// loadDictionary returns the dictionary at path, or the embedded default
func loadDictionary(path string) (*skills.Dictionary, error) {
	if path == "" {
		return skills.Default(), nil
	}
	dict, err := skills.LoadDictionary(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load skills dictionary: %w", err)
	}
	return dict, nil
}

// buildEngine wires the dictionary, the LLM client and the suggestion adapter
// into an analysis engine. The returned cleanup closes the LLM client.
func buildEngine(ctx context.Context, cfg config.Config, onProgress analysis.ProgressCallback) (*analysis.Engine, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	dict, err := loadDictionary(cfg.SkillsPath)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var gen suggestions.Generator
	if cfg.SuggestionsEnabled() {
		llmCfg, err := cfg.LLMConfig()
		if err != nil {
			return nil, nil, err
		}
		client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		cleanup = func() {
			if err := client.Close(); err != nil {
				log.Printf("Warning: failed to close LLM client: %v", err)
			}
		}
		gen = suggestions.NewLLMGenerator(client)
	}

	engine := analysis.New(analysis.Options{
		Dictionary:    dict,
		Suggestions:   suggestions.NewAdapter(gen, cfg.Timeout()),
		PreviewLength: cfg.PreviewLength,
		OnProgress:    onProgress,
	})
	return engine, cleanup, nil
}
