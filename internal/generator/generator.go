// Package generator provides the text-generation boundary of the annotation
// pipeline: a prompt goes in, generated text or an error comes out. No
// streaming and no multi-turn state.
package generator

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Generator sends a single prompt to a text-generation service.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerateFunc adapts a plain function to the Generator interface.
type GenerateFunc func(ctx context.Context, prompt string) (string, error)

func (f GenerateFunc) Name() string { return "func" }

func (f GenerateFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Config selects and configures a provider.
type Config struct {
	Provider string        `mapstructure:"provider" json:"provider"`
	APIKey   string        `mapstructure:"api_key" json:"api_key"`
	Model    string        `mapstructure:"model" json:"model"`
	Models   []string      `mapstructure:"models" json:"models"`
	BaseURL  string        `mapstructure:"base_url" json:"base_url"`
	Function string        `mapstructure:"function" json:"function"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout"`
}

// Providers lists the provider names accepted by New.
var Providers = []string{"gemini", "anthropic", "ollama", "openrouter", "lambda"}

// New builds the generator named by cfg.Provider.
func New(ctx context.Context, cfg Config) (Generator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "gemini", "":
		return NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL)
	case "anthropic":
		return NewAnthropicGenerator(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case "ollama":
		models := cfg.Models
		if cfg.Model != "" {
			models = []string{cfg.Model}
		}
		return NewOllamaGenerator(cfg.BaseURL, models), nil
	case "openrouter":
		models := cfg.Models
		if cfg.Model != "" {
			models = []string{cfg.Model}
		}
		return NewOpenRouterGenerator(cfg.APIKey, cfg.BaseURL, models), nil
	case "lambda":
		return NewLambdaGenerator(ctx, cfg.Function, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown generator provider: %s", cfg.Provider)
	}
}
