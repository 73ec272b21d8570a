// Package config loads palabra settings from an optional YAML file,
// PALABRA_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/valpere/palabra/internal/generator"
	"github.com/valpere/palabra/internal/lexicon"
	"github.com/valpere/palabra/internal/orchestrator"
	"github.com/valpere/palabra/internal/prompt"
)

const EnvPrefix = "PALABRA"

// Formats lists the accepted output formats.
var Formats = []string{"text", "json", "html"}

type Config struct {
	Generator  GeneratorConfig  `mapstructure:"generator"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Language   LanguageConfig   `mapstructure:"language"`
	Output     OutputConfig     `mapstructure:"output"`
	Reference  ReferenceConfig  `mapstructure:"reference"`
	Log        LogConfig        `mapstructure:"log"`
}

type GeneratorConfig struct {
	generator.Config `mapstructure:",squash"`
	MaxAttempts      int           `mapstructure:"max_attempts"`
	RetryDelay       time.Duration `mapstructure:"retry_delay"`
}

type DictionaryConfig struct {
	// Path is a JSON or YAML dictionary file. It wins over DB when both are set.
	Path string `mapstructure:"path"`
	DB   string `mapstructure:"db"`
}

type LanguageConfig struct {
	Source  string `mapstructure:"source"`
	Learner string `mapstructure:"learner"`
	// CheckTranslation logs a warning when the translation is not in Learner.
	CheckTranslation bool `mapstructure:"check_translation"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
	Strict bool   `mapstructure:"strict"`
}

type ReferenceConfig struct {
	Credentials string `mapstructure:"credentials"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// providerKeyEnv names the conventional API key variable of each provider,
// consulted when generator.api_key is not set.
var providerKeyEnv = map[string]string{
	"gemini":     "GEMINI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("generator.provider", "gemini")
	v.SetDefault("generator.model", "")
	v.SetDefault("generator.models", []string{})
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.base_url", "")
	v.SetDefault("generator.function", "")
	v.SetDefault("generator.timeout", 60*time.Second)
	v.SetDefault("generator.max_attempts", 1)
	v.SetDefault("generator.retry_delay", 2*time.Second)

	v.SetDefault("dictionary.path", "")
	v.SetDefault("dictionary.db", "./data/palabra.db")

	v.SetDefault("language.source", "es")
	v.SetDefault("language.learner", "en")
	v.SetDefault("language.check_translation", false)

	v.SetDefault("output.format", "text")
	v.SetDefault("output.strict", false)

	v.SetDefault("reference.credentials", "")

	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads path (when non-empty) into v and decodes the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Generator.Provider = strings.ToLower(strings.TrimSpace(cfg.Generator.Provider))
	if cfg.Generator.APIKey == "" {
		if env, ok := providerKeyEnv[cfg.Generator.Provider]; ok {
			cfg.Generator.APIKey = os.Getenv(env)
		}
	}
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))

	return &cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if !slices.Contains(generator.Providers, c.Generator.Provider) {
		return fmt.Errorf("unknown generator provider %q (want one of %s)",
			c.Generator.Provider, strings.Join(generator.Providers, ", "))
	}
	if c.Generator.MaxAttempts < 1 {
		return fmt.Errorf("generator.max_attempts must be at least 1, got %d", c.Generator.MaxAttempts)
	}
	if c.Generator.Timeout < 0 {
		return fmt.Errorf("generator.timeout must not be negative")
	}
	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("unknown output format %q (want one of %s)",
			c.Output.Format, strings.Join(Formats, ", "))
	}
	if _, ok := lexicon.AlphabetFor(c.Language.Source); !ok {
		return fmt.Errorf("unsupported source language %q", c.Language.Source)
	}
	if c.Language.Learner == "" {
		return fmt.Errorf("language.learner is required")
	}
	return nil
}

// Pipeline builds the orchestrator settings for the configured languages.
func (c *Config) Pipeline(logger *zap.Logger) orchestrator.Config {
	alphabet, _ := lexicon.AlphabetFor(c.Language.Source)

	opts := prompt.Options{
		SourceLanguage:  prompt.LanguageName(c.Language.Source),
		LearnerLanguage: prompt.LanguageName(c.Language.Learner),
	}
	if p, ok := prompt.ProfileFor(c.Language.Source); ok {
		opts.Articles = p.Articles
	}

	cfg := orchestrator.Config{
		Timeout:     c.Generator.Timeout,
		MaxAttempts: c.Generator.MaxAttempts,
		RetryDelay:  c.Generator.RetryDelay,
		Strict:      c.Output.Strict,
		Alphabet:    alphabet,
		Prompt:      opts,
		Logger:      logger,
	}
	if c.Language.CheckTranslation {
		cfg.TranslationLang = c.Language.Learner
	}
	return cfg
}
