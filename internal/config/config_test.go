package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valpere/palabra/internal/lexicon"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Generator.Provider)
	assert.Equal(t, 60*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, 1, cfg.Generator.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Generator.RetryDelay)
	assert.Equal(t, "./data/palabra.db", cfg.Dictionary.DB)
	assert.Equal(t, "es", cfg.Language.Source)
	assert.Equal(t, "en", cfg.Language.Learner)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.False(t, cfg.Output.Strict)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palabra.yaml")
	content := `
generator:
  provider: Ollama
  model: qwen2.5:7b
  base_url: http://ollama:11434
  timeout: 90s
  max_attempts: 3
dictionary:
  path: ./dict.yaml
language:
  source: pt
  learner: uk
  check_translation: true
output:
  format: HTML
  strict: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Generator.Provider)
	assert.Equal(t, "qwen2.5:7b", cfg.Generator.Model)
	assert.Equal(t, "http://ollama:11434", cfg.Generator.BaseURL)
	assert.Equal(t, 90*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, 3, cfg.Generator.MaxAttempts)
	assert.Equal(t, "./dict.yaml", cfg.Dictionary.Path)
	assert.Equal(t, "pt", cfg.Language.Source)
	assert.True(t, cfg.Language.CheckTranslation)
	assert.Equal(t, "html", cfg.Output.Format)
	assert.True(t, cfg.Output.Strict)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PALABRA_GENERATOR_PROVIDER", "anthropic")
	t.Setenv("PALABRA_GENERATOR_API_KEY", "from-env")
	t.Setenv("PALABRA_OUTPUT_FORMAT", "json")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Generator.Provider)
	assert.Equal(t, "from-env", cfg.Generator.APIKey)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoad_ProviderKeyFallback(t *testing.T) {
	t.Setenv("PALABRA_GENERATOR_PROVIDER", "openrouter")
	t.Setenv("OPENROUTER_API_KEY", "or-key")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "or-key", cfg.Generator.APIKey)
}

func TestLoad_FlagOverride(t *testing.T) {
	v := New()
	v.Set("output.strict", true)

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.True(t, cfg.Output.Strict)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load(New(), "")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.Generator.Provider = "babelfish" }},
		{"zero attempts", func(c *Config) { c.Generator.MaxAttempts = 0 }},
		{"negative timeout", func(c *Config) { c.Generator.Timeout = -time.Second }},
		{"unknown format", func(c *Config) { c.Output.Format = "pdf" }},
		{"unsupported source", func(c *Config) { c.Language.Source = "ja" }},
		{"missing learner", func(c *Config) { c.Language.Learner = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPipeline(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	cfg.Language.Source = "fr"
	cfg.Language.Learner = "uk"
	cfg.Language.CheckTranslation = true
	cfg.Output.Strict = true

	p := cfg.Pipeline(nil)

	assert.Equal(t, lexicon.French, p.Alphabet)
	assert.Equal(t, "French", p.Prompt.SourceLanguage)
	assert.Equal(t, "Ukrainian", p.Prompt.LearnerLanguage)
	assert.Equal(t, []string{"le", "la", "l'", "les"}, p.Prompt.Articles)
	assert.Equal(t, "uk", p.TranslationLang)
	assert.True(t, p.Strict)
	assert.Equal(t, 60*time.Second, p.Timeout)
}
