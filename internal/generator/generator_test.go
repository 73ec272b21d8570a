package generator

import (
	"context"
	"testing"
)

func TestGenerateFunc(t *testing.T) {
	var got string
	gen := GenerateFunc(func(ctx context.Context, prompt string) (string, error) {
		got = prompt
		return "ok", nil
	})

	if gen.Name() != "func" {
		t.Errorf("expected 'func', got %q", gen.Name())
	}
	text, err := gen.Generate(context.Background(), "hola")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ok" || got != "hola" {
		t.Errorf("got text %q prompt %q", text, got)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantName string
		wantErr  bool
	}{
		{"ollama", Config{Provider: "ollama", Model: "llama3.2"}, "ollama", false},
		{"openrouter", Config{Provider: "OpenRouter", APIKey: "k"}, "openrouter", false},
		{"anthropic", Config{Provider: "anthropic", APIKey: "k"}, "anthropic", false},
		{"anthropic without key", Config{Provider: "anthropic"}, "", true},
		{"gemini without key", Config{Provider: "gemini"}, "", true},
		{"lambda without function", Config{Provider: "lambda"}, "", true},
		{"unknown", Config{Provider: "babelfish"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := New(context.Background(), tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got generator %q", gen.Name())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gen.Name() != tt.wantName {
				t.Errorf("expected %q, got %q", tt.wantName, gen.Name())
			}
		})
	}
}

func TestNew_OllamaSingleModel(t *testing.T) {
	gen, err := New(context.Background(), Config{Provider: "ollama", Model: "qwen2.5:7b", Models: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	models := gen.(*OllamaGenerator).Models()
	if len(models) != 1 || models[0] != "qwen2.5:7b" {
		t.Errorf("expected single model, got %v", models)
	}
}
