package detector

import (
	"testing"
)

func TestDetector_Detect(t *testing.T) {
	d := New()

	tests := []struct {
		name     string
		text     string
		wantLang string
		wantOK   bool
	}{
		{
			name:     "empty text",
			text:     "",
			wantLang: "",
			wantOK:   false,
		},
		{
			name:     "english text",
			text:     "Hello, this is a test in English.",
			wantLang: "English",
			wantOK:   true,
		},
		{
			name:     "ukrainian text",
			text:     "Привіт, це тест українською мовою.",
			wantLang: "Ukrainian",
			wantOK:   true,
		},
		{
			name:     "german text",
			text:     "Hallo, das ist ein Test auf Deutsch.",
			wantLang: "German",
			wantOK:   true,
		},
		{
			name:     "french text",
			text:     "Bonjour, ceci est un test en français.",
			wantLang: "French",
			wantOK:   true,
		},
		{
			name:     "spanish text",
			text:     "Hola, esto es una prueba en español.",
			wantLang: "Spanish",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, ok := d.Detect(tt.text)
			if ok != tt.wantOK {
				t.Errorf("Detect(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
				return
			}
			if tt.wantOK && lang.String() != tt.wantLang {
				t.Errorf("Detect(%q) = %v, want %v", tt.text, lang, tt.wantLang)
			}
		})
	}
}

func TestDetector_DetectISO(t *testing.T) {
	d := New()

	tests := []struct {
		name     string
		text     string
		wantCode string
		wantOK   bool
	}{
		{
			name:     "empty text",
			text:     "",
			wantCode: "",
			wantOK:   false,
		},
		{
			name:     "english text",
			text:     "Hello, this is a test in English.",
			wantCode: "EN",
			wantOK:   true,
		},
		{
			name:     "spanish learner sentence",
			text:     "El abogado come una manzana en la cocina.",
			wantCode: "ES",
			wantOK:   true,
		},
		{
			name:     "german text",
			text:     "Hallo, das ist ein Test auf Deutsch.",
			wantCode: "DE",
			wantOK:   true,
		},
		{
			name:     "french text",
			text:     "Bonjour, ceci est un test en français.",
			wantCode: "FR",
			wantOK:   true,
		},
		{
			name:     "spanish text",
			text:     "Hola, esto es una prueba en español.",
			wantCode: "ES",
			wantOK:   true,
		},
		{
			name:     "portuguese text",
			text:     "Olá, isto é um teste em português.",
			wantCode: "PT",
			wantOK:   true,
		},
		{
			name:     "italian text",
			text:     "Ciao, questo è un test in italiano.",
			wantCode: "IT",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := d.DetectISO(tt.text)
			if ok != tt.wantOK {
				t.Errorf("DetectISO(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
				return
			}
			if tt.wantOK && code != tt.wantCode {
				t.Errorf("DetectISO(%q) = %q, want %q", tt.text, code, tt.wantCode)
			}
		})
	}
}

func TestDetector_NewFor(t *testing.T) {
	d := NewFor("es", "en")

	code, ok := d.DetectISO("El abogado come una manzana en la cocina.")
	if !ok || code != "ES" {
		t.Errorf("DetectISO = %q, %v, want ES", code, ok)
	}

	code, ok = d.DetectISO("The lawyer eats an apple in the kitchen.")
	if !ok || code != "EN" {
		t.Errorf("DetectISO = %q, %v, want EN", code, ok)
	}
}

func TestDetector_NewFor_TooFewLanguages(t *testing.T) {
	// A single known code cannot build a restricted detector.
	d := NewFor("es", "xx")

	code, ok := d.DetectISO("Hallo, das ist ein Test auf Deutsch.")
	if !ok || code != "DE" {
		t.Errorf("DetectISO = %q, %v, want DE", code, ok)
	}
}

func TestLanguages(t *testing.T) {
	got := Languages("es", " EN ", "es", "", "zz")
	if len(got) != 2 {
		t.Fatalf("expected 2 languages, got %v", got)
	}
	if got[0].String() != "Spanish" || got[1].String() != "English" {
		t.Errorf("unexpected languages %v", got)
	}
}

func TestDetector_ShortText(t *testing.T) {
	d := New()

	code, ok := d.DetectISO("Hi")
	// Short text may or may not be detected, just check it doesn't panic
	_ = code
	_ = ok
}
