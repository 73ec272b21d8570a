package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/valpere/palabra/internal/lexicon"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New(t *testing.T) {
	s := newTestStore(t)

	if s == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_AddEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddEntry(ctx, "es", "come", "eat∥devour")
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty id")
	}

	entries, err := s.ListEntries(ctx, "es")
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.ID != id || e.Word != "come" || e.Meaning != "eat∥devour" || e.Lang != "es" || e.Position != 1 {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestStore_AddEntry_EmptyWord(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddEntry(context.Background(), "es", "   ", "nothing"); err == nil {
		t.Error("expected error for empty word")
	}
}

func TestStore_AddEntry_ReplacesMeaning(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id1, _ := s.AddEntry(ctx, "es", "come", "eat")
	s.AddEntry(ctx, "es", "manzana", "apple")
	id2, err := s.AddEntry(ctx, "es", "come", "eats")
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if id1 != id2 {
		t.Errorf("expected same id on update, got %q and %q", id1, id2)
	}

	dict, err := s.LoadDictionary(ctx, "es")
	if err != nil {
		t.Fatalf("LoadDictionary failed: %v", err)
	}
	want := lexicon.Dictionary{{Word: "come", Meaning: "eats"}, {Word: "manzana", Meaning: "apple"}}
	if len(dict) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(dict))
	}
	for i := range want {
		if dict[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, dict[i], want[i])
		}
	}
}

func TestStore_AddEntry_NormalizesWord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Composed and decomposed spellings are the same word.
	id1, _ := s.AddEntry(ctx, "es", "  cómo ", "how")
	id2, _ := s.AddEntry(ctx, "ES", "co\u0301mo", "how?")
	if id1 != id2 {
		t.Errorf("expected same id, got %q and %q", id1, id2)
	}

	n, err := s.Count(ctx, "es")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 entry, got %d", n)
	}
}

func TestStore_ImportEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	dict := lexicon.Dictionary{
		{Word: "come", Meaning: "eat"},
		{Word: "", Meaning: "skipped"},
		{Word: "manzana", Meaning: "apple"},
		{Word: "abogado", Meaning: "lawyer"},
	}

	n, err := s.ImportEntries(ctx, "es", dict)
	if err != nil {
		t.Fatalf("ImportEntries failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 imported, got %d", n)
	}

	loaded, _ := s.LoadDictionary(ctx, "es")
	words := make([]string, len(loaded))
	for i, e := range loaded {
		words[i] = e.Word
	}
	want := []string{"come", "manzana", "abogado"}
	for i := range want {
		if i >= len(words) || words[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, words)
		}
	}
}

func TestStore_LoadDictionary_RequiresLang(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.LoadDictionary(context.Background(), ""); err == nil {
		t.Error("expected error for empty language")
	}
}

func TestStore_DeleteEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, _ := s.AddEntry(ctx, "es", "come", "eat")

	deleted, err := s.DeleteEntry(ctx, id)
	if err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if !deleted {
		t.Error("expected deleted=true")
	}

	deleted, err = s.DeleteEntry(ctx, id)
	if err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if deleted {
		t.Error("expected deleted=false for missing id")
	}

	n, _ := s.Count(ctx, "")
	if n != 0 {
		t.Errorf("expected 0 entries, got %d", n)
	}
}

func TestStore_MultipleLanguages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.AddEntry(ctx, "es", "come", "eat")
	s.AddEntry(ctx, "pt", "come", "eats")
	s.AddEntry(ctx, "fr", "mange", "eats")

	es, _ := s.LoadDictionary(ctx, "es")
	if len(es) != 1 || es[0].Meaning != "eat" {
		t.Errorf("es: unexpected dictionary %+v", es)
	}

	pt, _ := s.LoadDictionary(ctx, "pt")
	if len(pt) != 1 || pt[0].Meaning != "eats" || pt[0].Word != "come" {
		t.Errorf("pt: unexpected dictionary %+v", pt)
	}

	all, _ := s.ListEntries(ctx, "")
	if len(all) != 3 {
		t.Errorf("expected 3 entries across languages, got %d", len(all))
	}

	n, _ := s.Count(ctx, "it")
	if n != 0 {
		t.Errorf("it: expected 0 entries, got %d", n)
	}
}

func TestStore_Lookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.AddEntry(ctx, "es", "Niño", "child")
	s.AddEntry(ctx, "es", "nino", "(not a word)")

	tests := []struct {
		word        string
		wantFound   bool
		wantMeaning string
	}{
		{"niño", true, "child"},
		{"NIÑO", true, "child"},
		{"nino", true, "(not a word)"},
		{"niña", false, ""},
	}

	for _, tt := range tests {
		e, found, err := s.Lookup(ctx, "es", tt.word)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", tt.word, err)
		}
		if found != tt.wantFound {
			t.Errorf("Lookup(%q) found = %v, want %v", tt.word, found, tt.wantFound)
			continue
		}
		if found && e.Meaning != tt.wantMeaning {
			t.Errorf("Lookup(%q) = %q, want %q", tt.word, e.Meaning, tt.wantMeaning)
		}
	}
}

func TestStore_Suggest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.AddEntry(ctx, "es", "manzana", "apple")
	s.AddEntry(ctx, "es", "manzano", "apple tree")
	s.AddEntry(ctx, "es", "abogado", "lawyer")

	got, err := s.Suggest(ctx, "es", "Manzanas", 0.7, 5)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %+v", got)
	}
	if got[0].Entry.Word != "manzana" {
		t.Errorf("expected best suggestion manzana, got %q", got[0].Entry.Word)
	}
	if got[0].Score < got[1].Score {
		t.Errorf("suggestions not sorted: %+v", got)
	}

	limited, _ := s.Suggest(ctx, "es", "manzana", 0.5, 1)
	if len(limited) != 1 {
		t.Errorf("expected 1 suggestion with limit=1, got %d", len(limited))
	}

	none, _ := s.Suggest(ctx, "es", "manzana", 0, 5)
	if none != nil {
		t.Errorf("expected nil with threshold=0, got %+v", none)
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  come  ", "come"},
		{"co\u0301mo", "cómo"},
		{"\t\nniño\t\n", "niño"},
		{"", ""},
	}

	for _, tt := range tests {
		result := normalizeText(tt.input)
		if result != tt.expected {
			t.Errorf("normalizeText(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestStringSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"come", "come", 1.0},
		{"", "", 1.0},
		{"come", "coma", 0.75},
		{"niño", "nino", 0.75},
		{"abc", "", 0.0},
	}

	for _, tt := range tests {
		if got := stringSimilarity(tt.a, tt.b); got != tt.want {
			t.Errorf("stringSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
