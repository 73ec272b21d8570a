package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/palabra/internal/lexicon"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	-- dictionary_entries holds the learner's local dictionary, one row per headword.
	-- position keeps insertion order, which decides which entry wins on lookup.
	CREATE TABLE IF NOT EXISTS dictionary_entries (
		id TEXT PRIMARY KEY,
		lang TEXT NOT NULL,
		word TEXT NOT NULL,
		meaning TEXT NOT NULL,
		position INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(lang, word)
	);

	CREATE INDEX IF NOT EXISTS idx_dictionary_order ON dictionary_entries(lang, position);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Entry is a row of the dictionary table.
type Entry struct {
	ID        string    `json:"id"`
	Lang      string    `json:"lang"`
	Word      string    `json:"word"`
	Meaning   string    `json:"meaning"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// Suggestion is an entry close to a looked-up word.
type Suggestion struct {
	Entry Entry   `json:"entry"`
	Score float64 `json:"score"`
}

const upsertEntry = `
	INSERT INTO dictionary_entries (id, lang, word, meaning, position)
	VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM dictionary_entries WHERE lang = ?))
	ON CONFLICT(lang, word) DO UPDATE SET meaning = excluded.meaning, updated_at = CURRENT_TIMESTAMP
	RETURNING id`

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func addEntry(ctx context.Context, q queryRower, lang, word, meaning string) (string, error) {
	lang = normalizeLang(lang)
	word = normalizeText(word)
	if word == "" {
		return "", fmt.Errorf("word is empty")
	}

	var id string
	err := q.QueryRowContext(ctx, upsertEntry, uuid.New().String(), lang, word, meaning, lang).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to save %q: %w", word, err)
	}
	return id, nil
}

// AddEntry inserts a word, or replaces the meaning of an existing one while
// keeping its position. It returns the entry ID.
func (s *Store) AddEntry(ctx context.Context, lang, word, meaning string) (string, error) {
	return addEntry(ctx, s.db, lang, word, meaning)
}

// ImportEntries adds every entry of dict in one transaction and returns the
// number of entries written.
func (s *Store) ImportEntries(ctx context.Context, lang string, dict lexicon.Dictionary) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	n := 0
	for _, e := range dict {
		if normalizeText(e.Word) == "" {
			continue
		}
		if _, err := addEntry(ctx, tx, lang, e.Word, e.Meaning); err != nil {
			return 0, err
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return n, nil
}

// ListEntries returns the entries of a language in dictionary order. An
// empty lang lists every language.
func (s *Store) ListEntries(ctx context.Context, lang string) ([]Entry, error) {
	query := `SELECT id, lang, word, meaning, position, created_at FROM dictionary_entries`
	var args []interface{}
	if lang != "" {
		query += ` WHERE lang = ?`
		args = append(args, normalizeLang(lang))
	}
	query += ` ORDER BY lang, position`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Lang, &e.Word, &e.Meaning, &e.Position, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LoadDictionary returns a language's entries as a lexicon.Dictionary.
func (s *Store) LoadDictionary(ctx context.Context, lang string) (lexicon.Dictionary, error) {
	if lang == "" {
		return nil, fmt.Errorf("language is required")
	}

	entries, err := s.ListEntries(ctx, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}

	dict := make(lexicon.Dictionary, 0, len(entries))
	for _, e := range entries {
		dict = append(dict, lexicon.Entry{Word: e.Word, Meaning: e.Meaning})
	}
	return dict, nil
}

// DeleteEntry removes an entry by ID and reports whether it existed.
func (s *Store) DeleteEntry(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM dictionary_entries WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the number of entries for a language, or for all languages
// when lang is empty.
func (s *Store) Count(ctx context.Context, lang string) (int, error) {
	query := `SELECT COUNT(*) FROM dictionary_entries`
	var args []interface{}
	if lang != "" {
		query += ` WHERE lang = ?`
		args = append(args, normalizeLang(lang))
	}

	var n int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// Lookup returns the first entry, in dictionary order, whose word equals
// word ignoring case. Diacritics are significant.
func (s *Store) Lookup(ctx context.Context, lang, word string) (*Entry, bool, error) {
	entries, err := s.ListEntries(ctx, lang)
	if err != nil {
		return nil, false, err
	}

	word = normalizeText(word)
	for _, e := range entries {
		if strings.EqualFold(e.Word, word) {
			return &e, true, nil
		}
	}
	return nil, false, nil
}

// Suggest returns up to limit entries whose word has at least threshold
// similarity (0–1) to word, best first. Words longer than 100 runes are not
// fuzzy-matched.
func (s *Store) Suggest(ctx context.Context, lang, word string, threshold float64, limit int) ([]Suggestion, error) {
	if threshold <= 0 || limit <= 0 {
		return nil, nil
	}

	normalized := strings.ToLower(normalizeText(word))
	const maxFuzzyRunes = 100
	if len([]rune(normalized)) > maxFuzzyRunes {
		return nil, nil
	}

	entries, err := s.ListEntries(ctx, lang)
	if err != nil {
		return nil, err
	}

	var suggestions []Suggestion
	for _, e := range entries {
		candidate := strings.ToLower(e.Word)

		// Quick length pre-filter: if the length difference alone makes it
		// impossible to reach the threshold, skip the expensive edit distance.
		ls, lr := len([]rune(normalized)), len([]rune(candidate))
		maxL := ls
		if lr > maxL {
			maxL = lr
		}
		diff := ls - lr
		if diff < 0 {
			diff = -diff
		}
		if maxL > 0 && 1.0-float64(diff)/float64(maxL) < threshold {
			continue
		}

		if score := stringSimilarity(normalized, candidate); score >= threshold {
			suggestions = append(suggestions, Suggestion{Entry: e, Score: score})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText trims whitespace and applies Unicode NFC normalization
// so that composed and decomposed spellings of a word are the same row.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

func normalizeLang(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

// levenshtein returns the edit distance between two strings (rune-aware).
// Uses a space-optimized two-row DP implementation.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1]
			} else {
				min := prev[j]
				if prev[j-1] < min {
					min = prev[j-1]
				}
				if curr[j-1] < min {
					min = curr[j-1]
				}
				curr[j] = min + 1
			}
		}
		prev, curr = curr, prev
	}

	return prev[lb]
}

// stringSimilarity returns a similarity score in [0, 1] (1 = identical).
func stringSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la, lb := len([]rune(a)), len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}
