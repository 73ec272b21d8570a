package lexicon

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a dictionary from a JSON or YAML file holding a list of
// {word, meaning} records. The format is chosen by file extension; anything
// other than .yaml/.yml is parsed as JSON.
func LoadFile(path string) (Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	var entries []Entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &entries)
	default:
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse dictionary %s: %w", path, err)
	}

	return New(entries), nil
}

// LoadFileOrEmpty is LoadFile for callers that must keep working without a
// dictionary: on any failure it returns an empty dictionary together with the
// error so the caller can report it.
func LoadFileOrEmpty(path string) (Dictionary, error) {
	dict, err := LoadFile(path)
	if err != nil {
		return Dictionary{}, err
	}
	return dict, nil
}

// New builds a Dictionary from raw entries, trimming and NFC-normalizing each
// word. Entries without a word are dropped; order is kept.
func New(entries []Entry) Dictionary {
	dict := make(Dictionary, 0, len(entries))
	for _, e := range entries {
		word := norm.NFC.String(strings.TrimSpace(e.Word))
		if word == "" {
			continue
		}
		dict = append(dict, Entry{Word: word, Meaning: e.Meaning})
	}
	return dict
}
