package config

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/valpere/palabra/internal/lexicon"
	"github.com/valpere/palabra/internal/store"
)

// LoadDictionary returns the configured dictionary: the file at
// dictionary.path when set, otherwise the entries for the source language
// in the dictionary.db store. A store file that does not exist yet is read as
// empty and is not created. An unavailable dictionary is logged and
// replaced by an empty one; analysis continues without local matches.
func (c *Config) LoadDictionary(ctx context.Context, logger *zap.Logger) lexicon.Dictionary {
	if logger == nil {
		logger = zap.NewNop()
	}

	if c.Dictionary.Path != "" {
		dict, err := lexicon.LoadFileOrEmpty(c.Dictionary.Path)
		if err != nil {
			logger.Warn("dictionary unavailable, continuing without it",
				zap.String("path", c.Dictionary.Path),
				zap.Error(err))
		}
		return dict
	}

	if c.Dictionary.DB == "" {
		logger.Debug("no dictionary configured")
		return lexicon.Dictionary{}
	}

	if _, err := os.Stat(c.Dictionary.DB); errors.Is(err, fs.ErrNotExist) {
		logger.Debug("dictionary store not found", zap.String("db", c.Dictionary.DB))
		return lexicon.Dictionary{}
	}

	db, err := store.New(c.Dictionary.DB)
	if err != nil {
		logger.Warn("dictionary store unavailable, continuing without it",
			zap.String("db", c.Dictionary.DB),
			zap.Error(err))
		return lexicon.Dictionary{}
	}
	defer db.Close()

	dict, err := db.LoadDictionary(ctx, c.Language.Source)
	if err != nil {
		logger.Warn("dictionary store unavailable, continuing without it",
			zap.String("db", c.Dictionary.DB),
			zap.Error(err))
		return lexicon.Dictionary{}
	}

	logger.Debug("dictionary loaded",
		zap.String("db", c.Dictionary.DB),
		zap.String("lang", c.Language.Source),
		zap.Int("entries", len(dict)))
	return dict
}
