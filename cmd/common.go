/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/valpere/palabra/internal/generator"
	"github.com/valpere/palabra/internal/orchestrator"
	"github.com/valpere/palabra/internal/store"
)

// buildOrchestrator constructs the analysis pipeline from the loaded configuration.
func buildOrchestrator(ctx context.Context) (*orchestrator.Orchestrator, error) {
	gen, err := generator.New(ctx, cfg.Generator.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s generator: %w", cfg.Generator.Provider, err)
	}
	if r, ok := gen.(interface{ Models() []string }); ok {
		logger.Debug("generator models",
			zap.String("generator", gen.Name()),
			zap.Strings("models", r.Models()))
	}
	return orchestrator.New(gen, cfg.Pipeline(logger)), nil
}

// openStore opens the dictionary database, creating its directory if needed.
func openStore() (*store.Store, error) {
	if dir := filepath.Dir(cfg.Dictionary.DB); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := store.New(cfg.Dictionary.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
