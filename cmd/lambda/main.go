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

// Package main is the entry point for the palabra analysis Lambda function.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/valpere/palabra/internal/config"
	"github.com/valpere/palabra/internal/generator"
	"github.com/valpere/palabra/internal/handler"
	"github.com/valpere/palabra/internal/orchestrator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	h, err := setup(context.Background(), logger)
	if err != nil {
		logger.Fatal("setup failed", zap.Error(err))
	}

	lambda.Start(func(ctx context.Context, event json.RawMessage) (interface{}, error) {
		return handleRequest(ctx, h, event)
	})
}

// setup runs once per cold start. The dictionary is loaded here and shared by
// every invocation the instance serves.
func setup(ctx context.Context, logger *zap.Logger) (*handler.Handler, error) {
	cfg, err := config.Load(config.New(), os.Getenv("PALABRA_CONFIG"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	gen, err := generator.New(ctx, cfg.Generator.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s generator: %w", cfg.Generator.Provider, err)
	}

	dict := cfg.LoadDictionary(ctx, logger)
	logger.Info("dictionary ready", zap.Int("entries", len(dict)))

	orch := orchestrator.New(gen, cfg.Pipeline(logger))
	return handler.New(orch, dict, logger), nil
}

func handleRequest(ctx context.Context, h *handler.Handler, event json.RawMessage) (interface{}, error) {
	if handler.IsWarmupEvent(event) {
		return &handler.WarmupResponse{Status: "warm"}, nil
	}

	var req handler.Request
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, err
	}

	return h.Handle(ctx, req)
}
