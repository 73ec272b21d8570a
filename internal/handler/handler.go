// Package handler serves analysis requests for the Lambda entrypoint.
package handler

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/valpere/palabra/internal/lexicon"
	"github.com/valpere/palabra/internal/orchestrator"
)

// MaxTextRunes caps the size of a single request.
const MaxTextRunes = 5000

// Request is the input to the analysis function.
type Request struct {
	Text string `json:"text"`
}

// Response is the output of the analysis function. Failures are reported in
// Error; generation failures arrive as a regular explanation.
type Response struct {
	Explanation string              `json:"explanation"`
	Translation string              `json:"translation"`
	Matches     lexicon.MatchReport `json:"matches,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// Handler owns the dictionary loaded at cold start and shares it, read-only,
// across invocations.
type Handler struct {
	orch   *orchestrator.Orchestrator
	dict   lexicon.Dictionary
	logger *zap.Logger
}

func New(orch *orchestrator.Orchestrator, dict lexicon.Dictionary, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{orch: orch, dict: dict, logger: logger}
}

// Handle analyzes one request.
func (h *Handler) Handle(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return &Response{Error: err.Error()}, nil
	}

	report, err := h.orch.Analyze(ctx, req.Text, h.dict)
	if err != nil {
		if errors.Is(err, orchestrator.ErrEmptyInput) {
			return &Response{Error: "text is required"}, nil
		}
		return &Response{Error: fmt.Sprintf("analysis failed: %v", err)}, nil
	}

	h.logger.Info("analysis complete",
		zap.Int("matches", len(report.Matches)),
		zap.Bool("split", report.Split),
		zap.Int("attempts", report.Attempts),
		zap.Bool("generation_failed", report.Err != nil))

	return &Response{
		Explanation: report.Result.Explanation,
		Translation: report.Result.Translation,
		Matches:     report.Matches,
	}, nil
}

func validateRequest(req Request) error {
	if n := len([]rune(req.Text)); n > MaxTextRunes {
		return fmt.Errorf("text too long: %d characters (max %d)", n, MaxTextRunes)
	}
	return nil
}
