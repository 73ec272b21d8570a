package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valpere/palabra/internal/generator"
	"github.com/valpere/palabra/internal/handler"
	"github.com/valpere/palabra/internal/lexicon"
	"github.com/valpere/palabra/internal/orchestrator"
)

func testHandler(calls *int) *handler.Handler {
	gen := generator.GenerateFunc(func(ctx context.Context, prompt string) (string, error) {
		*calls++
		return "・come : eats|||Eats.", nil
	})
	dict := lexicon.Dictionary{{Word: "come", Meaning: "eat"}}
	return handler.New(orchestrator.New(gen, orchestrator.Config{}), dict, nil)
}

func TestHandleRequest_Warmup(t *testing.T) {
	calls := 0
	resp, err := handleRequest(context.Background(), testHandler(&calls), json.RawMessage(`{"source":"warmup"}`))
	require.NoError(t, err)

	assert.Equal(t, &handler.WarmupResponse{Status: "warm"}, resp)
	assert.Equal(t, 0, calls)
}

func TestHandleRequest_Analysis(t *testing.T) {
	calls := 0
	resp, err := handleRequest(context.Background(), testHandler(&calls), json.RawMessage(`{"text":"El abogado come."}`))
	require.NoError(t, err)

	r, ok := resp.(*handler.Response)
	require.True(t, ok)
	assert.Equal(t, "Eats.", r.Translation)
	assert.Equal(t, lexicon.MatchReport{{Word: "come", RenderedMeaning: "eat"}}, r.Matches)
	assert.Equal(t, 1, calls)
}

func TestHandleRequest_InvalidEvent(t *testing.T) {
	calls := 0
	_, err := handleRequest(context.Background(), testHandler(&calls), json.RawMessage(`[1,2]`))
	assert.Error(t, err)
}
