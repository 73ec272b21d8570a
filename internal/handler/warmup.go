package handler

import "encoding/json"

// WarmupSource identifies scheduled keep-warm events.
const WarmupSource = "warmup"

// WarmupResponse is returned for keep-warm events.
type WarmupResponse struct {
	Status string `json:"status"`
}

// IsWarmupEvent reports whether event is a keep-warm ping rather than an
// analysis request.
func IsWarmupEvent(event json.RawMessage) bool {
	var ev struct {
		Source string `json:"source"`
	}
	if err := json.Unmarshal(event, &ev); err != nil {
		return false
	}
	return ev.Source == WarmupSource
}
