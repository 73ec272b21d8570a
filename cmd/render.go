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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/valpere/palabra/internal"
	"github.com/valpere/palabra/internal/lexicon"
	"github.com/valpere/palabra/internal/markdown"
	"github.com/valpere/palabra/internal/prompt"
)

// analysis is the printable outcome for one piece of input.
type analysis struct {
	Text        string              `json:"text"`
	Explanation string              `json:"explanation"`
	Translation string              `json:"translation"`
	Matches     lexicon.MatchReport `json:"matches,omitempty"`
	Reference   string              `json:"reference,omitempty"`
}

func render(format string, analyses []analysis, showMatches bool) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(analyses, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case "html":
		return []byte(renderHTML(analyses)), nil
	case "text", "":
		return []byte(renderText(analyses, showMatches)), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

func renderText(analyses []analysis, showMatches bool) string {
	var sb strings.Builder
	for i, a := range analyses {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		if len(analyses) > 1 {
			fmt.Fprintf(&sb, "[%d/%d] %s\n\n", i+1, len(analyses), a.Text)
		}
		sb.WriteString(a.Explanation)
		sb.WriteString("\n\n")
		sb.WriteString(a.Translation)
		sb.WriteString("\n")

		if showMatches {
			sb.WriteString("\nDictionary matches:\n")
			sb.WriteString(prompt.RenderMatches(a.Matches))
			sb.WriteString("\n")
		}
		if a.Reference != "" {
			fmt.Fprintf(&sb, "\nReference: %s\n", a.Reference)
		}
	}
	return sb.String()
}

func renderHTML(analyses []analysis) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>palabra</title></head>\n<body>\n")
	for i, a := range analyses {
		if i > 0 {
			sb.WriteString("<hr>\n")
		}
		sb.WriteString("<section>\n")
		sb.WriteString(markdown.AnalysisHTML(a.Text, internal.AnalysisResult{Explanation: a.Explanation, Translation: a.Translation}, a.Matches))
		if a.Reference != "" {
			sb.WriteString(markdown.ToHTML([]byte("## Reference\n\n" + markdown.Escape(a.Reference) + "\n")))
		}
		sb.WriteString("</section>\n")
	}
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}
