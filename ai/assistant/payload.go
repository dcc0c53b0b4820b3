package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/poiesic/mailsift/ai"
	"github.com/poiesic/mailsift/core"
)

// parseClassificationPayload extracts a classification result from the raw
// text of an assistant reply. Assistants frequently wrap their JSON in a
// markdown code fence; when a fence is present the first fenced block is
// parsed, otherwise the whole text is treated as JSON.
func parseClassificationPayload(text string) (*core.ClassificationResult, error) {
	jsonText := text
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		end := strings.Index(rest, "```")
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated code fence", ai.ErrInvalidPayload)
		}
		jsonText = rest[:end]
	}
	jsonText = strings.TrimSpace(jsonText)

	var result core.ClassificationResult
	if err := json.Unmarshal([]byte(jsonText), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrInvalidPayload, err)
	}
	return &result, nil
}
