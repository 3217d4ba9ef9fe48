package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeObject decodes the single JSON object in text into v. Models often
// wrap the object in prose or markdown fences, so when the whole text is not
// valid JSON the outermost {...} span is tried.
func DecodeObject(text string, v any) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyContent
	}
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
			return fmt.Errorf("failed to parse json object from ai response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("no json object in ai response")
}

// FirstLine returns the first non-blank line of text, trimmed.
func FirstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
