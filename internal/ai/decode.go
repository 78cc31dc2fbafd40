package ai

import (
	"encoding/json"
	"strings"
)

// DecodeJSON pulls the outermost JSON object out of a completion that may
// be wrapped in prose or code fences and unmarshals it into out.
func DecodeJSON(raw string, out any) error {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ErrInvalidOutput
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), out); err != nil {
		return ErrInvalidOutput
	}
	return nil
}
