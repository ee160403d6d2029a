package stages

import (
	"encoding/json"
	"fmt"
	"strings"
)

// required names a JSON key that must decode to a non-empty string
type required struct {
	key   string
	value *string
}

// decodeJSON parses a model reply into v and checks the required fields.
// A surrounding Markdown code fence is tolerated.
func decodeJSON(reply string, v any, fields ...required) error {
	body := stripFence(reply)
	if body == "" {
		return fmt.Errorf("empty JSON reply")
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("invalid JSON reply: %w", err)
	}

	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return fmt.Errorf("JSON reply is missing %q", f.key)
		}
	}
	return nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:] // drop the language tag line
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
