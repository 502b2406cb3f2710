package service

import (
	"encoding/json"
	"strings"
)

// decodeModelReply decodes a JSON payload from an LLM reply, tolerating the
// markdown code fences some models wrap around their output despite being
// told not to.
func decodeModelReply(raw string, v interface{}) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)
	return json.Unmarshal([]byte(cleaned), v)
}
