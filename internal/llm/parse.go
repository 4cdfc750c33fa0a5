package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var braceRe = regexp.MustCompile(`(?s)\{.*\}`)

// DecodePayload parses a model reply into a Payload. Models frequently wrap
// JSON in markdown fences or surround it with prose, so after stripping fences
// a brace-bounded substring is tried before giving up. Whatever JSON is found
// must also pass the entries schema.
func DecodePayload(reply string) (Payload, error) {
	cleaned := stripFences(reply)
	if p, err := decodeValid([]byte(cleaned)); err == nil {
		return p, nil
	}

	if m := braceRe.FindString(cleaned); m != "" {
		p, err := decodeValid([]byte(m))
		if err != nil {
			return Payload{}, fmt.Errorf("recovered JSON object is unusable: %w", err)
		}
		return p, nil
	}
	return Payload{}, fmt.Errorf("no parseable JSON object in model reply (%d bytes)", len(reply))
}

func decodeValid(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, err
	}
	if err := ValidatePayload(data); err != nil {
		return Payload{}, err
	}
	return p, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
