package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Reply is what comes back from a report generator: either an
// already-structured object or raw model text that should contain one.
// Exactly one side is set; RawReply and StructuredReply build the variants.
type Reply struct {
	structured map[string]any
	raw        string
}

// RawReply wraps free-form model output.
func RawReply(text string) Reply {
	return Reply{raw: text}
}

// StructuredReply wraps an already-parsed report.
func StructuredReply(m map[string]any) Reply {
	return Reply{structured: m}
}

// Recover extracts a structured report from a generator reply. Structured
// replies pass through unchanged, so Recover is safe to call on
// already-parsed input. Raw text is parsed strictly first; if that fails, the
// greedy window from the first "{" to the last "}" is tried, which tolerates
// prose, markdown fences and trailing commentary around the object. The
// window over-matches when the text holds several objects; the prompt asks
// for exactly one, so that trade is acceptable.
//
// Failure is a value, never an error: the result carries an "error" key and
// callers must check for its absence before trusting other fields.
func Recover(reply Reply) map[string]any {
	if reply.structured != nil {
		return reply.structured
	}
	if strings.TrimSpace(reply.raw) == "" {
		return map[string]any{"error": "Invalid input type: expected string or object"}
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(reply.raw), &parsed); err == nil {
		return parsed
	}

	start := strings.Index(reply.raw, "{")
	end := strings.LastIndex(reply.raw, "}")
	if start == -1 || end < start {
		return map[string]any{"error": "No valid JSON structure found"}
	}

	window := reply.raw[start : end+1]
	if err := json.Unmarshal([]byte(window), &parsed); err != nil {
		return map[string]any{"error": fmt.Sprintf("Parsing failed: %s", err)}
	}
	return parsed
}

// IsError reports whether a recovered report is a failure value.
func IsError(report map[string]any) bool {
	_, ok := report["error"]
	return ok
}
