package report

import (
	"context"
	"fmt"
)

// sustainabilityPrompt is the shared prompt used by all report generators.
// It asks for exactly one JSON object; Recover handles replies that violate
// that.
const sustainabilityPrompt = `Analyze this shopping receipt text for sustainability.
1. Extract actual items.
2. Score Eco-impact (0-100) and Health (0-100).
3. Identify 2 UN SDGs.
4. Provide 1 sustainability tip.

Receipt Content:
%s

Return ONLY a JSON object. Format:
{"items": [], "eco_score": int, "health_score": int, "sdgs": [], "advice": ""}`

// systemPrompt primes the model to skip the conversational wrapper.
const systemPrompt = "You are a professional sustainability auditor that outputs ONLY JSON."

// Generator produces a sustainability report from raw receipt text. The
// returned string is free-form model output expected, but not guaranteed, to
// contain one JSON object.
type Generator interface {
	GenerateReport(ctx context.Context, rawText string) (string, error)

	// Close releases the generator's resources
	Close() error
}

func buildPrompt(rawText string) string {
	return fmt.Sprintf(sustainabilityPrompt, rawText)
}
