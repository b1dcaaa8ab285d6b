package extraction

import (
	"regexp"
	"strings"
)

// DefaultMaxLines caps the number of candidate lines extracted per receipt.
const DefaultMaxLines = 25

// trailing price like "  12.50" or " 1,234.00" at end of line
var trailingPricePattern = regexp.MustCompile(`\s+\d{1,3}(?:,\d{3})*\.\d{2}\s*$`)

// Extractor turns raw OCR lines into a clean, deduplicated, bounded list of
// probable item descriptions, suitable as classifier input or prompt content.
type Extractor struct {
	normalizer *Normalizer
	gate       *Gate
	maxLines   int
}

// NewExtractor creates an Extractor. Nil normalizer or gate fall back to the
// defaults; maxLines <= 0 falls back to DefaultMaxLines.
func NewExtractor(normalizer *Normalizer, gate *Gate, maxLines int) *Extractor {
	if normalizer == nil {
		normalizer = NewNormalizer()
	}
	if gate == nil {
		gate = NewGate()
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &Extractor{
		normalizer: normalizer,
		gate:       gate,
		maxLines:   maxLines,
	}
}

// FromText splits raw OCR text into trimmed, non-empty lines and extracts
// candidates from them. Empty input yields an empty slice.
func (e *Extractor) FromText(text string) []string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(ln); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return e.FromLines(lines)
}

// FromLines extracts candidate item lines: strips the trailing price, drops
// administrative noise, normalizes survivors, deduplicates preserving first
// occurrence, and truncates to the configured maximum.
func (e *Extractor) FromLines(lines []string) []string {
	candidates := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))

	for _, ln := range lines {
		stripped := trailingPricePattern.ReplaceAllString(strings.TrimSpace(ln), "")
		if e.gate.IsNoise(stripped) {
			continue
		}
		clean := e.normalizer.Normalize(stripped)
		if len(clean) < 2 {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		candidates = append(candidates, clean)
		if len(candidates) >= e.maxLines {
			break
		}
	}
	return candidates
}
