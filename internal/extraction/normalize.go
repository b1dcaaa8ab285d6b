package extraction

import (
	"regexp"
	"strings"
)

// DefaultCurrencyMarkers are the whole-word currency tokens stripped during
// normalization. Malaysian receipts use "RM"/"MYR"; "USD" shows up on imported
// goods receipts.
var DefaultCurrencyMarkers = []string{"rm", "myr", "usd"}

var (
	pricePattern      = regexp.MustCompile(`\b\d{1,3}(?:,\d{3})*\.\d{2}\b`)
	integerPattern    = regexp.MustCompile(`\b\d+\b`)
	nonLetterPattern  = regexp.MustCompile(`[^a-z\s\-&/]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalizer canonicalizes receipt text fragments for classification.
//
// The same normalization was applied to the classifier's training data, so
// this must stay the single shared implementation: any divergence between
// training-time and inference-time cleaning skews the feature distribution
// the model sees.
type Normalizer struct {
	currencyPattern *regexp.Regexp
}

// NewNormalizer creates a Normalizer that strips the given whole-word
// currency markers. With no markers, DefaultCurrencyMarkers is used.
func NewNormalizer(currencyMarkers ...string) *Normalizer {
	if len(currencyMarkers) == 0 {
		currencyMarkers = DefaultCurrencyMarkers
	}
	escaped := make([]string, 0, len(currencyMarkers))
	for _, m := range currencyMarkers {
		escaped = append(escaped, regexp.QuoteMeta(strings.ToLower(m)))
	}
	return &Normalizer{
		currencyPattern: regexp.MustCompile(`\b(?:` + strings.Join(escaped, "|") + `)\b`),
	}
}

// Normalize lower-cases the text, removes currency markers, price-shaped
// numbers and free-standing integers, drops every remaining character that is
// not a lowercase letter, whitespace, hyphen, ampersand or slash, and
// collapses whitespace. Normalize is idempotent.
func (n *Normalizer) Normalize(text string) string {
	s := strings.ToLower(text)
	s = n.currencyPattern.ReplaceAllString(s, " ")
	s = pricePattern.ReplaceAllString(s, " ")
	s = integerPattern.ReplaceAllString(s, " ")
	s = nonLetterPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
