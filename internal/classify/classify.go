// Package classify labels candidate item lines with consumption categories.
package classify

import "context"

// Labels is the fixed category set the item classifier was trained on.
var Labels = []string{
	"fresh_food", "processed_food", "sugary_drink", "single_use_plastic",
	"household_chemical", "eco_friendly", "non_essential", "other",
}

// LabelOther is the catch-all category low-confidence predictions fold into.
const LabelOther = "other"

// DefaultThreshold is the confidence floor below which a prediction is
// folded to LabelOther.
const DefaultThreshold = 0.45

// Record is one classified candidate line. Created once per line per pass,
// never mutated.
type Record struct {
	Line       string  `json:"line"`
	Clean      string  `json:"clean"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Classifier labels candidate lines. Results come back in input order.
// Implementations must be stateless per call, so concurrent use from
// independent callers is safe as long as their backing model is immutable
// after load.
type Classifier interface {
	Classify(ctx context.Context, lines []string) ([]Record, error)
}

// knownLabel reports whether the model emitted a label from the trained set.
func knownLabel(label string) bool {
	for _, l := range Labels {
		if l == label {
			return true
		}
	}
	return false
}
