package extraction

import (
	"regexp"
	"strings"
)

// TotalNotFound is the sentinel returned when no monetary token exists
// anywhere in the document. Callers display it as-is; it is a valid outcome,
// not an error.
const TotalNotFound = "Not Found"

// DefaultTotalKeywords anchor the search for the total line. Checked as
// substrings of the lower-cased line; "total" deliberately also matches
// "subtotal" and "grand total" — the anchored phase only needs to land on a
// money-bearing summary row, not to disambiguate which one.
var DefaultTotalKeywords = []string{
	"total", "grand total", "net total",
	"amount due", "amount", "balance", "total amount",
}

// monetary token: digits, a dot, exactly two decimals
var monetaryPattern = regexp.MustCompile(`\d+\.\d{2}`)

// TotalResolver scans OCR lines for the receipt's total amount.
type TotalResolver struct {
	keywords []string
}

// NewTotalResolver creates a TotalResolver with the given anchor keywords,
// or DefaultTotalKeywords when none is given.
func NewTotalResolver(keywords ...string) *TotalResolver {
	if len(keywords) == 0 {
		keywords = DefaultTotalKeywords
	}
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		lowered = append(lowered, strings.ToLower(k))
	}
	return &TotalResolver{keywords: lowered}
}

// Resolve returns the receipt total as a monetary string, or TotalNotFound.
//
// Phase 1 walks the lines in order looking for an anchor keyword. On an
// anchor line the last monetary token wins (totals trail the label, as in
// "TOTAL ... 45.00"); an anchor line with no token defers to the first token
// on the immediately following line (two-row layouts). The first productive
// anchor ends the search. Phase 2 falls back to the last monetary token in
// document order — receipts list the total after the items, so the trailing
// figure is the best blind guess. OCR-mangled keywords make the anchored
// phase miss; the fallback keeps the function total over its input.
func (r *TotalResolver) Resolve(lines []string) string {
	for i, line := range lines {
		if !r.hasKeyword(strings.ToLower(line)) {
			continue
		}
		if nums := monetaryPattern.FindAllString(line, -1); len(nums) > 0 {
			return nums[len(nums)-1]
		}
		if i+1 < len(lines) {
			if next := monetaryPattern.FindString(lines[i+1]); next != "" {
				return next
			}
		}
	}

	last := ""
	for _, line := range lines {
		if nums := monetaryPattern.FindAllString(line, -1); len(nums) > 0 {
			last = nums[len(nums)-1]
		}
	}
	if last != "" {
		return last
	}
	return TotalNotFound
}

func (r *TotalResolver) hasKeyword(low string) bool {
	for _, k := range r.keywords {
		if strings.Contains(low, k) {
			return true
		}
	}
	return false
}
