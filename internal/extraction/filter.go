package extraction

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultBlacklist contains administrative keywords whose presence marks a
// line as receipt bookkeeping rather than a purchased item. It is the union
// of the keyword sets observed across receipt layouts: payment summary rows,
// header/footer boilerplate, and Malaysian address markers ("sdn bhd",
// "jalan").
var DefaultBlacklist = []string{
	"total", "subtotal", "tax", "gst", "sst", "vat", "cash", "change",
	"invoice", "receipt", "thank", "date", "time", "table", "cashier",
	"server", "rounding", "service", "summary", "amount", "balance",
	"tel", "phone", "address", "pax", "sdn bhd", "jalan",
}

var (
	// e.g. "05 mar 2018" embedded mid-line, which survives the keyword check
	datePattern = regexp.MustCompile(`\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\s+\d{4}`)
	// barcode/reference noise: "12-ABC" style codes or 10+ digit runs
	longCodePattern = regexp.MustCompile(`(?:\d+-\w+)|(?:\d{10,})`)
)

// Gate decides whether a raw OCR line is administrative noise. It favors
// precision of exclusion over recall of inclusion: noise leaking into the
// classifier costs more than an occasionally dropped item.
type Gate struct {
	blacklist []string
}

// NewGate creates a Gate with the given keyword blacklist, or
// DefaultBlacklist when none is given.
func NewGate(blacklist ...string) *Gate {
	if len(blacklist) == 0 {
		blacklist = DefaultBlacklist
	}
	lowered := make([]string, 0, len(blacklist))
	for _, k := range blacklist {
		lowered = append(lowered, strings.ToLower(k))
	}
	return &Gate{blacklist: lowered}
}

// IsNoise reports whether the line is administrative noise. Rules
// short-circuit in order: too short, too few letters, blacklist keyword,
// isolated currency token, embedded date, long numeric/alphanumeric code.
func (g *Gate) IsNoise(line string) bool {
	low := strings.ToLower(strings.TrimSpace(line))
	if len(low) < 2 {
		return true
	}
	if countLetters(low) < 2 {
		return true
	}
	for _, k := range g.blacklist {
		if strings.Contains(low, k) {
			return true
		}
	}
	// "rm" misread as content, e.g. "NASI LEMAK RM 7.50" after price stripping
	if strings.Contains(" "+low+" ", " rm ") {
		return true
	}
	if datePattern.MatchString(low) {
		return true
	}
	if longCodePattern.MatchString(low) {
		return true
	}
	return false
}

func countLetters(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			count++
		}
	}
	return count
}
