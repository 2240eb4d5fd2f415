package location

import (
	"strconv"
	"strings"
)

// FilterBins returns the bins whose code matches the search term, preserving
// input order.
//
// Operators type compressed shorthand ("a11") and expect it to resolve to
// formatted codes ("A-01-1"), with or without the leading zero on the bay.
// The normalized term therefore matches as a substring of any of these
// variants of each bin:
//
//	the literal stored code        "g-01-1"
//	rack + padded bay + level      "g011"
//	rack + bare bay + level        "g11"
//	rack + bare bay                "g1"   (partial typing)
//
// Bins without a code are excluded unconditionally. An empty term matches
// every coded bin; callers cap the result count themselves.
func FilterBins(bins []*Bin, term string) []*Bin {
	needle := normalizeTerm(term)

	var out []*Bin
	for _, b := range bins {
		if b == nil || b.Code == "" {
			continue
		}
		for _, variant := range codeVariants(b) {
			if strings.Contains(variant, needle) {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

// normalizeTerm lowercases the term and strips all whitespace.
func normalizeTerm(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), "")
}

// codeVariants returns the lowercased textual forms a bin answers to.
func codeVariants(b *Bin) [4]string {
	rack := strings.ToLower(b.Rack)
	level := strings.ToLower(b.Level)
	padded := rack + padBay(b.Bay) + level
	bare := rack + strconv.Itoa(b.Bay) + level

	return [4]string{
		strings.ToLower(b.Code),
		padded,
		bare,
		rack + strconv.Itoa(b.Bay),
	}
}

func padBay(bay int) string {
	s := strconv.Itoa(bay)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
