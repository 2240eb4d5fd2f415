// Package search provides the multi-term substring matcher used by catalog
// and journal queries.
package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Matches reports whether every whitespace-separated term of query is found
// as a case-insensitive substring of at least one of the given field values.
//
// An empty query (or one consisting only of whitespace) matches everything.
// Field values are stringified before comparison; numeric values use their
// decimal representation. Values of unsupported kinds never match.
func Matches(query string, fields ...any) bool {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return true
	}

	haystacks := make([]string, 0, len(fields))
	for _, f := range fields {
		if s, ok := stringify(f); ok {
			haystacks = append(haystacks, strings.ToLower(s))
		}
	}

	for _, term := range terms {
		found := false
		for _, h := range haystacks {
			if strings.Contains(h, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// stringify converts a field value to its textual form.
// The second return value is false for unsupported kinds.
func stringify(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case *string:
		if x == nil {
			return "", false
		}
		return *x, true
	case int:
		return strconv.Itoa(x), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case decimal.Decimal:
		return x.String(), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return "", false
	}
}
