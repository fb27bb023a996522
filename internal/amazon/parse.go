package amazon

import (
	"strconv"
	"strings"
)

// ExtractDecimal pulls a decimal number out of free text by stripping every
// character except digits and the decimal point, then parsing the remainder.
// "$1,234.56" becomes 1234.56. An empty or non-numeric remainder yields 0.0,
// never an error.
func ExtractDecimal(text string) float64 {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0.0
	}
	return value
}

// truncate caps s at max bytes.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
