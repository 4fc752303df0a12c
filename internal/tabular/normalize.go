package tabular

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// placeholderDash masks suppressed small counts (0-5) in the source
	// reports for privacy.
	placeholderDash = "--"
	// placeholderValue is the conventional midpoint substituted for a
	// suppressed count.
	placeholderValue = 2
)

// cleanCell strips surrounding whitespace, no-break spaces and thousands
// separators from a raw cell.
func cleanCell(raw string) string {
	s := strings.ReplaceAll(raw, "\u00a0", "")
	s = strings.ReplaceAll(s, "\u202f", "")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}

// NormalizeValue converts a raw period cell into its numeric value following
// the report family's conventions: "--" means a suppressed count and maps to
// 2, blank or unparsable cells map to 0, decimals truncate toward zero.
func NormalizeValue(raw string) int {
	s := cleanCell(raw)
	if s == placeholderDash {
		return placeholderValue
	}
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// ParsePeriod splits a period label into year and month. Month is 0 for bare
// year labels.
func ParsePeriod(label string) (year, month int, err error) {
	s := strings.TrimSpace(label)
	if len(s) >= 4 {
		if y, yerr := strconv.Atoi(s[:4]); yerr == nil {
			if len(s) == 4 {
				return y, 0, nil
			}
			if len(s) == 7 && s[4] == '-' {
				if m, merr := strconv.Atoi(s[5:]); merr == nil && m >= 1 && m <= 12 {
					return y, m, nil
				}
			}
		}
	}
	return 0, 0, fmt.Errorf("malformed period label %q", label)
}
