// Package format holds the pure value-to-string formatters shared by every
// display column. Unavailable values render as an em-dash, never as zero.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Dash is the placeholder for unavailable values.
const Dash = "—"

// Price formats a price-like value as currency with comma grouping,
// e.g. 1234.5 -> "$1,234.50".
func Price(v float64) string {
	return "$" + comma(fmt.Sprintf("%.2f", v))
}

// Pct formats a percentage with an explicit sign, e.g. 1.01 -> "+1.01%".
func Pct(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

// Ratio formats a valuation multiple, e.g. 12.345 -> "12.35x".
func Ratio(v float64) string {
	return fmt.Sprintf("%.2fx", v)
}

// Num formats a plain numeric with two decimals.
func Num(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Cap formats an absolute market capitalization compactly with fixed
// thresholds: 1e12 -> T, 1e9 -> B, 1e6 -> M. Below a million the plain
// numeric string comes back unadorned.
func Cap(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.0fM", v/1e6)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// comma inserts thousand separators into the integer part of a fixed
// decimal string.
func comma(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	intPart, fracPart := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot:]
	}
	n := len(intPart)
	if n <= 3 {
		return sign + intPart + fracPart
	}
	out := make([]byte, 0, n+n/3)
	rem := n % 3
	if rem == 0 {
		rem = 3
	}
	out = append(out, intPart[:rem]...)
	for i := rem; i < n; i += 3 {
		out = append(out, ',')
		out = append(out, intPart[i:i+3]...)
	}
	return sign + string(out) + fracPart
}
