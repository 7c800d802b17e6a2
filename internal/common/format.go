package common

import (
	"fmt"
	"strings"
)

// groupThousands inserts commas every three digits of a non-negative integer string.
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}

// FormatMoney formats a market value with thousands separators and no currency
// symbol, e.g. 1200000 -> "1,200,000". Values are rounded to whole units.
func FormatMoney(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}
	s := groupThousands(fmt.Sprintf("%.0f", v))
	if negative {
		return "-" + s
	}
	return s
}

// FormatPercent renders a fractional return (0.0123) as "1.23%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// FormatSignedPercent renders a fractional return with an explicit sign.
func FormatSignedPercent(v float64) string {
	if v >= 0 {
		return "+" + FormatPercent(v)
	}
	return FormatPercent(v)
}

// FormatBps renders a fractional value in basis points, e.g. 0.0012 -> "12.0bps".
func FormatBps(v float64) string {
	return fmt.Sprintf("%.1fbps", v*10000)
}
