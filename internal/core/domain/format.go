package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Display formatting for analysis results. The formatted strings are part of
// the service contract: API responses carry them next to the raw numbers and
// the web UI renders them verbatim.

// FormatYen renders a yen amount with thousands separators, e.g. 3,157,500円.
func FormatYen(amount int64) string {
	return groupDigits(amount) + "円"
}

// FormatScore renders a market potential score with two decimals.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

// FormatRatio renders a profit ratio with one decimal and a percent sign.
func FormatRatio(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio)
}

// FormatPayback renders a payback period in years with two decimals. An
// infinite payback (zero profit) renders as inf年.
func FormatPayback(years float64) string {
	if math.IsInf(years, 0) {
		return "inf年"
	}
	return fmt.Sprintf("%.2f年", years)
}

func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
