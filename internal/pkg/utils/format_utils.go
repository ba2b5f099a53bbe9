package utils

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// GetEnv returns the value of the environment variable key, or fallback when
// it is unset or empty.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// FormatUSD renders a USD amount compactly: $1.25M, $3.4K, $512.00.
func FormatUSD(amount decimal.Decimal) string {
	f := amount.InexactFloat64()
	abs := math.Abs(f)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("$%.2fM", f/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("$%.1fK", f/1_000)
	default:
		return "$" + groupThousands(fmt.Sprintf("%.2f", f))
	}
}

// groupThousands inserts comma separators into the integer part of a
// formatted number.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if fracPart != "" {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}
