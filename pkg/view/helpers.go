package view

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NumberWithCommas inserts "," every three digits of the integer part,
// e.g. "1234567" -> "1,234,567". A sign and decimal part are kept as is.
func NumberWithCommas(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return sign + s
		}
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + frac
}

// FormatCLP renders a price in Chilean pesos: no decimals, "," thousands.
func FormatCLP(d decimal.Decimal) string {
	return "$" + NumberWithCommas(d.Round(0).String())
}
