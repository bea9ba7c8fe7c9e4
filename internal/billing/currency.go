package billing

import (
	"strconv"
	"strings"
)

// FormatEuros renders an amount in the Spanish display format used on
// invoices: two decimals, period as thousands separator, comma as
// decimal separator and a trailing euro sign ("1.234,50 €"). Values
// that cannot be read as a number degrade to "0,00 €"; the formatter
// never fails.
func FormatEuros(value interface{}) string {
	amount, ok := toFloat(value)
	if !ok {
		amount = 0
	}
	return formatEuros(amount)
}

func formatEuros(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, decPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	b.WriteByte(',')
	b.WriteString(decPart)
	b.WriteString(" €")
	return b.String()
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case nil:
		return 0, false
	default:
		return 0, false
	}
}
