package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol y separadores usados por nl-BE ("€ 1.234,56", espacio no separable).
const (
	CurrencySymbol = "€"
	symbolSpace    = "\u00a0"
	groupSep       = "."
	decimalSep     = ","
)

var printer = message.NewPrinter(language.MustParse("nl-BE"))

// FormatCurrency muestra un importe en EUR según la convención nl-BE:
// símbolo delante, punto de miles, coma decimal y siempre dos decimales.
// El importe se redondea a céntimos (mitad lejos de cero) antes de formatear.
func FormatCurrency(amount decimal.Decimal) string {
	return CurrencySymbol + symbolSpace + formatDecimal(amount.Round(2).StringFixed(2))
}

// FormatQuantity muestra una cantidad con separadores nl-BE y sin decimales forzados ("1,5", "2").
func FormatQuantity(q decimal.Decimal) string {
	return formatDecimal(q.String())
}

// formatDecimal reescribe la forma textual de decimal ("-1234.50") con los
// separadores nl-BE sin pasar por float64.
func formatDecimal(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	out := sign + groupThousands(intPart)
	if frac != "" {
		out += decimalSep + frac
	}
	return out
}

// groupThousands agrupa la parte entera. Lo que cabe en int64 lo formatea el
// printer de nl-BE; el resto se agrupa de tres en tres.
func groupThousands(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return printer.Sprint(number.Decimal(n))
	}
	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(groupSep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
