package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL formats an amount as Brazilian reais, e.g. R$ 1.234,56.
// Negative amounts carry the sign before the symbol.
func FormatBRL(amount float64) string {
	if amount < 0 {
		return "-" + FormatBRL(-amount)
	}
	return "R$ " + brPrinter.Sprintf("%.2f", amount)
}

// FormatPercent renders a fraction as a percentage with one decimal, e.g.
// 0.19 -> "19,0%".
func FormatPercent(fraction float64) string {
	return brPrinter.Sprintf("%.1f", fraction*100) + "%"
}

// FormatAmount renders a line amount without trailing zeros.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// ParseNumber reads a form value as a number. Blank or unparsable input is
// zero; a decimal comma is accepted.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v := cast.ToFloat64(s)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParsePercent reads a whole-number percentage (0-100) from a form and
// returns it as a fraction.
func ParsePercent(s string) float64 {
	return ParseNumber(s) / 100
}

// PercentInput renders a fraction as the whole-number percentage shown in
// form inputs. It rounds away float noise such as 0.19*100 = 19.000000000000004.
func PercentInput(fraction float64) string {
	return strconv.FormatFloat(math.Round(fraction*100*1e6)/1e6, 'f', -1, 64)
}
