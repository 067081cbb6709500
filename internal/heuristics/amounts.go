package heuristics

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	reAmountJunk = regexp.MustCompile(`[^\d,.\-]`)
	reMoney      = regexp.MustCompile(`(?i)(R\$|USD|EUR|CHF|GBP)\s*(\d[\d.,]*\d|\d)`)
)

// ParseAmount reads a matched number written with either decimal convention.
// With both separators present the later one is the decimal point; a lone comma
// is always the decimal point.
func ParseAmount(raw string) (float64, bool) {
	s := reAmountJunk.ReplaceAllString(raw, "")
	if s == "" {
		return 0, false
	}
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}

// ExtractMoney returns the first currency-marked amount. The currency is ""
// when nothing matched; callers apply constants.DefaultCurrency.
func ExtractMoney(text string) (*float64, string) {
	for _, m := range reMoney.FindAllStringSubmatch(text, -1) {
		v, ok := ParseAmount(m[2])
		if !ok {
			continue
		}
		return &v, normalizeCurrency(m[1])
	}
	return nil, ""
}

func normalizeCurrency(marker string) string {
	c := strings.ToUpper(strings.TrimSpace(marker))
	if c == "R$" {
		return "BRL"
	}
	return c
}
