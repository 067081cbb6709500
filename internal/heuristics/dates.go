package heuristics

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"
)

// Textual forms: "15 de março de 2026", "2 abr. 2026", "April 2, 2026".
var (
	reISODate        = regexp.MustCompile(`\b(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})\b`)
	reBRDate         = regexp.MustCompile(`\b(\d{1,2})[-/.](\d{1,2})[-/.](\d{4}|\d{2})\b`)
	reTextDate       = regexp.MustCompile(`\b(\d{1,2})\s+(?:de\s+)?([a-z]+)\.?,?\s+(?:de\s+)?(\d{4}|\d{2})\b`)
	reMonthFirstDate = regexp.MustCompile(`\b([a-z]+)\.?\s+(\d{1,2}),?\s+(\d{4})\b`)
)

// monthAliases maps folded Portuguese and English month names and abbreviations.
var monthAliases = map[string]time.Month{
	"jan": time.January, "janeiro": time.January, "january": time.January,
	"fev": time.February, "fevereiro": time.February, "feb": time.February, "february": time.February,
	"mar": time.March, "marco": time.March, "march": time.March,
	"abr": time.April, "abril": time.April, "apr": time.April, "april": time.April,
	"mai": time.May, "maio": time.May, "may": time.May,
	"jun": time.June, "junho": time.June, "june": time.June,
	"jul": time.July, "julho": time.July, "july": time.July,
	"ago": time.August, "agosto": time.August, "aug": time.August, "august": time.August,
	"set": time.September, "setembro": time.September, "sep": time.September, "sept": time.September, "september": time.September,
	"out": time.October, "outubro": time.October, "oct": time.October, "october": time.October,
	"nov": time.November, "novembro": time.November, "november": time.November,
	"dez": time.December, "dezembro": time.December, "dec": time.December, "december": time.December,
}

type dateMatch struct {
	start, end int
	iso        string
}

// dateRule turns one regexp submatch (indices) into a date.
type dateRule struct {
	re    *regexp.Regexp
	parse func(s string, m []int) (string, bool)
}

// dateRules are evaluated in priority order; the first rule with a valid match wins.
var dateRules = []dateRule{
	{re: reISODate, parse: func(s string, m []int) (string, bool) {
		return isoDate(group(s, m, 1), group(s, m, 2), group(s, m, 3))
	}},
	{re: reBRDate, parse: func(s string, m []int) (string, bool) {
		return isoDate(expandYear(group(s, m, 3)), group(s, m, 2), group(s, m, 1))
	}},
	{re: reTextDate, parse: func(s string, m []int) (string, bool) {
		month, ok := monthAliases[group(s, m, 2)]
		if !ok {
			return "", false
		}
		return isoDate(expandYear(group(s, m, 3)), strconv.Itoa(int(month)), group(s, m, 1))
	}},
	{re: reMonthFirstDate, parse: func(s string, m []int) (string, bool) {
		month, ok := monthAliases[group(s, m, 1)]
		if !ok {
			return "", false
		}
		return isoDate(group(s, m, 3), strconv.Itoa(int(month)), group(s, m, 2))
	}},
}

// NormalizeDate returns the first date found in candidate as YYYY-MM-DD.
// Numeric dates are always read as day before month.
func NormalizeDate(candidate string) (string, bool) {
	s := fold(candidate)
	for _, rule := range dateRules {
		for _, m := range rule.re.FindAllStringSubmatchIndex(s, -1) {
			if iso, ok := rule.parse(s, m); ok {
				return iso, true
			}
		}
	}
	return "", false
}

// FindDates returns every valid date in document order. Overlapping matches
// from lower priority rules are skipped.
func FindDates(text string) []string {
	s := fold(text)
	var found []dateMatch
	for _, rule := range dateRules {
		for _, m := range rule.re.FindAllStringSubmatchIndex(s, -1) {
			iso, ok := rule.parse(s, m)
			if !ok || overlaps(found, m[0], m[1]) {
				continue
			}
			found = append(found, dateMatch{start: m[0], end: m[1], iso: iso})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].start < found[j].start })
	out := make([]string, 0, len(found))
	for _, f := range found {
		out = append(out, f.iso)
	}
	return out
}

func overlaps(found []dateMatch, start, end int) bool {
	for _, f := range found {
		if start < f.end && f.start < end {
			return true
		}
	}
	return false
}

func group(s string, m []int, i int) string {
	if 2*i+1 >= len(m) || m[2*i] < 0 {
		return ""
	}
	return s[m[2*i]:m[2*i+1]]
}

func expandYear(y string) string {
	if len(y) == 2 {
		return "20" + y
	}
	return y
}

// isoDate validates the calendar date through a time.Date round trip.
func isoDate(year, month, day string) (string, bool) {
	y, err1 := strconv.Atoi(year)
	mo, err2 := strconv.Atoi(month)
	d, err3 := strconv.Atoi(day)
	if err1 != nil || err2 != nil || err3 != nil {
		return "", false
	}
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return "", false
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != mo || t.Day() != d {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, mo, d), true
}
