package smsparser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

type datePattern struct {
	re    *regexp.Regexp
	month func(string) (time.Month, bool)
}

// datePatterns are tried in order: numeric D/M/Y first, then D Mon Y.
var datePatterns = []datePattern{
	{
		re: regexp.MustCompile(`\b(\d{1,2})[/\-](\d{1,2})[/\-](\d{4}|\d{2})\b`),
		month: func(s string) (time.Month, bool) {
			n, err := strconv.Atoi(s)
			return time.Month(n), err == nil
		},
	},
	{
		re: regexp.MustCompile(`(?i)\b(\d{1,2})[ \t]+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?,?[ \t]+(\d{4}|\d{2})\b`),
		month: func(s string) (time.Month, bool) {
			m, ok := months[strings.ToLower(s)]
			return m, ok
		},
	},
}

// extractDate returns the first valid calendar date in text, at midnight in loc.
func extractDate(text string, loc *time.Location) (time.Time, bool) {
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if d, ok := buildDate(m[1], m[2], m[3], p.month, loc); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

func buildDate(dayStr, monthStr, yearStr string, month func(string) (time.Month, bool), loc *time.Location) (time.Time, bool) {
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, false
	}
	mon, ok := month(monthStr)
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}
	if len(yearStr) == 2 {
		year += 2000
	}
	d := time.Date(year, mon, day, 0, 0, 0, 0, loc)
	// time.Date normalises overflow (31/02 -> 3 March); reject those.
	if d.Day() != day || d.Month() != mon {
		return time.Time{}, false
	}
	return d, true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
