package news

import (
	"errors"
	"regexp"
	"time"
)

// ErrUnrecognizedDate is returned when a date substring matches none of the
// known templates. Callers drop the single candidate and move on.
var ErrUnrecognizedDate = errors.New("unrecognized date format")

// datePattern matches the date shapes seen on university listing pages:
// YYYY[-/]?M[-/]?D, M[-/]?D[-/]?YYYY, YYYY年M月D日, and two-digit-prefixed
// YYYY/MM or bare YYYYMM forms. Alternation order is priority order for
// overlapping matches on the same span.
var datePattern = regexp.MustCompile(`\d{4}[-/]?\d{1,2}[-/]?\d{1,2}|\d{1,2}[-/]?\d{1,2}[-/]?\d{4}|\d{4}年\d{1,2}月\d{1,2}日|\d{2}\d{4}/\d{2}|\d{2}\d{4}`)

// dateLayouts is tried in order against the whole substring. The order is
// load-bearing: some numeric strings parse under more than one layout, and
// earlier layouts win (e.g. "2006-1-2" before "2006-1"). It was tuned
// against real site data, so keep it as is even where it looks redundant.
var dateLayouts = []string{
	"2006年1月2日",
	"20060102",
	"2006/1/2",
	"2006-1-2",
	"2006-1",
	"01022006",
	"022006/1",
}

// RecognizeDate scans free text and returns the first date-looking
// substring, in textual order.
func RecognizeDate(text string) (string, bool) {
	m := datePattern.FindString(text)
	return m, m != ""
}

// ParseDate parses a recognized date substring into a calendar date. The
// first layout that consumes the whole substring wins; a year-month-only
// match gets day 1.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return t, nil
	}
	return time.Time{}, ErrUnrecognizedDate
}
