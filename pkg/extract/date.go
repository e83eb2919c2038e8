package extract

import (
	"regexp"
	"time"
)

// CanonicalDateLayout is the date form used for all persisted and compared
// dates.
const CanonicalDateLayout = "2006-01-02"

// dateLayouts are the accepted input shapes, tried in this fixed order.
// MM/DD/YYYY is tried before DD/MM/YYYY, so a numeric date like 03/04/2024
// is read as March 4th, not April 3rd. That is a fixed, documented
// tie-break, not a detection heuristic.
var dateLayouts = []string{
	CanonicalDateLayout,
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
}

// datePatterns are the date-shaped substrings the extractor looks for, in
// priority order. The third pattern is syntactically both MM/DD/YYYY and
// DD/MM/YYYY; NormalizeDate resolves it via its fixed layout order.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`\d{4}/\d{2}/\d{2}`),
	regexp.MustCompile(`\d{2}/\d{2}/\d{4}`),
}

// NormalizeDate parses raw against the accepted shapes in fixed order and
// returns the first successful parse in canonical YYYY-MM-DD form. The
// parse is strict: the whole string must match one shape exactly.
func NormalizeDate(raw string) (string, error) {
	if raw == "" {
		return "", ErrNoDate
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return t.Format(CanonicalDateLayout), nil
	}
	return "", ErrNoDate
}

// Date scans free text for a date-shaped substring. For each pattern in
// priority order, the leftmost match is handed to NormalizeDate; the first
// accepted one wins. Returns ErrNoDate when the text is empty or no
// pattern yields a normalizable match.
func Date(text string) (string, error) {
	if text == "" {
		return "", ErrNoDate
	}
	for _, p := range datePatterns {
		m := p.FindString(text)
		if m == "" {
			continue
		}
		if d, err := NormalizeDate(m); err == nil {
			return d, nil
		}
	}
	return "", ErrNoDate
}
