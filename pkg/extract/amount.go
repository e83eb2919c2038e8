// Package extract holds the pure text heuristics that turn raw, noisy OCR
// output into a normalized amount and date. Everything here is a function
// of its input text: no I/O, no clock, no storage.
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// A semantically labeled amount: keyword, optional ':' or '$', then a
	// number with exactly two decimals and optional comma thousands.
	keywordAmountRE = regexp.MustCompile(`(?i)(total|amount due|balance)\s*[:$]?\s*([0-9,]+\.[0-9]{2})`)
	// A standalone currency-shaped number: 1-3 leading digits, optional
	// comma-grouped thousands, exactly two decimal digits.
	currencyAmountRE = regexp.MustCompile(`[0-9]{1,3}(?:,[0-9]{3})*\.[0-9]{2}`)
)

// Amount scans free text for a monetary amount. A keyword-labeled number
// wins outright; otherwise the largest currency-shaped number on the page
// is taken, on the theory that the biggest dollar-like figure on a receipt
// is usually the total. Returns ErrNoAmount when nothing plausible exists.
func Amount(text string) (decimal.Decimal, error) {
	if text == "" {
		return decimal.Decimal{}, ErrNoAmount
	}
	if m := keywordAmountRE.FindStringSubmatch(text); len(m) >= 3 {
		if amt, err := parseAmount(m[2]); err == nil {
			return amt, nil
		}
	}
	var best decimal.Decimal
	found := false
	for pos := 0; pos < len(text); {
		loc := currencyAmountRE.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		// A match preceded by a digit is the tail of a longer digit run
		// (an id, a phone number), not a standalone amount. Resume one
		// byte in rather than past the match: a shorter candidate may
		// start inside the rejected span, e.g. after a comma.
		if start > 0 && isDigit(text[start-1]) {
			pos = start + 1
			continue
		}
		if amt, err := parseAmount(text[start:end]); err == nil {
			if !found || amt.GreaterThan(best) {
				best = amt
				found = true
			}
		}
		pos = end
	}
	if !found {
		return decimal.Decimal{}, ErrNoAmount
	}
	return best, nil
}

// parseAmount converts a matched substring to a decimal, stripping
// thousands separators first.
func parseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
