package extract

import (
	"errors"
	"testing"
)

func TestAmountKeywordMatch(t *testing.T) {
	amt, err := Amount("Grocery Mart\nTotal: 1,234.56\nThank you")
	if err != nil || amt.String() != "1234.56" {
		t.Fatalf("expected 1234.56 got %v err=%v", amt, err)
	}
}

func TestAmountKeywordCaseInsensitive(t *testing.T) {
	for _, text := range []string{"TOTAL 12.34", "tOtAl: 12.34", "Amount Due 12.34", "balance: 12.34"} {
		amt, err := Amount(text)
		if err != nil || amt.String() != "12.34" {
			t.Fatalf("text %q: expected 12.34 got %v err=%v", text, amt, err)
		}
	}
}

func TestAmountKeywordBeatsLargerNumber(t *testing.T) {
	// 999.99 is larger, but the labeled total wins.
	amt, err := Amount("points earned 999.99\nTotal: 40.00")
	if err != nil || amt.String() != "40" {
		t.Fatalf("expected 40 got %v err=%v", amt, err)
	}
}

func TestAmountMaxFallback(t *testing.T) {
	amt, err := Amount("Coffee 12.00\nSandwich 45.67\nno labels here")
	if err != nil || amt.String() != "45.67" {
		t.Fatalf("expected 45.67 got %v err=%v", amt, err)
	}
}

func TestAmountDollarSignAfterKeyword(t *testing.T) {
	// The keyword pattern does not span ": $", so this resolves through
	// the max fallback; the value is the same.
	amt, err := Amount("Total: $1,234.56")
	if err != nil || amt.String() != "1234.56" {
		t.Fatalf("expected 1234.56 got %v err=%v", amt, err)
	}
}

func TestAmountStripsThousandsSeparators(t *testing.T) {
	amt, err := Amount("big purchase 12,345.00 done")
	if err != nil || amt.String() != "12345" {
		t.Fatalf("expected 12345 got %v err=%v", amt, err)
	}
}

func TestAmountRejectsLongDigitRuns(t *testing.T) {
	// 1234.56 has four leading digits; its tail 234.56 sits inside the
	// digit run and must not be picked up either.
	if _, err := Amount("ref 1234.56"); !errors.Is(err, ErrNoAmount) {
		t.Fatalf("expected ErrNoAmount got %v", err)
	}
}

func TestAmountCandidateInsideDigitRun(t *testing.T) {
	// The leading "9995," is id noise, but "123.45" after the comma is a
	// standalone amount and must still be found.
	amt, err := Amount("9995,123.45")
	if err != nil || amt.String() != "123.45" {
		t.Fatalf("expected 123.45 got %v err=%v", amt, err)
	}
}

func TestAmountEmptyText(t *testing.T) {
	if _, err := Amount(""); !errors.Is(err, ErrNoAmount) {
		t.Fatalf("expected ErrNoAmount got %v", err)
	}
}

func TestAmountNoCandidates(t *testing.T) {
	if _, err := Amount("blurry unreadable"); !errors.Is(err, ErrNoAmount) {
		t.Fatalf("expected ErrNoAmount got %v", err)
	}
}

func TestAmountRequiresTwoDecimals(t *testing.T) {
	// 45 and 45.6 are not currency-shaped; 45.678 yields its 45.67 prefix
	// (the pattern does not look ahead past the two decimals).
	amt, err := Amount("price 45 or 45.6 or 45.678")
	if err != nil || amt.String() != "45.67" {
		t.Fatalf("expected 45.67 got %v err=%v", amt, err)
	}
}
