package extract

import (
	"errors"
	"testing"
)

func TestNormalizeDateIdempotent(t *testing.T) {
	got, err := NormalizeDate("2024-03-04")
	if err != nil || got != "2024-03-04" {
		t.Fatalf("expected 2024-03-04 got %q err=%v", got, err)
	}
}

func TestNormalizeDateSlashes(t *testing.T) {
	got, err := NormalizeDate("2024/06/01")
	if err != nil || got != "2024-06-01" {
		t.Fatalf("expected 2024-06-01 got %q err=%v", got, err)
	}
}

func TestNormalizeDateMMDDBeforeDDMM(t *testing.T) {
	// Fixed tie-break: March 4th, not April 3rd.
	got, err := NormalizeDate("03/04/2024")
	if err != nil || got != "2024-03-04" {
		t.Fatalf("expected 2024-03-04 got %q err=%v", got, err)
	}
}

func TestNormalizeDateDDMMFallback(t *testing.T) {
	// 13 is not a month, so the DD/MM/YYYY shape applies.
	got, err := NormalizeDate("13/04/2024")
	if err != nil || got != "2024-04-13" {
		t.Fatalf("expected 2024-04-13 got %q err=%v", got, err)
	}
}

func TestNormalizeDateRejects(t *testing.T) {
	for _, raw := range []string{"", "not a date", "2024-13-40", "04-03-2024", "2024-03-04 extra"} {
		if _, err := NormalizeDate(raw); !errors.Is(err, ErrNoDate) {
			t.Fatalf("raw %q: expected ErrNoDate got %v", raw, err)
		}
	}
}

func TestDatePatternPriority(t *testing.T) {
	// The ISO shape wins even when a slash date appears earlier in the text.
	got, err := Date("paid 01/02/2023, shipped 2024-06-01")
	if err != nil || got != "2024-06-01" {
		t.Fatalf("expected 2024-06-01 got %q err=%v", got, err)
	}
}

func TestDateSlashShape(t *testing.T) {
	got, err := Date("visited on 03/04/2024 at noon")
	if err != nil || got != "2024-03-04" {
		t.Fatalf("expected 2024-03-04 got %q err=%v", got, err)
	}
}

func TestDateFirstMatchPerPattern(t *testing.T) {
	// Only the leftmost match of each pattern is offered to the
	// normalizer; when it fails, the next pattern is tried, not the next
	// occurrence of the same pattern.
	got, err := Date("9999-99-99 2024/05/06")
	if err != nil || got != "2024-05-06" {
		t.Fatalf("expected 2024-05-06 got %q err=%v", got, err)
	}
}

func TestDateEmptyText(t *testing.T) {
	if _, err := Date(""); !errors.Is(err, ErrNoDate) {
		t.Fatalf("expected ErrNoDate got %v", err)
	}
}

func TestDateNoMatch(t *testing.T) {
	if _, err := Date("no dates here, only 4.50"); !errors.Is(err, ErrNoDate) {
		t.Fatalf("expected ErrNoDate got %v", err)
	}
}
