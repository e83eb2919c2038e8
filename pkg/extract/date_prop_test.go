package extract

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// Stability law: any date the extractor produces must re-parse through the
// normalizer to the identical canonical string.
func TestDateRoundTripStability(t *testing.T) {
	shapes := []string{"%04d-%02d-%02d", "%04d/%02d/%02d", "%02d/%02d/%04d"}
	rapid.Check(t, func(t *rapid.T) {
		year := rapid.IntRange(1970, 2099).Draw(t, "year")
		month := rapid.IntRange(1, 12).Draw(t, "month")
		day := rapid.IntRange(1, 28).Draw(t, "day")
		shape := rapid.SampledFrom(shapes).Draw(t, "shape")

		var raw string
		if shape == "%02d/%02d/%04d" {
			raw = fmt.Sprintf(shape, month, day, year)
		} else {
			raw = fmt.Sprintf(shape, year, month, day)
		}
		text := "Receipt " + raw + " thank you"

		got, err := Date(text)
		if err != nil {
			t.Fatalf("Date(%q) unexpectedly failed: %v", text, err)
		}
		normalized, err := NormalizeDate(got)
		if err != nil {
			t.Fatalf("NormalizeDate(%q) failed: %v", got, err)
		}
		if normalized != got {
			t.Fatalf("round trip unstable: extracted %q, re-normalized %q", got, normalized)
		}
	})
}
