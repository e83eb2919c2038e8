// Package interpret turns a stored receipt image into a normalized
// interpretation result: it calls the OCR collaborator (when present) and
// runs the pure extractors over whatever text came back. It performs no
// persistence.
package interpret

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"receiptbook/pkg/extract"
	"receiptbook/pkg/ocr"
)

// OCRUnavailableMessage is carried in Result.OCRError when no OCR engine
// is configured.
const OCRUnavailableMessage = "OCR libraries not installed."

// Result is the transient outcome of interpreting one receipt image.
// RawText and Amount are nil when undetermined; Date always has a value,
// either the detected date or the processing day.
type Result struct {
	RawText  *string
	Amount   *decimal.Decimal
	Date     string
	OCRError string
}

// Interpreter orchestrates the OCR collaborator and the extractors. A nil
// engine means the OCR capability is absent; interpretation still proceeds
// on absent text, so every upload yields a result.
type Interpreter struct {
	engine  ocr.Engine
	timeout time.Duration
	now     func() time.Time
}

// New returns an Interpreter. engine may be nil (capability absent);
// timeout bounds each OCR call, zero means no bound.
func New(engine ocr.Engine, timeout time.Duration) *Interpreter {
	return &Interpreter{engine: engine, timeout: timeout, now: time.Now}
}

// NewWithClock is New with an injectable clock for tests.
func NewWithClock(engine ocr.Engine, timeout time.Duration, now func() time.Time) *Interpreter {
	return &Interpreter{engine: engine, timeout: timeout, now: now}
}

// Interpret produces a Result for the image at path. OCR unavailability
// and OCR failure are both downgraded to a warning message on the result;
// neither stops extraction.
func (i *Interpreter) Interpret(ctx context.Context, path string) Result {
	var res Result
	if i.engine == nil {
		res.OCRError = OCRUnavailableMessage
	} else {
		if i.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, i.timeout)
			defer cancel()
		}
		text, err := i.engine.Recognize(ctx, path)
		if err != nil {
			res.OCRError = fmt.Sprintf("OCR failed: %v", err)
		} else {
			res.RawText = &text
		}
	}

	var text string
	if res.RawText != nil {
		text = *res.RawText
	}
	if amount, err := extract.Amount(text); err == nil {
		res.Amount = &amount
	}
	date, err := extract.Date(text)
	if err != nil {
		date = i.now().Format(extract.CanonicalDateLayout)
	}
	res.Date = date
	return res
}
