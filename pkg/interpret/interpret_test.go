package interpret

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	text string
	err  error
}

func (f fakeEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	return f.text, f.err
}

type blockingEngine struct{}

func (blockingEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func fixedClock() time.Time {
	return time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)
}

func TestInterpretReceiptWithAmountAndDate(t *testing.T) {
	i := NewWithClock(fakeEngine{text: "Coffee Shop\nTotal: $4.50\n2024-06-01"}, 0, fixedClock)
	res := i.Interpret(context.Background(), "receipt.png")

	require.NotNil(t, res.RawText)
	assert.Equal(t, "Coffee Shop\nTotal: $4.50\n2024-06-01", *res.RawText)
	require.NotNil(t, res.Amount)
	assert.Equal(t, "4.5", res.Amount.String())
	assert.Equal(t, "2024-06-01", res.Date)
	assert.Empty(t, res.OCRError)
}

func TestInterpretNoAmountFallsBackToToday(t *testing.T) {
	i := NewWithClock(fakeEngine{text: "blurry unreadable"}, 0, fixedClock)
	res := i.Interpret(context.Background(), "receipt.png")

	require.NotNil(t, res.RawText)
	assert.Nil(t, res.Amount)
	assert.Equal(t, "2024-07-15", res.Date)
	assert.Empty(t, res.OCRError)
}

func TestInterpretEngineAbsent(t *testing.T) {
	i := NewWithClock(nil, 0, fixedClock)
	res := i.Interpret(context.Background(), "receipt.png")

	assert.Nil(t, res.RawText)
	assert.Nil(t, res.Amount)
	assert.Equal(t, "2024-07-15", res.Date)
	assert.Equal(t, OCRUnavailableMessage, res.OCRError)
}

func TestInterpretEngineFailure(t *testing.T) {
	i := NewWithClock(fakeEngine{err: errors.New("corrupt image")}, 0, fixedClock)
	res := i.Interpret(context.Background(), "receipt.png")

	assert.Nil(t, res.RawText)
	assert.Nil(t, res.Amount)
	assert.Equal(t, "2024-07-15", res.Date)
	assert.Equal(t, "OCR failed: corrupt image", res.OCRError)
}

func TestInterpretTimesOutSlowEngine(t *testing.T) {
	i := NewWithClock(blockingEngine{}, 10*time.Millisecond, fixedClock)
	res := i.Interpret(context.Background(), "receipt.png")

	assert.Nil(t, res.RawText)
	assert.Contains(t, res.OCRError, "OCR failed:")
	assert.Contains(t, res.OCRError, context.DeadlineExceeded.Error())
	assert.Equal(t, "2024-07-15", res.Date)
}
