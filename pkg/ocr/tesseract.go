package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes text with gosseract over a lightly preprocessed
// copy of the image.
type Tesseract struct {
	Language string
}

func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = "eng"
	}
	return &Tesseract{Language: language}
}

// Recognize runs OCR in a separate goroutine so an unresponsive Tesseract
// invocation cannot block the caller past its deadline. The abandoned
// goroutine finishes in the background; gosseract has no cancel hook.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := t.recognize(imagePath)
		ch <- result{text: text, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.text, r.err
	}
}

func (t *Tesseract) recognize(imagePath string) (string, error) {
	prepared, cleanup, err := prepareImage(imagePath)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer cleanup()

	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage(t.Language); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if err := client.SetImage(prepared); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr error: %w", err)
	}
	return text, nil
}
