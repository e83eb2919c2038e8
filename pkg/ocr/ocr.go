// Package ocr wraps the external OCR capability behind a small interface
// so the receipt interpreter can treat it as an optional collaborator:
// absence is a typed state (a nil Engine), not a caught failure.
package ocr

import "context"

// Engine produces raw text from an image file. Implementations may block
// for multiple seconds per call and must honor ctx cancellation.
type Engine interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}
