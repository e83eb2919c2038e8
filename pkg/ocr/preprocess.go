package ocr

import (
	"os"

	"github.com/disintegration/imaging"
)

// Images shorter than minHeight are upscaled to targetHeight before OCR;
// small phone crops lose too many glyph details otherwise.
const (
	minHeight    = 800
	targetHeight = 1200
)

// prepareImage grayscales, bumps contrast and (if needed) upscales the
// input, writing the result to a temp file. The returned cleanup removes
// that file. If the preprocessed copy cannot be written, the original path
// is used as-is with a no-op cleanup.
func prepareImage(path string) (string, func(), error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", nil, err
	}
	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 15)
	if gray.Bounds().Dy() < minHeight {
		gray = imaging.Resize(gray, 0, targetHeight, imaging.Lanczos)
	}
	tmp, err := os.CreateTemp("", "receipt-ocr-*.png")
	if err != nil {
		return path, func() {}, nil
	}
	name := tmp.Name()
	_ = tmp.Close()
	if err := imaging.Save(gray, name); err != nil {
		_ = os.Remove(name)
		return path, func() {}, nil
	}
	return name, func() { _ = os.Remove(name) }, nil
}
