package port

import "context"

// OCRLine is one detected text line and the engine's confidence in it,
// normalized to [0,1].
type OCRLine struct {
	Text       string
	Confidence float64
}

// TextRecognizer abstracts a single-image OCR call. An empty slice means no
// text was detected (blank page, unreadable image); that is not an error.
type TextRecognizer interface {
	Recognize(ctx context.Context, image []byte) ([]OCRLine, error)
}
