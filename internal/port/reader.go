package port

import (
	"context"

	"mediscribe/internal/domain"
)

// ExtractionResult is the outcome of reading one document. Confidence is 1.0
// when text came from a digital PDF's embedded text layer, an OCR-reported
// mean otherwise. Empty text always carries confidence 0.
type ExtractionResult struct {
	Text       string
	Confidence float64
}

// DocumentReader turns one file into text plus a confidence score. It never
// fails: any error collapses to an empty result.
type DocumentReader interface {
	Read(ctx context.Context, filePath string, fileType domain.FileType) ExtractionResult
}
