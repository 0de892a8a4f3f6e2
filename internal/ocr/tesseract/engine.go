package tesseract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"mediscribe/internal/config"
	"mediscribe/internal/port"
)

// Engine implements port.TextRecognizer using the gosseract client. The
// engine itself is a long-lived resource constructed once at startup and
// injected into the pipeline; Tesseract handles are created per call because
// they are not safe for concurrent use.
type Engine struct {
	language       string
	tessdataPrefix string
	clientFactory  func() *gosseract.Client
}

// NewEngine constructs a Tesseract-backed recognizer from config.
func NewEngine(cfg *config.OCRConfig) *Engine {
	lang := cfg.Language
	if lang == "" {
		lang = "eng"
	}
	return &Engine{
		language:       lang,
		tessdataPrefix: cfg.TessdataPrefix,
		clientFactory:  gosseract.NewClient,
	}
}

// Recognize runs OCR on one image and returns per-line text with confidences
// normalized to [0,1]. Orientation-aware page segmentation is enabled so
// rotated scans are still read. An empty slice means no text was detected.
func (e *Engine) Recognize(ctx context.Context, image []byte) ([]port.OCRLine, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	c := e.clientFactory()
	defer func() { _ = c.Close() }()

	if e.tessdataPrefix != "" {
		if err := c.SetTessdataPrefix(e.tessdataPrefix); err != nil {
			return nil, fmt.Errorf("setting tessdata prefix: %w", err)
		}
	}
	if err := c.SetLanguage(e.language); err != nil {
		return nil, fmt.Errorf("setting language: %w", err)
	}
	if err := c.SetPageSegMode(gosseract.PSM_AUTO_OSD); err != nil {
		return nil, fmt.Errorf("setting page segmentation mode: %w", err)
	}
	if err := c.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("setting image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognizing text lines: %w", err)
	}

	lines := make([]port.OCRLine, 0, len(boxes))
	for _, b := range boxes {
		conf := b.Confidence / 100.0
		if conf < 0 {
			conf = 0
		}
		if conf > 1 {
			conf = 1
		}
		lines = append(lines, port.OCRLine{Text: b.Word, Confidence: conf})
	}
	return lines, nil
}
