package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"

	"mediscribe/internal/config"
	"mediscribe/internal/domain"
	"mediscribe/internal/port"
)

// Reader implements port.DocumentReader. PDFs with a usable embedded text
// layer are read directly; everything else goes through preprocessing and
// the OCR engine.
type Reader struct {
	recognizer    port.TextRecognizer
	textThreshold int
	renderDPI     float64
}

// NewReader creates a document reader backed by the given recognizer.
func NewReader(recognizer port.TextRecognizer, cfg *config.OCRConfig) *Reader {
	threshold := cfg.PDFTextThreshold
	if threshold <= 0 {
		threshold = 100
	}
	dpi := cfg.PDFRenderDPI
	if dpi <= 0 {
		dpi = 144
	}
	return &Reader{
		recognizer:    recognizer,
		textThreshold: threshold,
		renderDPI:     float64(dpi),
	}
}

// Read extracts text from the file at filePath. It never fails: unsupported
// types and all extraction errors collapse to an empty result.
func (r *Reader) Read(ctx context.Context, filePath string, fileType domain.FileType) port.ExtractionResult {
	switch domain.FileType(strings.ToLower(string(fileType))) {
	case domain.FileTypePDF:
		return r.readPDF(ctx, filePath)
	case domain.FileTypeJPG, domain.FileTypeJPEG, domain.FileTypePNG, domain.FileTypeBMP, domain.FileTypeTIFF:
		return r.readImage(ctx, filePath)
	default:
		log.Printf("ocr.Reader: unsupported file type %q for %s", fileType, filePath)
		return port.ExtractionResult{}
	}
}

// readPDF first tries the embedded text layer of every page. If the combined
// text is longer than the digital-PDF threshold it is returned as-is with
// confidence 1.0 and no page is ever rendered. Shorter text means the PDF is
// treated as scanned: each page is rasterized at renderDPI and OCR'd, and the
// result confidence is the mean of per-page confidences.
func (r *Reader) readPDF(ctx context.Context, filePath string) port.ExtractionResult {
	doc, err := fitz.New(filePath)
	if err != nil {
		log.Printf("ocr.Reader: opening pdf %s: %v", filePath, err)
		return port.ExtractionResult{}
	}
	defer func() { _ = doc.Close() }()

	var direct strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			log.Printf("ocr.Reader: reading text layer of %s page %d: %v", filePath, i+1, err)
			continue
		}
		direct.WriteString(text)
	}
	if len(strings.TrimSpace(direct.String())) > r.textThreshold {
		return port.ExtractionResult{Text: direct.String(), Confidence: 1.0}
	}

	if doc.NumPage() == 0 {
		return port.ExtractionResult{}
	}

	blocks := make([]string, 0, doc.NumPage())
	confidences := make([]float64, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		raster, err := renderPage(doc, i, r.renderDPI)
		if err != nil {
			log.Printf("ocr.Reader: rendering %s page %d: %v", filePath, i+1, err)
			return port.ExtractionResult{}
		}
		text, conf := r.ocrImage(ctx, raster)
		blocks = append(blocks, fmt.Sprintf("--- Page %d ---\n%s", i+1, text))
		confidences = append(confidences, conf)
	}

	return port.ExtractionResult{
		Text:       strings.Join(blocks, "\n\n"),
		Confidence: mean(confidences),
	}
}

func (r *Reader) readImage(ctx context.Context, filePath string) port.ExtractionResult {
	data, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("ocr.Reader: reading image %s: %v", filePath, err)
		return port.ExtractionResult{}
	}
	text, conf := r.ocrImage(ctx, data)
	return port.ExtractionResult{Text: text, Confidence: conf}
}

// ocrImage preprocesses the image and runs it through the recognizer. A
// preprocessing failure falls back to the raw image; a recognizer failure or
// an empty detection yields ("", 0.0).
func (r *Reader) ocrImage(ctx context.Context, data []byte) (string, float64) {
	input := data
	if processed, err := Preprocess(data); err == nil {
		input = processed
	} else {
		log.Printf("ocr.Reader: preprocessing failed, using raw image: %v", err)
	}

	lines, err := r.recognizer.Recognize(ctx, input)
	if err != nil {
		log.Printf("ocr.Reader: recognition failed: %v", err)
		return "", 0.0
	}
	return aggregateLines(lines)
}

// aggregateLines joins detected lines with newlines and averages their
// confidences. No lines means no text: ("", 0.0).
func aggregateLines(lines []port.OCRLine) (string, float64) {
	if len(lines) == 0 {
		return "", 0.0
	}
	texts := make([]string, 0, len(lines))
	confidences := make([]float64, 0, len(lines))
	for _, l := range lines {
		texts = append(texts, l.Text)
		confidences = append(confidences, l.Confidence)
	}
	return strings.Join(texts, "\n"), mean(confidences)
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0.0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// renderPage rasterizes one PDF page into an in-memory PNG. The buffer is
// scoped to the caller and released as soon as OCR on the page completes.
func renderPage(doc *fitz.Document, page int, dpi float64) ([]byte, error) {
	img, err := doc.ImageDPI(page, dpi)
	if err != nil {
		return nil, fmt.Errorf("rasterizing page %d: %w", page+1, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding page %d raster: %w", page+1, err)
	}
	return buf.Bytes(), nil
}
