package ocr_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mediscribe/internal/config"
	"mediscribe/internal/domain"
	"mediscribe/internal/ocr"
	"mediscribe/internal/port"
	"mediscribe/mocks"
)

// writePDF builds a minimal single-font PDF with one Tj text line per page.
// Page texts must not contain parentheses or backslashes.
func writePDF(t *testing.T, pageTexts []string) string {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	n := len(pageTexts)
	offsets := make([]int, 0, 3+2*n)
	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	kids := make([]string, n)
	for i := range pageTexts {
		kids[i] = fmt.Sprintf("%d 0 R", 4+i)
	}

	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	addObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), n))
	addObj("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")
	for i := range pageTexts {
		addObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>\nendobj\n",
			4+i, 4+n+i))
	}
	for i, text := range pageTexts {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		addObj(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			4+n+i, len(stream), stream))
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefStart)

	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestReader_ReadPDF_DigitalFastPath(t *testing.T) {
	longText := "Patient Jane Roe presented with persistent headaches and elevated blood pressure. " +
		"Prescribed sumatriptan 50mg and scheduled a follow up visit in two weeks."
	require.Greater(t, len(longText), 100)

	recognizer := new(mocks.MockTextRecognizer)
	reader := ocr.NewReader(recognizer, &config.OCRConfig{})
	result := reader.Read(context.Background(), writePDF(t, []string{longText}), domain.FileTypePDF)

	assert.Contains(t, result.Text, "sumatriptan 50mg")
	assert.Equal(t, 1.0, result.Confidence)
	recognizer.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything)
}

func TestReader_ReadPDF_ScannedFallsBackToOCR(t *testing.T) {
	// Embedded text well under the digital threshold forces per-page OCR.
	recognizer := new(mocks.MockTextRecognizer)
	recognizer.On("Recognize", mock.Anything, mock.Anything).Return([]port.OCRLine{
		{Text: "Chief complaint: headache", Confidence: 0.5},
	}, nil).Once()
	recognizer.On("Recognize", mock.Anything, mock.Anything).Return([]port.OCRLine{
		{Text: "Plan: rest and fluids", Confidence: 0.9},
	}, nil).Once()

	reader := ocr.NewReader(recognizer, &config.OCRConfig{PDFRenderDPI: 36})
	result := reader.Read(context.Background(), writePDF(t, []string{"p1", "p2"}), domain.FileTypePDF)

	assert.Equal(t,
		"--- Page 1 ---\nChief complaint: headache\n\n--- Page 2 ---\nPlan: rest and fluids",
		result.Text)
	assert.InDelta(t, 0.7, result.Confidence, 1e-9)
	recognizer.AssertExpectations(t)
}

func TestReader_ReadPDF_ThresholdIsStrict(t *testing.T) {
	// Trimmed embedded text of exactly the threshold length still counts as
	// scanned; only strictly longer text takes the fast path.
	text := strings.Repeat("a", 8)
	recognizer := new(mocks.MockTextRecognizer)
	recognizer.On("Recognize", mock.Anything, mock.Anything).Return([]port.OCRLine{
		{Text: "ocr text", Confidence: 0.8},
	}, nil)

	reader := ocr.NewReader(recognizer, &config.OCRConfig{PDFTextThreshold: len(text), PDFRenderDPI: 36})
	result := reader.Read(context.Background(), writePDF(t, []string{text}), domain.FileTypePDF)

	assert.Equal(t, "--- Page 1 ---\nocr text", result.Text)
	recognizer.AssertExpectations(t)
}

func TestReader_ReadPDF_ZeroPages(t *testing.T) {
	recognizer := new(mocks.MockTextRecognizer)

	reader := ocr.NewReader(recognizer, &config.OCRConfig{})
	result := reader.Read(context.Background(), writePDF(t, nil), domain.FileTypePDF)

	assert.Empty(t, result.Text)
	assert.Zero(t, result.Confidence)
	recognizer.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything)
}

func TestReader_ReadPDF_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

	recognizer := new(mocks.MockTextRecognizer)
	reader := ocr.NewReader(recognizer, &config.OCRConfig{})
	result := reader.Read(context.Background(), path, domain.FileTypePDF)

	assert.Empty(t, result.Text)
	assert.Zero(t, result.Confidence)
	recognizer.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything)
}
