package ocr_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
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

func writeTestPNG(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetGray(x, y, color.Gray{Y: 200})
		}
	}
	path := filepath.Join(t.TempDir(), "scan.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestReader_ReadImage(t *testing.T) {
	recognizer := new(mocks.MockTextRecognizer)
	recognizer.On("Recognize", mock.Anything, mock.Anything).Return([]port.OCRLine{
		{Text: "Patient: Jane Roe", Confidence: 0.9},
		{Text: "BP 120/80", Confidence: 0.7},
	}, nil)

	reader := ocr.NewReader(recognizer, &config.OCRConfig{})
	result := reader.Read(context.Background(), writeTestPNG(t), domain.FileTypePNG)

	assert.Equal(t, "Patient: Jane Roe\nBP 120/80", result.Text)
	assert.InDelta(t, 0.8, result.Confidence, 1e-9)
	recognizer.AssertExpectations(t)
}

func TestReader_ReadImage_RecognizerError(t *testing.T) {
	recognizer := new(mocks.MockTextRecognizer)
	recognizer.On("Recognize", mock.Anything, mock.Anything).Return(nil, errors.New("engine unavailable"))

	reader := ocr.NewReader(recognizer, &config.OCRConfig{})
	result := reader.Read(context.Background(), writeTestPNG(t), domain.FileTypePNG)

	assert.Empty(t, result.Text)
	assert.Zero(t, result.Confidence)
}

func TestReader_ReadImage_NoLinesDetected(t *testing.T) {
	recognizer := new(mocks.MockTextRecognizer)
	recognizer.On("Recognize", mock.Anything, mock.Anything).Return([]port.OCRLine{}, nil)

	reader := ocr.NewReader(recognizer, &config.OCRConfig{})
	result := reader.Read(context.Background(), writeTestPNG(t), domain.FileTypePNG)

	assert.Empty(t, result.Text)
	assert.Zero(t, result.Confidence)
}

func TestReader_UnsupportedFileType(t *testing.T) {
	recognizer := new(mocks.MockTextRecognizer)

	reader := ocr.NewReader(recognizer, &config.OCRConfig{})
	result := reader.Read(context.Background(), "report.docx", domain.FileType("docx"))

	assert.Empty(t, result.Text)
	assert.Zero(t, result.Confidence)
	recognizer.AssertNotCalled(t, "Recognize")
}

func TestReader_MissingImageFile(t *testing.T) {
	recognizer := new(mocks.MockTextRecognizer)

	reader := ocr.NewReader(recognizer, &config.OCRConfig{})
	result := reader.Read(context.Background(), filepath.Join(t.TempDir(), "missing.png"), domain.FileTypePNG)

	assert.Empty(t, result.Text)
	assert.Zero(t, result.Confidence)
	recognizer.AssertNotCalled(t, "Recognize")
}

func TestReader_FileTypeCaseInsensitive(t *testing.T) {
	recognizer := new(mocks.MockTextRecognizer)
	recognizer.On("Recognize", mock.Anything, mock.Anything).Return([]port.OCRLine{
		{Text: "Rx Amoxicillin 500mg", Confidence: 0.95},
	}, nil)

	reader := ocr.NewReader(recognizer, &config.OCRConfig{})
	result := reader.Read(context.Background(), writeTestPNG(t), domain.FileType("PNG"))

	assert.Equal(t, "Rx Amoxicillin 500mg", result.Text)
}
