package ocr_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediscribe/internal/ocr"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPreprocess_BinarizesImage(t *testing.T) {
	// A gradient with a dark "glyph" block in the middle.
	src := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			v := uint8(100 + 4*x)
			src.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	for y := 12; y < 20; y++ {
		for x := 12; x < 20; x++ {
			src.Set(x, y, color.RGBA{A: 255})
		}
	}

	out, err := ocr.Preprocess(encodePNG(t, src))
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), decoded.Bounds())

	// Every pixel must be pure black or pure white after binarization.
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			g := color.GrayModel.Convert(decoded.At(x, y)).(color.Gray)
			assert.True(t, g.Y == 0 || g.Y == 255, "pixel (%d,%d) = %d", x, y, g.Y)
		}
	}

	// The glyph interior is darker than its neighborhood and must survive as black.
	g := color.GrayModel.Convert(decoded.At(15, 15)).(color.Gray)
	assert.Equal(t, uint8(0), g.Y)
}

func TestPreprocess_InvalidImage(t *testing.T) {
	out, err := ocr.Preprocess([]byte("not an image"))
	assert.Error(t, err)
	assert.Nil(t, out)
}
