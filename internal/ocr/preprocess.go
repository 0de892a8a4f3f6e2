package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Adaptive threshold parameters, tuned for printed clinical documents.
const (
	thresholdWindow = 11
	thresholdBias   = 2
)

// Preprocess prepares a document image for OCR: grayscale conversion, a light
// denoise pass, then adaptive threshold binarization. Returns the processed
// image re-encoded as PNG. Callers fall back to the raw image on error.
func Preprocess(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	gray := toGray(src)
	denoised := boxBlur(gray, 1)
	binary := adaptiveThreshold(denoised, thresholdWindow, thresholdBias)

	var buf bytes.Buffer
	if err := png.Encode(&buf, binary); err != nil {
		return nil, fmt.Errorf("encoding preprocessed image: %w", err)
	}
	return buf.Bytes(), nil
}

func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, src.At(x, y))
		}
	}
	return gray
}

// boxBlur averages each pixel with its neighbors within the given radius.
// Radius 1 (3x3 kernel) removes scanner speckle without smearing glyph edges.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var sum, n int
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					px, py := x+dx, y+dy
					if px < b.Min.X || px >= b.Max.X || py < b.Min.Y || py >= b.Max.Y {
						continue
					}
					sum += int(src.GrayAt(px, py).Y)
					n++
				}
			}
			out.SetGray(x, y, colorGray(sum/n))
		}
	}
	return out
}

// adaptiveThreshold binarizes against the local mean over a window x window
// neighborhood, minus a constant bias. Local thresholds handle uneven
// lighting across a scanned page far better than a single global cutoff.
func adaptiveThreshold(src *image.Gray, window, bias int) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(b)
	half := window / 2
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var sum, n int
			for dy := -half; dy <= half; dy++ {
				for dx := -half; dx <= half; dx++ {
					px, py := x+dx, y+dy
					if px < b.Min.X || px >= b.Max.X || py < b.Min.Y || py >= b.Max.Y {
						continue
					}
					sum += int(src.GrayAt(px, py).Y)
					n++
				}
			}
			mean := sum / n
			if int(src.GrayAt(x, y).Y) > mean-bias {
				out.SetGray(x, y, colorGray(255))
			} else {
				out.SetGray(x, y, colorGray(0))
			}
		}
	}
	return out
}

func colorGray(v int) color.Gray {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return color.Gray{Y: uint8(v)}
}
