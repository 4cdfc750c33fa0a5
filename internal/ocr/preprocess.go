package ocr

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"

	// Registers the webp decoder with image.Decode; imaging itself only
	// registers jpeg, png, gif, tiff and bmp.
	_ "golang.org/x/image/webp"
)

// MinLongSide is the pixel threshold below which images are upscaled before
// OCR. Small, low-contrast grid photos are the dominant OCR failure mode.
const MinLongSide = 1200

// PrepareImageBytes decodes an in-memory image and returns it preprocessed
// as PNG bytes.
func PrepareImageBytes(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return encodePNG(Preprocess(img))
}

// Preprocess upscales small images proportionally with Lanczos resampling,
// then boosts contrast and sharpens. Color-mode normalization happens as a
// side effect: imaging operations always return NRGBA.
func Preprocess(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if long := max(w, h); long > 0 && long < MinLongSide {
		scale := float64(MinLongSide) / float64(long)
		img = imaging.Resize(img, int(float64(w)*scale), int(float64(h)*scale), imaging.Lanczos)
	}
	img = imaging.AdjustContrast(img, 50)
	return imaging.Sharpen(img, 1.0)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// writeTempPNG spills PNG bytes to a temp file for engines that only read
// paths. The caller removes the file via the returned cleanup.
func writeTempPNG(data []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "tte-ocr-*.png")
	if err != nil {
		return "", nil, err
	}
	name := f.Name()
	cleanup := func() { _ = os.Remove(name) }
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return name, cleanup, nil
}
