package engine

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

const (
	maxImageBytes = 10 << 20
	// Larger images are scaled down to fit this box before embedding.
	maxImageSide = 512
)

var errNotImage = errors.New("not an image")

// LoadImageDataURI reads an image file and returns it as a data URI. Images larger
// than maxImageSide on either side are downscaled and re-encoded.
func LoadImageDataURI(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", ImageError{Path: path, Err: err}
	}
	if info.Size() > maxImageBytes {
		return "", ImageError{Path: path, Err: fmt.Errorf("file is %d bytes, limit %d", info.Size(), maxImageBytes)}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ImageError{Path: path, Err: err}
	}
	uri, err := EncodeImageDataURI(data)
	if err != nil {
		return "", ImageError{Path: path, Err: err}
	}
	return uri, nil
}

// EncodeImageDataURI sniffs data, shrinks decodable raster images and wraps the
// result in a base64 data URI.
func EncodeImageDataURI(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: %s", errNotImage, mt.String())
	}
	mime := mt.String()

	if img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true)); err == nil {
		if shrunk, ok := shrink(img); ok {
			var buf bytes.Buffer
			format := imaging.JPEG
			mime = "image/jpeg"
			if mt.Is("image/png") {
				format = imaging.PNG
				mime = "image/png"
			}
			if err := imaging.Encode(&buf, shrunk, format); err != nil {
				return "", fmt.Errorf("encode image: %w", err)
			}
			data = buf.Bytes()
		}
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func shrink(img image.Image) (image.Image, bool) {
	b := img.Bounds()
	if b.Dx() <= maxImageSide && b.Dy() <= maxImageSide {
		return img, false
	}
	return imaging.Fit(img, maxImageSide, maxImageSide, imaging.Lanczos), true
}
