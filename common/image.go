package common

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"

	// Register the WebP decoder so imaging.Open handles .webp sources.
	_ "golang.org/x/image/webp"
)

// Error categories for asset generation. Callers match with errors.Is.
var (
	ErrNotFound          = errors.New("source image not found")
	ErrIOFailure         = errors.New("file read/write failed")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// LoadImage opens and decodes an image file. A missing file reports
// ErrNotFound; unreadable or undecodable files report ErrIOFailure.
func LoadImage(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", ErrIOFailure, path, err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrIOFailure, path, err)
	}
	return img, nil
}

// Normalize returns a copy of img in the right color mode for a target
// that does or does not support an alpha channel. For an alpha-capable
// target the result always carries an alpha channel (fully opaque if the
// source had none). For an opaque target the image is composited onto a
// white background and the transparency discarded.
//
// Paletted and grayscale sources take the same two branches: Clone
// converts every source mode to NRGBA before the alpha decision.
func Normalize(img image.Image, supportsAlpha bool) *image.NRGBA {
	src := imaging.Clone(img)
	if supportsAlpha {
		return src
	}

	bg := imaging.New(src.Bounds().Dx(), src.Bounds().Dy(), color.White)
	return imaging.Overlay(bg, src, image.Pt(0, 0), 1.0)
}

// Resize scales img to exactly width x height using Lanczos resampling.
// The input is not mutated and the aspect ratio is intentionally not
// preserved; callers supply exact target dimensions.
func Resize(img image.Image, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}
