package common

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/jackmordaunt/icns/v3"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	ico "github.com/sergeymakinen/go-ico"
)

// Format identifies the target container for an encode.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	WEBP Format = "webp"
	ICO  Format = "ico"
	ICNS Format = "icns"
)

// SupportsAlpha reports whether the container can hold an alpha channel.
func (f Format) SupportsAlpha() bool {
	return f != JPEG
}

// OverwritePolicy decides what happens when the destination file already
// exists.
type OverwritePolicy int

const (
	SkipIfExists OverwritePolicy = iota
	AlwaysOverwrite
)

// EncodeOptions carries format-specific parameters.
type EncodeOptions struct {
	JPEGQuality int     // 1-100, JPEG only
	WebPQuality float32 // 1-100, WEBP only
	IcoSizes    []int   // square frame edge lengths, ICO only
}

// WriteImage encodes img in the given format and writes it to path.
// The write goes to a temp file in the destination directory which is
// renamed over the target, so a failed write never corrupts a previously
// valid file. When the policy is SkipIfExists and the destination exists,
// nothing is written and skipped is true.
func WriteImage(img image.Image, path string, format Format, opts EncodeOptions, policy OverwritePolicy) (skipped bool, err error) {
	if policy == SkipIfExists {
		if _, statErr := os.Stat(path); statErr == nil {
			return true, nil
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return false, fmt.Errorf("%w: create temp for %s: %v", ErrIOFailure, path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = encode(tmp, img, format, opts); err != nil {
		return false, err
	}
	if err = tmp.Close(); err != nil {
		return false, fmt.Errorf("%w: close %s: %v", ErrIOFailure, tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return false, fmt.Errorf("%w: rename to %s: %v", ErrIOFailure, path, err)
	}
	return false, nil
}

func encode(w io.Writer, img image.Image, format Format, opts EncodeOptions) error {
	switch format {
	case PNG:
		if err := imaging.Encode(w, img, imaging.PNG); err != nil {
			return fmt.Errorf("%w: encode png: %v", ErrIOFailure, err)
		}
	case JPEG:
		if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(opts.JPEGQuality)); err != nil {
			return fmt.Errorf("%w: encode jpeg: %v", ErrIOFailure, err)
		}
	case WEBP:
		enc, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, opts.WebPQuality)
		if err != nil {
			return fmt.Errorf("%w: webp encoder options: %v", ErrUnsupportedFormat, err)
		}
		if err := webp.Encode(w, img, enc); err != nil {
			return fmt.Errorf("%w: encode webp: %v", ErrIOFailure, err)
		}
	case ICO:
		return encodeICO(w, img, opts.IcoSizes)
	case ICNS:
		if err := icns.Encode(w, img); err != nil {
			return fmt.Errorf("%w: encode icns: %v", ErrIOFailure, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

// encodeICO resizes the base image to every requested frame size and
// embeds all frames in one container. A single-size .ico is simply a
// one-element size list.
func encodeICO(w io.Writer, img image.Image, sizes []int) error {
	if len(sizes) == 0 {
		return fmt.Errorf("%w: ico bundle needs at least one frame size", ErrUnsupportedFormat)
	}

	frames := make([]image.Image, 0, len(sizes))
	for _, size := range sizes {
		frame, err := Resize(img, size, size)
		if err != nil {
			return err
		}
		frames = append(frames, frame)
	}

	if err := ico.EncodeAll(w, frames); err != nil {
		return fmt.Errorf("%w: encode ico: %v", ErrIOFailure, err)
	}
	return nil
}
