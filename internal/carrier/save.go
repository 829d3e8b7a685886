package carrier

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/faanross/stegokit/internal/logger"
	"github.com/samber/oops"
	"golang.org/x/image/bmp"
)

// Output formats
const (
	PNG = "png"
	BMP = "bmp"
)

// FormatFromPath picks the output format from the file extension. Only
// lossless formats are accepted.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case PNG, BMP:
		return ext, nil
	case "jpg", "jpeg", "gif":
		return "", oops.With("path", path).Errorf("%w: .%s", ErrLossyFormat, ext)
	default:
		return "", oops.With("path", path).Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Encode writes r to w in the given lossless format.
func Encode(w io.Writer, kind string, r *Raster) error {
	var img image.Image = r.Image()
	if r.Opaque() {
		// Opaque images go out as RGBA so bmp writes 24-bit pixels.
		rgba := image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, image.Point{}, draw.Src)
		img = rgba
	}

	switch kind {
	case PNG:
		if err := png.Encode(w, img); err != nil {
			return oops.Wrapf(err, "PNG encoding failed")
		}
	case BMP:
		if err := bmp.Encode(w, img); err != nil {
			return oops.Wrapf(err, "BMP encoding failed")
		}
	default:
		return oops.With("format", kind).Errorf("%w: %q", ErrUnsupportedFormat, kind)
	}
	return nil
}

// Save writes r to path, choosing the format from its extension.
func Save(path string, r *Raster) error {
	kind, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return oops.With("path", path).Wrapf(err, "cannot create output file")
	}

	if err := Encode(file, kind, r); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		return oops.With("path", path).Wrapf(err, "cannot close output file")
	}

	log.WithFields(logger.Fields{
		"path":   path,
		"format": kind,
	}).Debug("Image saved")
	return nil
}
