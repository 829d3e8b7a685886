// Package carrier loads and persists the carriers the channels work on:
// images flattened into RGB pixel buffers, and plain text.
package carrier

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/faanross/stegokit/internal/format"
	"github.com/faanross/stegokit/internal/logger"
	"github.com/samber/oops"
	_ "golang.org/x/image/bmp"
)

var log = logger.GetStegoLogger()

// Raster is an image flattened for the pixel-plane channel. Pix holds the RGB
// samples row-major and channel-interleaved; Alpha holds one sample per pixel
// and is never embedded into.
type Raster struct {
	Width  int
	Height int
	Pix    []byte
	Alpha  []byte
	Format string // Format the image was decoded from
}

// NewRaster flattens img.
func NewRaster(img image.Image) *Raster {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	r := &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]byte, 0, width*height*format.CHANNELS),
		Alpha:  make([]byte, 0, width*height),
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			r.Pix = append(r.Pix, c.R, c.G, c.B)
			r.Alpha = append(r.Alpha, c.A)
		}
	}
	return r
}

// Decode reads any registered image format (png, gif, jpeg, bmp).
func Decode(rd io.Reader) (*Raster, error) {
	img, kind, err := image.Decode(rd)
	if err != nil {
		return nil, oops.Wrapf(err, "error decoding image")
	}
	r := NewRaster(img)
	r.Format = kind

	log.WithFields(logger.Fields{
		"format": kind,
		"width":  r.Width,
		"height": r.Height,
	}).Debug("Image loaded")
	return r, nil
}

// Load decodes the image at path.
func Load(path string) (*Raster, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, oops.With("path", path).Wrapf(err, "error opening file")
	}
	defer file.Close()

	r, err := Decode(file)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	return r, nil
}

// Opaque reports whether every alpha sample is fully opaque.
func (r *Raster) Opaque() bool {
	for _, a := range r.Alpha {
		if a != 0xff {
			return false
		}
	}
	return true
}

// WithPix returns a copy of r carrying pix in place of its RGB samples.
func (r *Raster) WithPix(pix []byte) (*Raster, error) {
	if len(pix) != len(r.Pix) {
		return nil, oops.
			With("want", len(r.Pix)).
			With("got", len(pix)).
			Errorf("pixel buffer has %d samples, image needs %d", len(pix), len(r.Pix))
	}
	out := *r
	out.Pix = pix
	return &out, nil
}

// Image reassembles the raster.
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i := 0; i < r.Width*r.Height; i++ {
		img.Pix[i*4+0] = r.Pix[i*3+0]
		img.Pix[i*4+1] = r.Pix[i*3+1]
		img.Pix[i*4+2] = r.Pix[i*3+2]
		img.Pix[i*4+3] = r.Alpha[i]
	}
	return img
}
