// Package imageio writes rendered frames to disk: linear Radiance HDR for the raw estimate and
// tone-mapped PNG previews.
package imageio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/patricklbell/raytracer/pkg/core"
)

// WriteHDR encodes pixels (row-major, top-left origin) as an uncompressed Radiance RGBE image.
func WriteHDR(w io.Writer, pixels []core.Vec3, width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Errorf("image size %dx%d must be positive", width, height)
	}
	if len(pixels) != width*height {
		return errors.Errorf("got %d pixels for a %dx%d image", len(pixels), width, height)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y %d +X %d\n", height, width); err != nil {
		return errors.Wrap(err, "writing HDR header")
	}

	scanline := make([]byte, 4*width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			rgbe := encodeRGBE(pixels[y*width+x])
			copy(scanline[4*x:], rgbe[:])
		}
		if _, err := bw.Write(scanline); err != nil {
			return errors.Wrapf(err, "writing HDR scanline %d", y)
		}
	}
	return errors.Wrap(bw.Flush(), "flushing HDR image")
}

// SaveHDR writes an HDR image to path, creating or truncating the file.
func SaveHDR(path string, pixels []core.Vec3, width, height int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "closing %s", path)
		}
	}()
	return WriteHDR(f, pixels, width, height)
}

// maxRGBE is the largest value a shared exponent byte can hold.
var maxRGBE = math.Ldexp(255.0/256, 127)

// encodeRGBE packs a linear color into a shared-exponent pixel. Negative and NaN channels are
// stored as zero.
func encodeRGBE(c core.Vec3) [4]byte {
	r, g, b := channel(c.X()), channel(c.Y()), channel(c.Z())
	v := math.Max(r, math.Max(g, b))
	if v < 1e-32 {
		return [4]byte{}
	}
	if v > maxRGBE {
		v = maxRGBE
		r, g, b = math.Min(r, v), math.Min(g, v), math.Min(b, v)
	}
	m, e := math.Frexp(v)
	scale := m * 256 / v
	return [4]byte{byte(r * scale), byte(g * scale), byte(b * scale), byte(e + 128)}
}

func channel(v float32) float64 {
	if !(v > 0) {
		return 0
	}
	return float64(v)
}
