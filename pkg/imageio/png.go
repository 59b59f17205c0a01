package imageio

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"

	"github.com/patricklbell/raytracer/pkg/core"
)

// ToneMap scales linear radiance by exposure, clamps it to [0, 1] and encodes it as sRGB.
func ToneMap(pixels []core.Vec3, width, height int, exposure float32) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("image size %dx%d must be positive", width, height)
	}
	if len(pixels) != width*height {
		return nil, errors.Errorf("got %d pixels for a %dx%d image", len(pixels), width, height)
	}
	if !(exposure > 0) {
		return nil, errors.Errorf("exposure %v must be positive", exposure)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := pixels[y*width+x].Mul(exposure)
			srgb := colorful.LinearRgb(unit(c.X()), unit(c.Y()), unit(c.Z())).Clamped()
			r, g, b := srgb.RGB255()
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img, nil
}

// Resize scales img to width x height with a Catmull-Rom filter.
func Resize(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return errors.Wrap(png.Encode(w, img), "encoding PNG")
}

// SavePNG writes img to path, creating or truncating the file.
func SavePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "closing %s", path)
		}
	}()
	return WritePNG(f, img)
}

func unit(v float32) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return float64(v)
}
