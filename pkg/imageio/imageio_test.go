package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"github.com/patricklbell/raytracer/pkg/core"
)

const hdrHeader = "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 1 +X 3\n"

func TestWriteHDR(t *testing.T) {
	pixels := []core.Vec3{
		core.NewVec3(1, 1, 1),
		core.NewVec3(0.5, 0.25, 0),
		core.NewVec3(-1, float32(math.NaN()), 0),
	}
	var buf bytes.Buffer
	test.That(t, WriteHDR(&buf, pixels, 3, 1), test.ShouldBeNil)

	out := buf.Bytes()
	test.That(t, string(out[:len(hdrHeader)]), test.ShouldEqual, hdrHeader)
	test.That(t, out[len(hdrHeader):], test.ShouldResemble, []byte{
		128, 128, 128, 129,
		128, 64, 0, 128,
		0, 0, 0, 0,
	})
}

func TestWriteHDRScanlineOrder(t *testing.T) {
	pixels := []core.Vec3{core.Splat(1), {}, {}, core.Splat(1)}
	var buf bytes.Buffer
	test.That(t, WriteHDR(&buf, pixels, 2, 2), test.ShouldBeNil)

	body := buf.Bytes()[len("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 2 +X 2\n"):]
	test.That(t, body, test.ShouldHaveLength, 16)
	test.That(t, body[3], test.ShouldEqual, byte(129))
	test.That(t, body[7], test.ShouldEqual, byte(0))
	test.That(t, body[11], test.ShouldEqual, byte(0))
	test.That(t, body[15], test.ShouldEqual, byte(129))
}

func TestWriteHDRErrors(t *testing.T) {
	var buf bytes.Buffer
	err := WriteHDR(&buf, nil, 0, 4)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "must be positive")

	err = WriteHDR(&buf, make([]core.Vec3, 3), 2, 2)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "got 3 pixels")
}

func TestEncodeRGBEHugeValues(t *testing.T) {
	rgbe := encodeRGBE(core.NewVec3(float32(math.Inf(1)), 0, 0))
	test.That(t, rgbe[3], test.ShouldEqual, byte(255))
	test.That(t, rgbe[0], test.ShouldEqual, byte(255))
}

func TestToneMap(t *testing.T) {
	pixels := []core.Vec3{
		core.Splat(0.5),
		core.Splat(2),
		core.NewVec3(-1, float32(math.NaN()), 0.25),
		core.Splat(1),
	}
	img, err := ToneMap(pixels, 2, 2, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 2, 2))

	test.That(t, img.RGBAAt(0, 0), test.ShouldResemble, color.RGBA{188, 188, 188, 255})
	test.That(t, img.RGBAAt(1, 0), test.ShouldResemble, color.RGBA{255, 255, 255, 255})
	test.That(t, img.RGBAAt(0, 1).R, test.ShouldEqual, uint8(0))
	test.That(t, img.RGBAAt(0, 1).G, test.ShouldEqual, uint8(0))
	test.That(t, img.RGBAAt(1, 1), test.ShouldResemble, color.RGBA{255, 255, 255, 255})

	brighter, err := ToneMap(pixels[:1], 1, 1, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, brighter.RGBAAt(0, 0), test.ShouldResemble, color.RGBA{255, 255, 255, 255})
}

func TestToneMapErrors(t *testing.T) {
	_, err := ToneMap(nil, 0, 1, 1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = ToneMap(make([]core.Vec3, 1), 1, 1, 0)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "exposure")
}

func TestResizeUniform(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			src.SetRGBA(x, y, color.RGBA{100, 150, 200, 255})
		}
	}
	dst := Resize(src, 4, 2)
	test.That(t, dst.Bounds(), test.ShouldResemble, image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			c := dst.RGBAAt(x, y)
			test.That(t, float64(c.R), test.ShouldAlmostEqual, 100, 1)
			test.That(t, float64(c.G), test.ShouldAlmostEqual, 150, 1)
			test.That(t, float64(c.B), test.ShouldAlmostEqual, 200, 1)
		}
	}
}

func TestSaveFiles(t *testing.T) {
	dir := t.TempDir()
	pixels := []core.Vec3{core.Splat(1), core.NewVec3(0, 0.5, 1)}

	hdrPath := filepath.Join(dir, "out.hdr")
	test.That(t, SaveHDR(hdrPath, pixels, 2, 1), test.ShouldBeNil)
	info, err := os.Stat(hdrPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldEqual, int64(len("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 1 +X 2\n")+8))

	img, err := ToneMap(pixels, 2, 1, 1)
	test.That(t, err, test.ShouldBeNil)
	pngPath := filepath.Join(dir, "out.png")
	test.That(t, SavePNG(pngPath, img), test.ShouldBeNil)

	f, err := os.Open(pngPath)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	decoded, err := png.Decode(f)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, decoded.Bounds(), test.ShouldResemble, image.Rect(0, 0, 2, 1))

	test.That(t, SaveHDR(filepath.Join(dir, "missing", "out.hdr"), pixels, 2, 1), test.ShouldNotBeNil)
}
