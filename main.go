// Package main is the raytracer command line tool.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/patricklbell/raytracer/pkg/core"
	"github.com/patricklbell/raytracer/pkg/imageio"
	"github.com/patricklbell/raytracer/pkg/integrator"
	"github.com/patricklbell/raytracer/pkg/lbvh"
	"github.com/patricklbell/raytracer/pkg/logging"
	"github.com/patricklbell/raytracer/pkg/renderer"
	"github.com/patricklbell/raytracer/pkg/scene"
)

const (
	// Flags.
	flagScene    = "scene"
	flagWidth    = "width"
	flagHeight   = "height"
	flagSamples  = "samples"
	flagBounces  = "bounces"
	flagSeed     = "seed"
	flagWorkers  = "workers"
	flagTileSize = "tile-size"
	flagPNG      = "png"
	flagExposure = "exposure"
	flagPreview  = "preview-width"
	flagLevel    = "level"
	flagMesh     = "mesh"
	flagVerbose  = "verbose"

	defaultOutput = "render.hdr"
	defaultDump   = "bvh.bin"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	sceneFlag := &cli.StringFlag{
		Name:    flagScene,
		Aliases: []string{"s"},
		Value:   "spheres",
		Usage:   "built-in scene `ID` (see the scenes command)",
		EnvVars: []string{"RAYTRACER_SCENE"},
	}

	return &cli.App{
		Name:  "raytracer",
		Usage: "offline CPU path tracer",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
				EnvVars: []string{"RAYTRACER_VERBOSE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "render a scene to a Radiance HDR image",
				ArgsUsage: "[OUT]",
				Flags: []cli.Flag{
					sceneFlag,
					&cli.IntFlag{
						Name:    flagWidth,
						Value:   400,
						Usage:   "image width in pixels",
						EnvVars: []string{"RAYTRACER_WIDTH"},
					},
					&cli.IntFlag{
						Name:    flagHeight,
						Value:   225,
						Usage:   "image height in pixels",
						EnvVars: []string{"RAYTRACER_HEIGHT"},
					},
					&cli.IntFlag{
						Name:    flagSamples,
						Value:   4,
						Usage:   fmt.Sprintf("samples per pixel axis, 1-%d (each pixel takes samples² rays)", renderer.MaxSamples),
						EnvVars: []string{"RAYTRACER_SAMPLES"},
					},
					&cli.IntFlag{
						Name:    flagBounces,
						Value:   integrator.DefaultSettings().MaxBounces,
						Usage:   fmt.Sprintf("maximum path depth, 1-%d", integrator.MaxMaxBounces-1),
						EnvVars: []string{"RAYTRACER_BOUNCES"},
					},
					&cli.Int64Flag{
						Name:    flagSeed,
						Usage:   "random seed; equal seeds give equal images",
						EnvVars: []string{"RAYTRACER_SEED"},
					},
					&cli.IntFlag{
						Name:    flagWorkers,
						Usage:   "parallel tile workers (0 uses every CPU)",
						EnvVars: []string{"RAYTRACER_WORKERS"},
					},
					&cli.IntFlag{
						Name:    flagTileSize,
						Value:   renderer.DefaultRenderConfig().TileSize,
						Usage:   "tile edge in pixels",
						EnvVars: []string{"RAYTRACER_TILE_SIZE"},
					},
					&cli.StringFlag{
						Name:    flagPNG,
						Usage:   "also write a tone-mapped PNG to `FILE`",
						EnvVars: []string{"RAYTRACER_PNG"},
					},
					&cli.Float64Flag{
						Name:  flagExposure,
						Value: 1,
						Usage: "exposure multiplier applied before tone mapping",
					},
					&cli.IntFlag{
						Name:  flagPreview,
						Usage: "downscale the PNG to this width (0 keeps the render size)",
					},
				},
				Action: renderAction,
			},
			{
				Name:   "scenes",
				Usage:  "list built-in scenes",
				Action: scenesAction,
			},
			{
				Name:      "dump-bvh",
				Usage:     "build a scene's acceleration structure and write its binary LBVH dump",
				ArgsUsage: "[OUT]",
				Flags: []cli.Flag{
					sceneFlag,
					&cli.StringFlag{
						Name:  flagLevel,
						Value: "tlas",
						Usage: "hierarchy to dump: tlas or blas",
					},
					&cli.IntFlag{
						Name:  flagMesh,
						Usage: "BLAS slot to dump when --level=blas",
					},
				},
				Action: dumpAction,
			},
		},
	}
}

func newLogger(c *cli.Context) *zap.SugaredLogger {
	return logging.NewLogger("raytracer", c.Bool(flagVerbose))
}

// loadScene builds the named scene and a tracer with both hierarchies built
func loadScene(c *cli.Context, logger *zap.SugaredLogger, settings integrator.Settings) (*scene.Scene, *renderer.Tracer, error) {
	sc, err := scene.New(c.String(flagScene))
	if err != nil {
		return nil, nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, nil, errors.Wrapf(err, "scene %q", c.String(flagScene))
	}
	settings.Sky = sc.Sky
	if err := settings.Validate(); err != nil {
		return nil, nil, err
	}

	tracer := renderer.New(settings, logger)
	if err := tracer.BuildBLAS(sc.World); err != nil {
		tracer.Close()
		return nil, nil, err
	}
	if err := tracer.BuildTLAS(sc.World); err != nil {
		tracer.Close()
		return nil, nil, err
	}
	return sc, tracer, nil
}

func renderAction(c *cli.Context) error {
	logger := newLogger(c)
	defer func() { _ = logger.Sync() }()

	width, height := c.Int(flagWidth), c.Int(flagHeight)
	if width <= 0 || height <= 0 {
		return errors.Errorf("image size %dx%d must be positive", width, height)
	}

	out := defaultOutput
	if c.NArg() > 0 {
		out = c.Args().First()
	}
	if ext := strings.ToLower(filepath.Ext(out)); ext != ".hdr" {
		return errors.Errorf("output %q must have a .hdr extension", out)
	}

	settings := integrator.DefaultSettings()
	settings.MaxBounces = c.Int(flagBounces)
	sc, tracer, err := loadScene(c, logger, settings)
	if err != nil {
		return err
	}
	defer tracer.Close()

	cast := renderer.NewCastSettings(sc.Camera, width, height, c.Int(flagSamples))
	cfg := renderer.RenderConfig{
		TileSize:   c.Int(flagTileSize),
		NumWorkers: c.Int(flagWorkers),
		Seed:       c.Int64(flagSeed),
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	pixels := make([]core.Vec3, width*height)
	if _, err := tracer.Cast(ctx, cast, cfg, pixels, width, height); err != nil {
		return err
	}

	if err := imageio.SaveHDR(out, pixels, width, height); err != nil {
		return err
	}
	logger.Infow("wrote image", "path", out)

	if pngPath := c.String(flagPNG); pngPath != "" {
		if err := savePreview(c, pngPath, pixels, width, height); err != nil {
			return err
		}
		logger.Infow("wrote preview", "path", pngPath)
	}
	return nil
}

func savePreview(c *cli.Context, path string, pixels []core.Vec3, width, height int) error {
	img, err := imageio.ToneMap(pixels, width, height, float32(c.Float64(flagExposure)))
	if err != nil {
		return err
	}
	if pw := c.Int(flagPreview); pw > 0 && pw != width {
		ph := max(1, height*pw/width)
		return imageio.SavePNG(path, imageio.Resize(img, pw, ph))
	}
	return imageio.SavePNG(path, img)
}

func scenesAction(c *cli.Context) error {
	for _, info := range scene.ListScenes() {
		if _, err := fmt.Fprintf(c.App.Writer, "%-10s %-12s %s\n", info.ID, info.DisplayName, info.Description); err != nil {
			return err
		}
	}
	return nil
}

func dumpAction(c *cli.Context) error {
	logger := newLogger(c)
	defer func() { _ = logger.Sync() }()

	out := defaultDump
	if c.NArg() > 0 {
		out = c.Args().First()
	}

	_, tracer, err := loadScene(c, logger, integrator.DefaultSettings())
	if err != nil {
		return err
	}
	defer tracer.Close()

	tree, err := selectTree(tracer, c.String(flagLevel), c.Int(flagMesh))
	if err != nil {
		return err
	}

	if err := writeDump(out, tree); err != nil {
		return err
	}
	stats := tree.Stats()
	logger.Infow("wrote BVH dump", "path", out, "nodes", stats.Nodes, "leaves", stats.Leaves, "depth", stats.MaxDepth)
	return nil
}

func selectTree(tracer *renderer.Tracer, level string, mesh int) (lbvh.Tree, error) {
	switch level {
	case "tlas":
		return tracer.TLAS().Tree, nil
	case "blas":
		nodes := tracer.BLAS().Nodes
		if mesh < 0 || mesh >= len(nodes) {
			return lbvh.Tree{}, errors.Errorf("mesh slot %d out of range, scene has %d meshes", mesh, len(nodes))
		}
		return nodes[mesh].Tree, nil
	default:
		return lbvh.Tree{}, errors.Errorf("unknown level %q, want tlas or blas", level)
	}
}

func writeDump(path string, tree lbvh.Tree) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "closing %s", path)
		}
	}()
	return tree.Dump(f)
}
