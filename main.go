package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/ppm"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
	"github.com/df07/go-weekend-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneType  string
	configPath string
	width      int
	samples    int
	depth      int
	seed       int64
	integrator string
	format     string
	output     string
}

func main() {
	var opts options
	flag.StringVar(&opts.sceneType, "scene", "default", "Built-in scene: "+strings.Join(scene.Names(), ", "))
	flag.StringVar(&opts.configPath, "config", "", "JSON scene file (overrides -scene)")
	flag.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	flag.Int64Var(&opts.seed, "seed", renderer.DefaultSeed, "Random seed for pixel sampling")
	flag.StringVar(&opts.integrator, "integrator", "path", "Integrator: 'path' or 'normals'")
	flag.StringVar(&opts.format, "format", "", "Output format: 'ppm' or 'png' (default from -output extension, else ppm)")
	flag.StringVar(&opts.output, "output", "-", "Output file, '-' for stdout")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Weekend Path Tracer")
		fmt.Println("Usage: pathtracer [options] > image.ppm")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  basic     - One diffuse sphere on a large ground sphere")
		fmt.Println("  materials - Diffuse, hollow glass and fuzzy metal spheres with depth of field")
		fmt.Println("  default   - Random field of small spheres around three large ones")
		return
	}

	// Progress goes to stderr so stdout can carry the image
	logger := log.New(os.Stderr, "", log.LstdFlags)

	if err := run(opts, os.Stdout, logger); err != nil {
		logger.Printf("Error: %v", err)
		os.Exit(1)
	}
}

// run renders the selected scene and writes the image to opts.output, or stdout for "-"
func run(opts options, stdout io.Writer, logger core.Logger) error {
	s, err := createScene(opts.sceneType, opts.configPath)
	if err != nil {
		return err
	}

	s.ApplyOverrides(
		renderer.CameraConfig{Width: opts.width},
		renderer.SamplingConfig{SamplesPerPixel: opts.samples, MaxDepth: opts.depth},
	)
	if err := s.Validate(); err != nil {
		return err
	}

	integratorInst, err := createIntegrator(opts.integrator)
	if err != nil {
		return err
	}

	format, err := outputFormat(opts.format, opts.output)
	if err != nil {
		return err
	}

	logger.Printf("Rendering scene %q: %dx%d, %d samples, depth %d\n",
		s.Name, s.CameraConfig.Width, renderer.ImageHeight(s.CameraConfig.Width, s.CameraConfig.AspectRatio),
		s.SamplingConfig.SamplesPerPixel, s.SamplingConfig.MaxDepth)

	raytracer := s.NewRaytracer(logger)
	raytracer.SetIntegrator(integratorInst)
	raytracer.SetSampler(core.NewSeededSampler(opts.seed))

	img, _ := raytracer.Render()

	if opts.output == "-" || opts.output == "" {
		return writeImage(stdout, img, format)
	}

	file, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeImage(file, img, format); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	logger.Printf("Render saved as %s\n", opts.output)
	return nil
}

// createScene loads configPath when given, otherwise looks up a built-in scene
func createScene(sceneType, configPath string) (*scene.Scene, error) {
	if configPath != "" {
		s, err := scene.LoadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load scene file: %w", err)
		}
		return s, nil
	}
	return scene.Lookup(sceneType)
}

func createIntegrator(name string) (integrator.Integrator, error) {
	switch name {
	case "path", "":
		return integrator.NewPathTracingIntegrator(), nil
	case "normals":
		return integrator.NewNormalIntegrator(), nil
	default:
		return nil, fmt.Errorf("unknown integrator %q (available: path, normals)", name)
	}
}

// outputFormat resolves the explicit format, falling back to the output file extension
func outputFormat(format, output string) (string, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(output), ".png") {
			return "png", nil
		}
		return "ppm", nil
	}
	switch format {
	case "ppm", "png":
		return format, nil
	default:
		return "", fmt.Errorf("unknown output format %q (available: ppm, png)", format)
	}
}

// writeImage encodes img to w in the given format
func writeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case "ppm":
		if err := ppm.Encode(w, img); err != nil {
			return fmt.Errorf("failed to write PPM: %w", err)
		}
	case "png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to write PNG: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}
