// Command mosaic is the command-line front end for imgmosaic: palette
// extraction, palette-based recoloring, and posterize/collage
// operations over one image, a directory of images, or a .txt file
// listing image paths.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/willibrandon/mtlog"
	"github.com/willibrandon/mtlog/core"
	"github.com/willibrandon/mtlog/sinks"

	"github.com/wbrown/imgmosaic"
	"github.com/wbrown/imgmosaic/imageio"
)

func main() {
	mode := flag.String("mode", "convert",
		"Operation: convert, show-colors, or collage")
	outputFile := flag.String("output", "out.png",
		"Path to write the result")
	k := flag.Int("k", 16, "Palette size")
	metricName := flag.String("metric", "color",
		"Palette metric: color, brightness, hue, saturation, gradient")
	paletteImage := flag.String("palette", "",
		"Companion image to extract the mapping palette from; empty means the input itself in convert mode and no recoloring in collage mode")
	posterizeLevels := flag.Int("posterize", 0,
		"Posterize to N levels per channel, 0 to disable")
	greyscale := flag.Bool("greyscale", false, "Convert to greyscale before other operations")
	method := flag.Int("collage-method", 1, "Collage layout method: 1 (grid) or 2 (waterfall)")
	aspect := flag.Float64("aspect", 1.0, "Target aspect ratio for collage method 1")
	longEdge := flag.Int("long-edge", 0, "Method 1: cap the collage's longest edge, 0 for unbounded; method 2: canvas width, 0 for 4096")
	columns := flag.Int("columns", 0, "Column count for collage method 2, 0 for one column per image")
	spacing := flag.Int("spacing", 0, "Pixel spacing between collage tiles")
	fillColor := flag.String("fill-color", "#000000",
		"Collage background color as #RRGGBB")
	captions := flag.Bool("captions", false, "Draw each tile's filename as a caption")
	fontPath := flag.String("font", "", "TrueType font path, required with -captions")
	quality := flag.String("quality", "high", "Encoder quality profile: low or high")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn, or error")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("usage: mosaic [flags] <image|directory|list.txt>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	metric, err := parseMetric(*metricName)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	qualityProfile := imgmosaic.QualityHigh
	if strings.EqualFold(*quality, "low") {
		qualityProfile = imgmosaic.QualityLow
	}

	session, err := imgmosaic.NewSession(
		imgmosaic.WithProvider(imageio.NewProvider()),
		imgmosaic.WithLogger(createLogger(*logLevel)),
		imgmosaic.WithK(*k),
		imgmosaic.WithMetric(metric),
		imgmosaic.WithQualityProfile(qualityProfile),
		imgmosaic.WithGreyscale(*greyscale),
	)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	switch *mode {
	case "convert":
		if err := runConvert(session, flag.Arg(0), *outputFile, *paletteImage, *posterizeLevels); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	case "show-colors":
		if err := runShowColors(session, flag.Arg(0)); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	case "collage":
		fill, err := imgmosaic.ColorFromHex(*fillColor)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		opts := collageOptions{
			method:       *method,
			aspect:       *aspect,
			longEdge:     *longEdge,
			columns:      *columns,
			spacing:      *spacing,
			captions:     *captions,
			fontPath:     *fontPath,
			output:       *outputFile,
			greyscale:    *greyscale,
			posterize:    *posterizeLevels,
			paletteImage: *paletteImage,
			fillColor:    fill,
		}
		if err := runCollage(session, flag.Arg(0), opts); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	default:
		fmt.Printf("unknown mode %q, expected convert, show-colors, or collage\n", *mode)
		os.Exit(1)
	}
}

func createLogger(logLevel string) core.Logger {
	opts := []mtlog.Option{mtlog.WithSink(sinks.NewConsoleSink())}

	switch logLevel {
	case "debug":
		opts = append(opts, mtlog.WithMinimumLevel(core.DebugLevel))
	case "info":
		opts = append(opts, mtlog.WithMinimumLevel(core.InformationLevel))
	case "error":
		opts = append(opts, mtlog.WithMinimumLevel(core.ErrorLevel))
	default:
		opts = append(opts, mtlog.WithMinimumLevel(core.WarningLevel))
	}

	return mtlog.New(opts...)
}

func parseMetric(name string) (imgmosaic.Metric, error) {
	switch strings.ToLower(name) {
	case "color", "":
		return imgmosaic.MetricColor, nil
	case "brightness":
		return imgmosaic.MetricBrightness, nil
	case "hue":
		return imgmosaic.MetricHue, nil
	case "saturation":
		return imgmosaic.MetricSaturation, nil
	case "gradient":
		return imgmosaic.MetricGradient, nil
	default:
		return 0, fmt.Errorf("unknown metric %q", name)
	}
}

func runConvert(s *imgmosaic.Session, input, output, paletteImage string, posterizeLevels int) error {
	mime := strings.TrimPrefix(filepath.Ext(output), ".")

	// With no companion palette, -posterize alone is a plain per-channel
	// quantization; otherwise the input is recolored to a palette
	// extracted from the companion (or from the input itself).
	if paletteImage == "" && posterizeLevels > 0 {
		return s.Posterize(input, posterizeLevels, output, mime)
	}

	source := paletteImage
	if source == "" {
		source = input
	}
	palette, err := s.ExtractPalette(source)
	if err != nil {
		return err
	}
	return s.Colorize(input, palette, output, mime)
}

func runShowColors(s *imgmosaic.Session, input string) error {
	palette, err := s.ExtractPalette(input)
	if err != nil {
		return err
	}
	for i, c := range palette.Colors {
		fmt.Printf("%3d  %s\n", i, c.Hex())
	}
	return nil
}

// resolveInputs expands a single image path, a directory, or a .txt
// list of paths into a concrete list of image file paths.
func resolveInputs(input string) ([]string, error) {
	if strings.HasSuffix(strings.ToLower(input), ".txt") {
		f, err := os.Open(input)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		var paths []string
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				paths = append(paths, line)
			}
		}
		return paths, scanner.Err()
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(input, e.Name()))
	}
	return paths, nil
}
