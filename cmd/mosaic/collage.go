package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/wbrown/imgmosaic"
)

type collageOptions struct {
	method       int
	aspect       float64
	longEdge     int
	columns      int
	spacing      int
	captions     bool
	fontPath     string
	output       string
	greyscale    bool
	posterize    int
	paletteImage string
	fillColor    imgmosaic.Color
}

func runCollage(s *imgmosaic.Session, input string, opts collageOptions) error {
	paths, err := resolveInputs(input)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no input images found at %s", input)
	}

	// Open and measure every input concurrently; a collage over a
	// directory can have hundreds of sources and the planner needs all
	// dimensions before any pixels are read.
	handles := make([]imgmosaic.ImageHandle, len(paths))
	dims := make([]imgmosaic.TileDimensions, len(paths))
	openErrs := make([]error, len(paths))
	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			h, err := s.Provider.Open(p)
			if err != nil {
				openErrs[i] = err
				return
			}
			w, ht, err := s.Provider.Dimensions(h)
			if err != nil {
				openErrs[i] = err
				return
			}
			handles[i] = h
			dims[i] = imgmosaic.TileDimensions{Width: w, Height: ht}
		}(i, p)
	}
	wg.Wait()
	for _, err := range openErrs {
		if err != nil {
			return err
		}
	}

	planner := &imgmosaic.CollagePlanner{
		AspectRatio: opts.aspect,
		LongEdge:    opts.longEdge,
		Columns:     opts.columns,
		Spacing:     opts.spacing,
	}

	var layout *imgmosaic.CollageLayout
	if opts.method == 2 {
		layout, err = planner.PlanWaterfall(dims)
	} else {
		layout, err = planner.PlanGrid(dims)
	}
	if err != nil {
		return err
	}

	var captionRenderer *imgmosaic.CaptionRenderer
	if opts.captions {
		if opts.fontPath == "" {
			return fmt.Errorf("-captions requires -font")
		}
		fontBytes, err := os.ReadFile(opts.fontPath)
		if err != nil {
			return err
		}
		captionRenderer, err = imgmosaic.NewCaptionRenderer(fontBytes)
		if err != nil {
			return err
		}
	}

	var colorizer *imgmosaic.Colorizer
	if opts.paletteImage != "" {
		palette, err := s.ExtractPalette(opts.paletteImage)
		if err != nil {
			return err
		}
		colorizer = imgmosaic.NewColorizer(palette)
	}

	var posterizer *imgmosaic.Posterizer
	if opts.posterize > 0 {
		posterizer, err = imgmosaic.NewPosterizer(opts.posterize)
		if err != nil {
			return err
		}
	}

	tiles := make([]imgmosaic.TileSource, len(paths))
	for i, p := range layout.Placements {
		buf, err := s.Provider.ReadPixels(handles[p.SourceIndex], s.BitDepth, p.Width, p.Height, s.ScalingMode)
		if err != nil {
			return err
		}
		caption := ""
		if opts.captions {
			caption = imgmosaic.CaptionFor(paths[p.SourceIndex])
		}
		tiles[i] = imgmosaic.TileSource{Pixels: buf, Placement: p, Caption: caption}
	}

	composer := &imgmosaic.TileComposer{
		FillColor:  opts.fillColor,
		Greyscale:  opts.greyscale,
		Colorizer:  colorizer,
		Posterizer: posterizer,
		Captions:   captionRenderer,
		BitDepth:   s.BitDepth,
	}
	canvas, err := composer.Compose(layout.Width, layout.Height, tiles)
	if err != nil {
		return err
	}

	mime := "png"
	return s.Provider.Write(canvas, opts.output, mime, s.QualityProfile)
}
