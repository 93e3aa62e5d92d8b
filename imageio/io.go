// Package imageio implements imgmosaic.ImageProvider against the
// standard library's image codecs plus golang.org/x/image for bmp and
// tiff.
package imageio

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/wbrown/imgmosaic"
)

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func saveImage(img image.Image, path string, mime string, quality imgmosaic.QualityProfile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(mime) {
	case "jpeg", "jpg":
		q := 60
		if quality == imgmosaic.QualityHigh {
			q = 100
		}
		return jpeg.Encode(f, img, &jpeg.Options{Quality: q})
	case "gif":
		return gif.Encode(f, img, nil)
	case "bmp":
		return bmp.Encode(f, img)
	case "tiff":
		return tiff.Encode(f, img, nil)
	case "png", "":
		return png.Encode(f, img)
	default:
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		return saveImage(img, path, ext, quality)
	}
}
