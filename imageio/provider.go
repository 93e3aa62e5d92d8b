package imageio

import (
	"fmt"
	"image"
	"image/color"

	"github.com/wbrown/imgmosaic"
)

// handle is the concrete ImageHandle Provider hands back from Open: the
// decoded image plus the path it came from, for error messages.
type handle struct {
	path string
	img  image.Image
}

// Provider implements imgmosaic.ImageProvider against the standard
// library's image codecs (plus golang.org/x/image/tiff and
// golang.org/x/image/bmp), golang.org/x/image/draw for
// NearestNeighbor scaling/cropping, and github.com/nfnt/resize for
// HighQualityCubic scaling.
type Provider struct{}

// NewProvider constructs the default ImageProvider implementation.
func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Open(path string) (imgmosaic.ImageHandle, error) {
	img, err := loadImage(path)
	if err != nil {
		return nil, err
	}
	return &handle{path: path, img: img}, nil
}

func (p *Provider) Dimensions(h imgmosaic.ImageHandle) (int, int, error) {
	hd, ok := h.(*handle)
	if !ok {
		return 0, 0, fmt.Errorf("imageio: not a Provider handle: %T", h)
	}
	b := hd.img.Bounds()
	return b.Dx(), b.Dy(), nil
}

func (p *Provider) ReadPixels(h imgmosaic.ImageHandle, bitDepth, width, height int, mode imgmosaic.ScalingMode) (*imgmosaic.PixelBuffer, error) {
	hd, ok := h.(*handle)
	if !ok {
		return nil, fmt.Errorf("imageio: not a Provider handle: %T", h)
	}

	src := hd.img
	b := src.Bounds()
	if b.Dx() != width || b.Dy() != height {
		src = scaleImage(src, width, height, mode)
	}

	buf, err := imgmosaic.NewPixelBuffer(width, height, bitDepth)
	if err != nil {
		return nil, err
	}
	sb := src.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := src.At(sb.Min.X+x, sb.Min.Y+y).RGBA()
			buf.Set(x, y, imgmosaic.NewColor(byte(r>>8), byte(g>>8), byte(b>>8)))
		}
	}
	return buf, nil
}

func (p *Provider) Clip(h imgmosaic.ImageHandle, targetAspect float64) (imgmosaic.ImageHandle, error) {
	hd, ok := h.(*handle)
	if !ok {
		return nil, fmt.Errorf("imageio: not a Provider handle: %T", h)
	}
	return &handle{path: hd.path, img: clipToAspect(hd.img, targetAspect)}, nil
}

func (p *Provider) Write(buf *imgmosaic.PixelBuffer, path string, mime string, quality imgmosaic.QualityProfile) error {
	rgba := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := buf.At(x, y)
			r, g, b := c.RGB()
			rgba.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return saveImage(rgba, path, mime, quality)
}
