package imageio

import (
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"github.com/wbrown/imgmosaic"
)

// scaleImage resizes src to width x height using mode. NearestNeighbor goes
// through golang.org/x/image/draw directly; HighQualityCubic is routed
// through github.com/nfnt/resize's Lanczos3 filter, so the two
// ScalingMode values each exercise a distinct third-party resampler
// rather than one library doing both.
func scaleImage(src image.Image, width, height int, mode imgmosaic.ScalingMode) image.Image {
	if mode == imgmosaic.HighQualityCubic {
		return resize.Resize(uint(width), uint(height), src, resize.Lanczos3)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// clipToAspect center-crops src to targetAspect (width/height).
func clipToAspect(src image.Image, targetAspect float64) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	currentAspect := float64(w) / float64(h)

	var cropW, cropH int
	if currentAspect > targetAspect {
		cropH = h
		cropW = int(float64(h) * targetAspect)
	} else {
		cropW = w
		cropH = int(float64(w) / targetAspect)
	}
	if cropW > w {
		cropW = w
	}
	if cropH > h {
		cropH = h
	}

	offX := b.Min.X + (w-cropW)/2
	offY := b.Min.Y + (h-cropH)/2
	rect := image.Rect(offX, offY, offX+cropW, offY+cropH)

	dst := image.NewRGBA(image.Rect(0, 0, cropW, cropH))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst
}
