package imgmosaic

// ScalingMode selects the resampling algorithm ImageProvider.ReadPixels
// uses when a requested width/height differs from a source image's
// native size.
type ScalingMode int

const (
	NearestNeighbor ScalingMode = iota
	HighQualityCubic
)

// QualityProfile selects lossy-encoder quality when ImageProvider.Write
// targets a format that supports it.
type QualityProfile int

const (
	QualityLow QualityProfile = iota
	QualityHigh
)

// ImageHandle identifies a previously opened image for subsequent
// Dimensions/ReadPixels/Clip calls. Concrete providers may make it a
// file path, a decoded image.Image, or anything else they need.
type ImageHandle interface{}

// ImageProvider is the one boundary the core package depends on: every
// pixel read and write in this module funnels through an
// implementation of this interface, so the k-d tree, k-means,
// posterizer, colorizer, and collage/tile logic never import an image
// codec or a resampler directly.
type ImageProvider interface {
	// Open loads path and returns a handle for further operations.
	// Fails for a missing, unreadable, or unsupported file; Session
	// wraps such errors as BackendFailure.
	Open(path string) (ImageHandle, error)

	// Dimensions reports a handle's native pixel size.
	Dimensions(handle ImageHandle) (width, height int, err error)

	// ReadPixels decodes handle into a PixelBuffer of the requested
	// bit depth and size, scaling with mode if the requested size
	// differs from the native size.
	ReadPixels(handle ImageHandle, bitDepth, width, height int, mode ScalingMode) (*PixelBuffer, error)

	// Clip returns a new handle cropped to targetAspect (width/height),
	// centered on the original image.
	Clip(handle ImageHandle, targetAspect float64) (ImageHandle, error)

	// Write encodes buf to path in the format implied by mime, honoring
	// quality for formats that support a quality/chroma-subsampling
	// knob.
	Write(buf *PixelBuffer, path string, mime string, quality QualityProfile) error
}
