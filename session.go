package imgmosaic

import (
	"github.com/google/uuid"
)

// Session bundles everything one conversion/collage run needs:
// a provider for all pixel I/O, a logger for structured diagnostics,
// and the default knobs used wherever a caller doesn't override them
// explicitly.
type Session struct {
	Provider ImageProvider

	RunID uuid.UUID

	K              int
	Metric         Metric
	BitDepth       int
	ScalingMode    ScalingMode
	QualityProfile QualityProfile
	Greyscale      bool

	logger Logger
}

// SessionOption configures a Session at construction time.
type SessionOption func(*Session)

// WithProvider sets the ImageProvider a Session reads/writes images
// through. Required: NewSession fails without one.
func WithProvider(p ImageProvider) SessionOption {
	return func(s *Session) { s.Provider = p }
}

// WithLogger attaches a structured logger. Omitting this is fine; all
// logging calls are nil-safe.
func WithLogger(l Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithK sets the default palette size for extraction.
func WithK(k int) SessionOption {
	return func(s *Session) { s.K = k }
}

// WithMetric sets the default palette ordering/lookup metric.
func WithMetric(m Metric) SessionOption {
	return func(s *Session) { s.Metric = m }
}

// WithBitDepth sets the default pixel bit depth (24 or 48).
func WithBitDepth(bits int) SessionOption {
	return func(s *Session) { s.BitDepth = bits }
}

// WithScalingMode sets the default resampling mode for ReadPixels.
func WithScalingMode(m ScalingMode) SessionOption {
	return func(s *Session) { s.ScalingMode = m }
}

// WithQualityProfile sets the default encoder quality for Write.
func WithQualityProfile(q QualityProfile) SessionOption {
	return func(s *Session) { s.QualityProfile = q }
}

// WithGreyscale makes Colorize and Posterize convert their input to
// greyscale before remapping.
func WithGreyscale(on bool) SessionOption {
	return func(s *Session) { s.Greyscale = on }
}

// NewSession builds a Session with defaults (K=16, MetricColor, 24bpp,
// HighQualityCubic, QualityHigh) and a fresh RunID, then applies opts.
func NewSession(opts ...SessionOption) (*Session, error) {
	s := &Session{
		RunID:          uuid.New(),
		K:              16,
		Metric:         MetricColor,
		BitDepth:       24,
		ScalingMode:    HighQualityCubic,
		QualityProfile: QualityHigh,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Provider == nil {
		return nil, invalidArg("NewSession", "a Session requires an ImageProvider")
	}
	s.logInfo("session started {RunID}", s.RunID)
	return s, nil
}

// ExtractPalette loads path, reads it at its native size, and reduces
// it to a Palette of up to s.K colors under s.Metric.
func (s *Session) ExtractPalette(path string) (*Palette, error) {
	h, err := s.Provider.Open(path)
	if err != nil {
		return nil, backendFailure("Session.ExtractPalette", err)
	}
	w, ht, err := s.Provider.Dimensions(h)
	if err != nil {
		return nil, backendFailure("Session.ExtractPalette", err)
	}
	buf, err := s.Provider.ReadPixels(h, s.BitDepth, w, ht, s.ScalingMode)
	if err != nil {
		return nil, backendFailure("Session.ExtractPalette", err)
	}

	extractor, err := NewPaletteExtractor(s.K)
	if err != nil {
		return nil, err
	}
	palette, err := extractor.Extract(buf)
	if err != nil {
		return nil, err
	}
	s.logInfo("extracted {Count} colors from {Path}, quality {Quality}",
		len(palette.Colors), path, extractor.Quality)
	if s.Metric != MetricColor {
		return NewPalette(palette.Colors, s.Metric)
	}
	return palette, nil
}

// Colorize loads path, remaps it through palette under s.Metric, and
// writes the result to outPath.
func (s *Session) Colorize(path string, palette *Palette, outPath, mime string) error {
	h, err := s.Provider.Open(path)
	if err != nil {
		return backendFailure("Session.Colorize", err)
	}
	w, ht, err := s.Provider.Dimensions(h)
	if err != nil {
		return backendFailure("Session.Colorize", err)
	}
	buf, err := s.Provider.ReadPixels(h, s.BitDepth, w, ht, s.ScalingMode)
	if err != nil {
		return backendFailure("Session.Colorize", err)
	}

	if s.Greyscale {
		buf.Greyscale()
	}
	cz := NewColorizer(palette)
	cz.Apply(buf)
	s.logDebug("colorized {Path} cache={Entries}", path, cz.CacheStats())

	if err := s.Provider.Write(buf, outPath, mime, s.QualityProfile); err != nil {
		return backendFailure("Session.Colorize", err)
	}
	return nil
}

// Posterize loads path, quantizes each channel to levels values, and
// writes the result to outPath.
func (s *Session) Posterize(path string, levels int, outPath, mime string) error {
	p, err := NewPosterizer(levels)
	if err != nil {
		return err
	}

	h, err := s.Provider.Open(path)
	if err != nil {
		return backendFailure("Session.Posterize", err)
	}
	w, ht, err := s.Provider.Dimensions(h)
	if err != nil {
		return backendFailure("Session.Posterize", err)
	}
	buf, err := s.Provider.ReadPixels(h, s.BitDepth, w, ht, s.ScalingMode)
	if err != nil {
		return backendFailure("Session.Posterize", err)
	}

	if s.Greyscale {
		buf.Greyscale()
	}
	p.Apply(buf)
	s.logDebug("posterized {Path} to {Levels} levels", path, levels)

	if err := s.Provider.Write(buf, outPath, mime, s.QualityProfile); err != nil {
		return backendFailure("Session.Posterize", err)
	}
	return nil
}
