package imgmosaic

import "math/rand"

// Metric selects which projection of a color a Palette is organized
// around, which in turn decides how Colorizer looks up the nearest
// entry.
type Metric int

const (
	MetricColor Metric = iota
	MetricBrightness
	MetricHue
	MetricSaturation
	MetricGradient
)

// Palette is an ordered list of colors plus whatever lookup structure
// its Metric needs. Colors keeps the order it was built from (for a
// PaletteExtractor result, see Extract for that order), except for
// MetricGradient, which sorts the stored colors by brightness so the bucket
// index used at lookup time (see Colorizer) walks the palette from
// dark to light.
type Palette struct {
	Colors []Color
	Metric Metric

	tree          *KDTree3
	treeToPalette []int  // Colors index for each tree insertion slot
	projection    []byte // sorted 1-D projection values, parallel to sortedIdx
	sortedIdx     []int  // Colors index for each entry in projection, same order
}

// NewPalette wraps a color list for the given metric and builds
// whatever lookup structure that metric needs. Colors must be
// non-empty; for MetricColor the count must also fit in a KDTree3
// (< 65535).
func NewPalette(colors []Color, metric Metric) (*Palette, error) {
	if len(colors) == 0 {
		return nil, invalidArg("NewPalette", "palette must not be empty")
	}

	p := &Palette{Colors: append([]Color(nil), colors...), Metric: metric}

	switch metric {
	case MetricColor:
		tree, err := NewKDTree3(len(p.Colors))
		if err != nil {
			return nil, err
		}
		// The tree collapses duplicate colors to one node, so its
		// insertion slots only line up with palette positions while the
		// colors are distinct; treeToPalette keeps the mapping exact
		// either way.
		p.treeToPalette = make([]int, 0, len(p.Colors))
		seen := make(map[Color]bool, len(p.Colors))
		for i, c := range p.Colors {
			if seen[c] {
				continue
			}
			seen[c] = true
			tree.Insert(c)
			p.treeToPalette = append(p.treeToPalette, i)
		}
		p.tree = tree

	case MetricBrightness, MetricHue, MetricSaturation:
		p.projection = make([]byte, len(p.Colors))
		p.sortedIdx = make([]int, len(p.Colors))
		for i, c := range p.Colors {
			p.sortedIdx[i] = i
			p.projection[i] = metricValue(metric, c)
		}
		sortParallelByProjection(p.projection, p.sortedIdx)

	case MetricGradient:
		p.sortedIdx = make([]int, len(p.Colors))
		for i := range p.Colors {
			p.sortedIdx[i] = i
		}
		insertionSortByKey(p.sortedIdx, func(i int) byte { return p.Colors[i].Brightness() })
		reordered := make([]Color, len(p.Colors))
		for i, idx := range p.sortedIdx {
			reordered[i] = p.Colors[idx]
		}
		p.Colors = reordered

	default:
		return nil, invalidArg("NewPalette", "unknown metric %d", metric)
	}

	return p, nil
}

// Lookup finds the palette index nearest to c under the palette's
// metric. For MetricColor this is an exact k-d tree nearest-neighbor
// search; for the 1-D metrics it's a binary search (the lower_bound
// idiom: find the first projection value >= the query, then compare
// it against the entry just before it) over the sorted projection;
// for MetricGradient it's a direct bucket index with no color
// comparison at all.
func (p *Palette) Lookup(c Color) int {
	switch p.Metric {
	case MetricColor:
		_, idx := p.tree.Nearest(c)
		return p.treeToPalette[idx]
	case MetricGradient:
		return gradientBucket(c, len(p.Colors))
	default:
		val := metricValue(p.Metric, c)
		return p.lowerBoundNearest(val)
	}
}

// lowerBoundNearest returns the palette index whose projection value
// is closest to val, using a standard binary search for the first
// entry >= val and then checking whether the prior entry is actually
// closer.
func (p *Palette) lowerBoundNearest(val byte) int {
	lo, hi := 0, len(p.projection)
	for lo < hi {
		mid := (lo + hi) / 2
		if p.projection[mid] < val {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if lo == len(p.projection) {
		return p.sortedIdx[len(p.sortedIdx)-1]
	}
	if lo == 0 {
		return p.sortedIdx[0]
	}

	atVal := int(p.projection[lo])
	beforeVal := int(p.projection[lo-1])
	if abs(atVal-int(val)) < abs(beforeVal-int(val)) {
		return p.sortedIdx[lo]
	}
	return p.sortedIdx[lo-1]
}

// gradientBucket maps a color's brightness directly to a bucket index
// in [0, paletteSize), with no nearest-color comparison: the palette
// is assumed sorted dark-to-light, and the bucket is just where on
// that ramp the color's brightness falls: V*K/256, clamped so a
// full-brightness pixel stays in the last bucket.
func gradientBucket(c Color, paletteSize int) int {
	bucket := int(c.Brightness()) * paletteSize / 256
	if bucket >= paletteSize {
		bucket = paletteSize - 1
	}
	return bucket
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func metricValue(m Metric, c Color) byte {
	switch m {
	case MetricBrightness:
		return c.Brightness()
	case MetricHue:
		return c.Hue()
	default:
		return c.Saturation()
	}
}

// sortParallelByProjection sorts idx by the corresponding value in
// proj (also reordered in lockstep), using a plain insertion sort: the
// palette size here is the number of clusters (at most a few hundred),
// far below medianHybridQuickSort's niche of large pixel-count arrays.
func sortParallelByProjection(proj []byte, idx []int) {
	for i := 1; i < len(proj); i++ {
		v, id := proj[i], idx[i]
		j := i
		for j > 0 && v < proj[j-1] {
			proj[j] = proj[j-1]
			idx[j] = idx[j-1]
			j--
		}
		proj[j] = v
		idx[j] = id
	}
}

func insertionSortByKey(idx []int, key func(int) byte) {
	for i := 1; i < len(idx); i++ {
		val := idx[i]
		vk := key(val)
		j := i
		for j > 0 && vk < key(idx[j-1]) {
			idx[j] = idx[j-1]
			j--
		}
		idx[j] = val
	}
}

// PaletteExtractor reduces an arbitrary image's colors down to a
// bounded set of representative colors via k-means clustering: scan
// for unique colors, subsample if there are too many, cluster, and
// take the real color closest to each cluster's centroid.
type PaletteExtractor struct {
	K            int
	MaxSamples   int
	SeedAttempts int
	Seed         int64

	// Quality is set by Extract: the mean intra-cluster distance of
	// the clustering that produced the palette. Lower is tighter.
	// Callers sweeping K can compare Quality across runs; it is a
	// relative score, not a standard deviation. Zero when clustering
	// was skipped because the image had no more than K unique colors.
	Quality float64
}

// NewPaletteExtractor builds an extractor targeting K output colors.
func NewPaletteExtractor(k int) (*PaletteExtractor, error) {
	if k <= 0 {
		return nil, invalidArg("NewPaletteExtractor", "K must be positive, got %d", k)
	}
	return &PaletteExtractor{K: k, MaxSamples: 10000, SeedAttempts: 40, Seed: 1}, nil
}

// Extract scans buf for its distinct colors and reduces them to at
// most K representative colors, sorted by descending cluster
// population (the most common colors first). When buf has no more
// than K distinct colors, clustering is skipped and the palette is
// those colors in ascending packed-Color order.
func (pe *PaletteExtractor) Extract(buf *PixelBuffer) (*Palette, error) {
	unique := pe.uniqueColors(buf)
	if len(unique) == 0 {
		return nil, inconsistent("PaletteExtractor.Extract", "no pixels scanned")
	}

	if len(unique) <= pe.K {
		pe.Quality = 0
		return NewPalette(unique, MetricColor)
	}

	sampled := pe.subsample(unique)

	points := make([]KMeansPoint, len(sampled))
	for i, c := range sampled {
		points[i] = NewKMeansPoint(i, c)
	}

	engine, err := NewKMeansEngine(pe.K, 100, pe.Seed)
	if err != nil {
		return nil, err
	}
	engine.SeedAttempts = pe.SeedAttempts

	clusters, err := engine.Run(points)
	if err != nil {
		return nil, err
	}

	closest, quality := ClosestToCentroids(clusters)
	pe.Quality = quality
	colors := make([]Color, len(closest))
	for i, pt := range closest {
		colors[i] = pt.Color()
	}

	return NewPalette(colors, MetricColor)
}

// uniqueColors linearizes the buffer into its distinct colors: scan
// with adjacent-pixel dedup (a flat run of identical pixels collapses
// to one entry as it's read), sort with medianHybridQuickSort, then
// collapse any remaining duplicate runs left after sorting.
func (pe *PaletteExtractor) uniqueColors(buf *PixelBuffer) []Color {
	linear := make([]Color, 0, buf.Width*buf.Height)
	var prev Color
	havePrev := false
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := buf.At(x, y)
			if havePrev && c == prev {
				continue
			}
			linear = append(linear, c)
			prev = c
			havePrev = true
		}
	}

	raw := make([]uint32, len(linear))
	for i, c := range linear {
		raw[i] = uint32(c)
	}
	medianHybridQuickSort(raw)

	unique := make([]Color, 0, len(raw))
	var last uint32
	haveLast := false
	for _, v := range raw {
		if haveLast && v == last {
			continue
		}
		unique = append(unique, Color(v))
		last = v
		haveLast = true
	}
	return unique
}

// subsample draws sampleCap = max(K, min(MaxSamples, len(colors)))
// samples uniformly at random, with replacement, from the
// (already deduplicated) color list. Replacement means a cluster may
// legitimately end up with several copies of the same source color
// among its members.
func (pe *PaletteExtractor) subsample(colors []Color) []Color {
	cap := pe.MaxSamples
	if len(colors) < cap {
		cap = len(colors)
	}
	if cap < pe.K {
		cap = pe.K
	}
	if cap > len(colors) {
		cap = len(colors)
	}

	rng := rand.New(rand.NewSource(pe.Seed))
	sampled := make([]Color, cap)
	for i := range sampled {
		sampled[i] = colors[rng.Intn(len(colors))]
	}
	return sampled
}
