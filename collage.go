package imgmosaic

import (
	"math"
	"math/rand"
	"sort"
)

// TileDimensions is a source image's native width/height, used only
// for planning a collage layout; the pixels themselves are read later
// when tiles are actually drawn.
type TileDimensions struct {
	Width, Height int
}

// TilePlacement is where one source tile lands in the final collage
// canvas.
type TilePlacement struct {
	SourceIndex   int
	X, Y          int
	Width, Height int
}

// CollageLayout is the planned output: overall canvas size and where
// every input tile goes.
type CollageLayout struct {
	Width, Height int
	Placements    []TilePlacement
}

// CollagePlanner computes a CollageLayout from a list of source image
// dimensions, without touching any pixel data.
type CollagePlanner struct {
	// AspectRatio is the desired canvas width/height ratio, in pixels,
	// for Method 1's grid search.
	AspectRatio float64
	// LongEdge caps the collage's longest dimension in Method 1 (0
	// means unbounded). In Method 2 it is the target canvas width (0
	// means 4096), and the canvas height is not capped.
	LongEdge int

	// Method 2 only:
	Columns int
	Spacing int
	// EvenOutSpacing distributes a column's leftover vertical slack
	// evenly between its images instead of leaving it all at the
	// bottom. Only has an effect when Randomize is also set.
	EvenOutSpacing bool
	// Randomize partially shuffles each column's vertical placement
	// order after the column assignment itself (which always follows
	// the ascending-aspect-ratio rule) has been decided. See
	// partialShuffle's doc comment for why this is not a uniform
	// shuffle.
	Randomize bool
	RandSeed  int64
}

// PlanGrid lays tiles out in a uniform grid (Method 1): it searches
// every (cols, rows) pair that can hold all tiles with no fully empty
// row or column, and keeps whichever minimizes the distance to the
// desired aspect ratio. Ties go to the pair encountered first by the
// serial search, which iterates cols in the outer loop and rows in
// the inner one.
func (cp *CollagePlanner) PlanGrid(dims []TileDimensions) (*CollageLayout, error) {
	n := len(dims)
	if n == 0 {
		return nil, invalidArg("CollagePlanner.PlanGrid", "no tiles to place")
	}

	minEdge, minDXEdge, minDYEdge := boundingEdges(dims)
	if minEdge == 0 {
		return nil, invalidArg("CollagePlanner.PlanGrid", "a tile has zero size")
	}
	allSameAspect := sameAspectRatio(dims)

	desiredAspect := cp.AspectRatio
	if desiredAspect <= 0 {
		desiredAspect = 1.0
	}

	bestAspectDistance := math.MaxFloat64
	cols, rows := 0, 0

	for x := 1; x <= n; x++ {
		for y := 1; y <= n; y++ {
			capacity := x * y
			if capacity < n {
				continue
			}
			unused := capacity - n
			if unused >= x || unused >= y {
				continue
			}

			var testAspect float64
			if allSameAspect {
				testAspect = (float64(x) * float64(minDXEdge)) / (float64(y) * float64(minDYEdge))
			} else {
				testAspect = (float64(x) * float64(minEdge)) / (float64(y) * float64(minEdge))
			}

			distance := math.Abs(desiredAspect - testAspect)
			if distance < bestAspectDistance {
				bestAspectDistance = distance
				cols, rows = x, y
			}
		}
	}

	cellW, cellH := minEdge, minEdge
	if allSameAspect {
		cellW, cellH = minDXEdge, minDYEdge
	}

	stitchX := cols * cellW
	stitchY := rows * cellH

	maxLongest := cp.LongEdge
	if maxLongest <= 0 {
		maxLongest = 1 << 30
	}

	if stitchX > maxLongest || stitchY > maxLongest {
		if allSameAspect {
			if cellH > cellW {
				scale := (float64(maxLongest) / float64(rows)) / float64(cellH)
				cellW = int(math.Round(scale * float64(cellW)))
				cellH = maxLongest / rows
				stitchY = maxLongest
				stitchX = cols * cellW
			} else {
				scale := (float64(maxLongest) / float64(cols)) / float64(cellW)
				cellH = int(math.Round(scale * float64(cellH)))
				cellW = maxLongest / cols
				stitchX = maxLongest
				stitchY = rows * cellH
			}
		} else {
			if stitchX > stitchY {
				cellW = maxLongest / cols
			} else {
				cellW = maxLongest / rows
			}
			cellH = cellW
			stitchX = cellW * cols
			stitchY = cellH * rows
		}
	}

	placements := make([]TilePlacement, 0, n)
	i := 0
	for y := 0; y < rows && i < n; y++ {
		for x := 0; x < cols && i < n; x++ {
			placements = append(placements, TilePlacement{
				SourceIndex: i,
				X:           x * cellW,
				Y:           y * cellH,
				Width:       cellW,
				Height:      cellH,
			})
			i++
		}
	}

	return &CollageLayout{Width: stitchX, Height: stitchY, Placements: placements}, nil
}

// PlanWaterfall lays tiles out in a fixed number of columns (Method
// 2): every tile is scaled to the same width, sorted ascending by
// aspect ratio, and placed into whichever column currently has the
// shortest bottom edge.
func (cp *CollagePlanner) PlanWaterfall(dims []TileDimensions) (*CollageLayout, error) {
	n := len(dims)
	if n == 0 {
		return nil, invalidArg("CollagePlanner.PlanWaterfall", "no tiles to place")
	}

	columns := cp.Columns
	if columns <= 0 || columns > n {
		columns = n
	}
	targetWidth := cp.LongEdge
	if targetWidth <= 0 {
		targetWidth = 4096
	}
	spacing := cp.Spacing

	imageWidth := (targetWidth - (columns-1)*spacing) / columns
	fullWidth := imageWidth*columns + (columns-1)*spacing

	sortedIdx := make([]int, n)
	for i := range sortedIdx {
		sortedIdx[i] = i
	}
	sort.Slice(sortedIdx, func(i, j int) bool {
		ai := aspect(dims[sortedIdx[i]])
		aj := aspect(dims[sortedIdx[j]])
		return ai < aj
	})

	columnOf := make([]int, n)
	yOffset := make([]int, n)
	bottoms := make([]int, columns)

	tileHeight := func(d TileDimensions) int {
		return int(math.Round(float64(imageWidth) / float64(d.Width) * float64(d.Height)))
	}

	for _, si := range sortedIdx {
		columnToUse := 0
		highestBottom := 1 << 62
		for c := 0; c < columns; c++ {
			if bottoms[c] < highestBottom {
				highestBottom = bottoms[c]
				columnToUse = c
			}
		}

		h := tileHeight(dims[si])
		yOffset[si] = bottoms[columnToUse]
		bottoms[columnToUse] += spacing + h
		columnOf[si] = columnToUse
	}

	fullHeight := 0
	for c := 0; c < columns; c++ {
		if bottoms[c] > fullHeight {
			fullHeight = bottoms[c]
		}
	}
	fullHeight -= spacing

	if cp.Randomize {
		rng := rand.New(rand.NewSource(cp.RandSeed))
		for c := 0; c < columns; c++ {
			var col []int
			for _, si := range sortedIdx {
				if columnOf[si] == c {
					col = append(col, si)
				}
			}
			if len(col) == 0 {
				continue
			}

			partialShuffle(col, rng)

			spaceCount := len(col) - 1
			extraSpace := fullHeight - spaceCount*spacing
			for _, ri := range col {
				extraSpace -= tileHeight(dims[ri])
			}

			extraBetween, extraLast := 0, 0
			if cp.EvenOutSpacing && spaceCount > 0 {
				extraBetween = extraSpace / spaceCount
				extraLast = extraSpace % spaceCount
			}

			currentY := 0
			for i, ri := range col {
				yOffset[ri] = currentY
				h := tileHeight(dims[ri])
				step := spacing + h + extraBetween
				if i == spaceCount-1 {
					step += extraLast
				}
				currentY += step
			}
		}
	}

	placements := make([]TilePlacement, n)
	for i := 0; i < n; i++ {
		h := tileHeight(dims[i])
		placements[i] = TilePlacement{
			SourceIndex: i,
			X:           columnOf[i] * (imageWidth + spacing),
			Y:           yOffset[i],
			Width:       imageWidth,
			Height:      h,
		}
	}

	return &CollageLayout{Width: fullWidth, Height: fullHeight, Placements: placements}, nil
}

// partialShuffle performs exactly 2*len(elements) random index-pair
// swaps. This is NOT a uniform (Fisher-Yates) shuffle: some
// permutations are reached more often than others, and for small
// slices some permutations may be unreachable at all. The 2n-swap
// scheme is deliberate; changing it to a uniform shuffle would change
// which collages a given seed produces.
func partialShuffle(elements []int, rng *rand.Rand) {
	if len(elements) <= 1 {
		return
	}
	for i := 0; i < len(elements)*2; i++ {
		a := rng.Intn(len(elements))
		b := rng.Intn(len(elements))
		elements[a], elements[b] = elements[b], elements[a]
	}
}

func aspect(d TileDimensions) float64 {
	return float64(d.Width) / float64(d.Height)
}

func boundingEdges(dims []TileDimensions) (minEdge, minDXEdge, minDYEdge int) {
	minEdge, minDXEdge, minDYEdge = 1<<30, 1<<30, 1<<30
	for _, d := range dims {
		longEdge := d.Width
		if d.Height > longEdge {
			longEdge = d.Height
		}
		if longEdge < minEdge {
			minEdge = longEdge
		}
		if d.Width < minDXEdge {
			minDXEdge = d.Width
		}
		if d.Height < minDYEdge {
			minDYEdge = d.Height
		}
	}
	return
}

func sameAspectRatio(dims []TileDimensions) bool {
	if len(dims) == 0 {
		return true
	}
	target := aspect(dims[0])
	for _, d := range dims[1:] {
		if !sameFloat(aspect(d), target) {
			return false
		}
	}
	return true
}

func sameFloat(a, b float64) bool {
	const epsilon = 0.01
	return math.Abs(a-b) < epsilon
}
