package imgmosaic

import (
	"math/rand"
	"runtime"
	"sync"
)

// KMeansPoint is one sample fed to a k-means run: a color normalized
// to [0,1] per channel, plus its cluster assignment. pointID is the
// 0-based index of the point in the slice passed to KMeansEngine.Run,
// so callers can map a cluster's members back to source data.
type KMeansPoint struct {
	pointID   int
	clusterID int
	values    [3]float64
}

// NewKMeansPoint builds a point from a color.
func NewKMeansPoint(id int, c Color) KMeansPoint {
	r, g, b := c.RGB()
	return KMeansPoint{
		pointID: id,
		values:  [3]float64{float64(r) / 255.0, float64(g) / 255.0, float64(b) / 255.0},
	}
}

// Color reconstructs the 8-bit color this point represents.
func (p KMeansPoint) Color() Color {
	r := byte(round(p.values[0] * 255.0))
	g := byte(round(p.values[1] * 255.0))
	b := byte(round(p.values[2] * 255.0))
	return NewColor(r, g, b)
}

func round(f float64) float64 {
	if f < 0 {
		return float64(int(f - 0.5))
	}
	return float64(int(f + 0.5))
}

// ID returns the point's position in the input slice.
func (p KMeansPoint) ID() int { return p.pointID }

// Cluster returns the 1-based id of the cluster this point currently
// belongs to, or 0 if unassigned.
func (p KMeansPoint) Cluster() int { return p.clusterID }

// distanceSq is the raw sum-of-squared-differences distance over the
// three normalized channels. No square root: only relative ordering
// matters for nearest-cluster assignment and seed scoring.
func (p KMeansPoint) distanceSq(o KMeansPoint) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		d := p.values[i] - o.values[i]
		sum += d * d
	}
	return sum
}

// KMeansCluster is one cluster: a centroid and the points currently
// assigned to it. points is rebuilt from scratch every iteration.
type KMeansCluster struct {
	id       int
	centroid KMeansPoint
	points   []KMeansPoint
}

// ID returns the cluster's 1-based id.
func (c *KMeansCluster) ID() int { return c.id }

// Centroid returns the cluster's current centroid.
func (c *KMeansCluster) Centroid() KMeansPoint { return c.centroid }

// Size returns how many points are currently assigned.
func (c *KMeansCluster) Size() int { return len(c.points) }

// Points returns the points currently assigned to the cluster.
func (c *KMeansCluster) Points() []KMeansPoint { return c.points }

// lessCluster orders clusters by descending size (largest first). A
// boolean comparator is used instead of subtracting sizes, which can
// overflow for very large clusters; a less-than test never can.
func lessCluster(a, b *KMeansCluster) bool {
	return a.Size() > b.Size()
}

// KMeansEngine runs Lloyd's algorithm with a max-separation seeding
// heuristic, parallelized across the assignment and recentroid phases.
type KMeansEngine struct {
	K            int
	Iterations   int
	SeedAttempts int
	rng          *rand.Rand
}

// NewKMeansEngine builds an engine for K clusters, running at most
// iterations Lloyd passes, seeded deterministically from seed.
func NewKMeansEngine(k, iterations int, seed int64) (*KMeansEngine, error) {
	if k <= 0 {
		return nil, invalidArg("NewKMeansEngine", "K must be positive, got %d", k)
	}
	return &KMeansEngine{
		K:            k,
		Iterations:   iterations,
		SeedAttempts: 40,
		rng:          rand.New(rand.NewSource(seed)),
	}, nil
}

// Run clusters points into K groups, mutating each point's cluster
// assignment in place and returning the resulting clusters sorted by
// descending size. len(points) must be >= K.
func (e *KMeansEngine) Run(points []KMeansPoint) ([]*KMeansCluster, error) {
	n := len(points)
	if n < e.K {
		return nil, invalidArg("KMeansEngine.Run", "need at least K=%d points, got %d", e.K, n)
	}

	seedAttempts := e.SeedAttempts
	if seedAttempts <= 0 {
		seedAttempts = 1
	}

	clusters := make([]*KMeansCluster, e.K)

	if n == e.K {
		for i := range points {
			points[i].clusterID = i + 1
			clusters[i] = &KMeansCluster{id: i + 1, centroid: points[i]}
		}
	} else {
		seedIdx := e.seedCentroidIndices(points, seedAttempts)
		for i, idx := range seedIdx {
			points[idx].clusterID = i + 1
			clusters[i] = &KMeansCluster{id: i + 1, centroid: points[idx]}
		}
	}

	workers := runtime.GOMAXPROCS(0)
	iter := 1
	for {
		done := e.assignPass(points, clusters, workers)
		e.recentroidPass(points, clusters, workers)

		if done || iter >= e.Iterations {
			break
		}
		iter++
	}

	sorted := make([]*KMeansCluster, len(clusters))
	copy(sorted, clusters)
	sortClustersBySize(sorted)
	return sorted, nil
}

// seedCentroidIndices picks K point indices whose total pairwise
// distance is the largest of SeedAttempts random draws, the
// max-separation seeding heuristic.
func (e *KMeansEngine) seedCentroidIndices(points []KMeansPoint, seedAttempts int) []int {
	n := len(points)
	var bestIdx []int
	bestDistance := -1.0

	for r := 0; r < seedAttempts; r++ {
		used := make(map[int]bool, e.K)
		idx := make([]int, 0, e.K)
		for len(idx) < e.K {
			candidate := e.rng.Intn(n)
			if !used[candidate] {
				used[candidate] = true
				idx = append(idx, candidate)
			}
		}

		total := 0.0
		for i := 0; i < len(idx); i++ {
			for j := i + 1; j < len(idx); j++ {
				total += points[idx[i]].distanceSq(points[idx[j]])
			}
		}

		if total > bestDistance {
			bestDistance = total
			bestIdx = idx
		}
	}

	return bestIdx
}

// assignPass reassigns every point to its nearest cluster centroid in
// parallel, returning true if nothing changed (convergence).
func (e *KMeansEngine) assignPass(points []KMeansPoint, clusters []*KMeansCluster, workers int) bool {
	var mu sync.Mutex
	done := true

	parallelRange(len(points), workers, func(i int) {
		current := points[i].clusterID
		nearest := nearestClusterID(points[i], clusters)
		if current != nearest {
			points[i].clusterID = nearest
			mu.Lock()
			done = false
			mu.Unlock()
		}
	})

	return done
}

func nearestClusterID(p KMeansPoint, clusters []*KMeansCluster) int {
	minDist := -1.0
	nearest := clusters[0].id
	for _, c := range clusters {
		d := p.distanceSq(c.centroid)
		if minDist < 0 || d < minDist {
			minDist = d
			nearest = c.id
		}
	}
	return nearest
}

// recentroidPass rebuilds each cluster's point list and recomputes its
// centroid as the mean of its members, in parallel across clusters. A
// cluster that ends up empty keeps its previous centroid frozen rather
// than dividing by zero.
func (e *KMeansEngine) recentroidPass(points []KMeansPoint, clusters []*KMeansCluster, workers int) {
	parallelRange(len(clusters), workers, func(ci int) {
		cluster := clusters[ci]
		cluster.points = cluster.points[:0]
		for i := range points {
			if points[i].clusterID == cluster.id {
				cluster.points = append(cluster.points, points[i])
			}
		}

		if len(cluster.points) == 0 {
			return
		}

		var sum [3]float64
		for _, p := range cluster.points {
			for j := 0; j < 3; j++ {
				sum[j] += p.values[j]
			}
		}
		size := float64(len(cluster.points))
		for j := 0; j < 3; j++ {
			cluster.centroid.values[j] = sum[j] / size
		}
	})
}

// sortClustersBySize sorts clusters by descending population using the
// overflow-safe boolean comparator.
func sortClustersBySize(clusters []*KMeansCluster) {
	insertionSortClusters(clusters)
}

func insertionSortClusters(clusters []*KMeansCluster) {
	for i := 1; i < len(clusters); i++ {
		val := clusters[i]
		j := i
		for j > 0 && lessCluster(val, clusters[j-1]) {
			clusters[j] = clusters[j-1]
			j--
		}
		clusters[j] = val
	}
}

// ClosestToCentroids returns, for each cluster, the real point closest
// to its (synthetic) centroid rather than the centroid itself, which
// may not correspond to any input color. The second return value is
// the mean intra-cluster distance: each cluster's member-to-centroid
// squared distances summed and divided by its size, averaged over the
// clusters. It is a relative quality score for comparing runs at
// different K, not a standard deviation.
func ClosestToCentroids(clusters []*KMeansCluster) ([]KMeansPoint, float64) {
	result := make([]KMeansPoint, len(clusters))
	meanDist := make([]float64, len(clusters))
	parallelRange(len(clusters), runtime.GOMAXPROCS(0), func(i int) {
		cluster := clusters[i]
		minDist := -1.0
		best := 0
		total := 0.0
		for p, pt := range cluster.points {
			d := cluster.centroid.distanceSq(pt)
			if minDist < 0 || d < minDist {
				minDist = d
				best = p
			}
			total += d
		}
		if len(cluster.points) > 0 {
			result[i] = cluster.points[best]
			meanDist[i] = total / float64(len(cluster.points))
		} else {
			result[i] = cluster.centroid
		}
	})

	sum := 0.0
	for _, d := range meanDist {
		sum += d
	}
	quality := 0.0
	if len(clusters) > 0 {
		quality = sum / float64(len(clusters))
	}
	return result, quality
}

// parallelRange calls fn(i) for i in [0,n) split across workers
// goroutines, and blocks until every call returns.
func parallelRange(n, workers int, fn func(i int)) {
	if n == 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
