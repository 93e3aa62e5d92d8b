package imgmosaic

import "testing"

func containsPointID(pts []KMeansPoint, id int) bool {
	for _, p := range pts {
		if p.ID() == id {
			return true
		}
	}
	return false
}

// TestClosestToCentroidsAreSampledPoints checks that for n > K, every
// non-empty cluster's closest-real-color is an element of the sampled
// input set.
func TestClosestToCentroidsAreSampledPoints(t *testing.T) {
	colors := []Color{
		NewColor(255, 0, 0), NewColor(250, 5, 5), NewColor(245, 0, 10),
		NewColor(0, 255, 0), NewColor(5, 250, 5), NewColor(0, 245, 10),
		NewColor(0, 0, 255), NewColor(5, 5, 250), NewColor(10, 0, 245),
	}
	points := make([]KMeansPoint, len(colors))
	for i, c := range colors {
		points[i] = NewKMeansPoint(i, c)
	}

	engine, err := NewKMeansEngine(3, 50, 42)
	if err != nil {
		t.Fatal(err)
	}

	clusters, err := engine.Run(points)
	if err != nil {
		t.Fatal(err)
	}

	closest, quality := ClosestToCentroids(clusters)
	if quality < 0 {
		t.Fatalf("mean intra-cluster distance must be non-negative, got %f", quality)
	}
	for i, cluster := range clusters {
		if cluster.Size() == 0 {
			continue
		}
		if !containsPointID(points, closest[i].ID()) {
			t.Fatalf("cluster %d's closest point id %d not in sampled input", cluster.ID(), closest[i].ID())
		}
	}
}

func TestKMeansClustersSortedByDescendingSize(t *testing.T) {
	colors := make([]Color, 0, 20)
	for i := 0; i < 16; i++ {
		colors = append(colors, NewColor(byte(10+i), 10, 10))
	}
	for i := 0; i < 4; i++ {
		colors = append(colors, NewColor(10, byte(200+i), 10))
	}
	points := make([]KMeansPoint, len(colors))
	for i, c := range colors {
		points[i] = NewKMeansPoint(i, c)
	}

	engine, err := NewKMeansEngine(2, 50, 7)
	if err != nil {
		t.Fatal(err)
	}
	clusters, err := engine.Run(points)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < len(clusters); i++ {
		if clusters[i].Size() > clusters[i-1].Size() {
			t.Fatalf("clusters not sorted by descending size: %d then %d", clusters[i-1].Size(), clusters[i].Size())
		}
	}
}

func TestKMeansEngineRejectsNonPositiveK(t *testing.T) {
	if _, err := NewKMeansEngine(0, 10, 1); err == nil {
		t.Fatal("expected error for K=0")
	}
}

func TestKMeansRunRejectsTooFewPoints(t *testing.T) {
	engine, err := NewKMeansEngine(5, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	points := []KMeansPoint{NewKMeansPoint(0, NewColor(1, 2, 3))}
	if _, err := engine.Run(points); err == nil {
		t.Fatal("expected error when len(points) < K")
	}
}
