package imgmosaic

// KDTree3 stores a fixed list of colors and finds the closest one to
// an arbitrary query color. It is built once, by inserting every
// palette color in order, and never mutated afterward. The split axis
// rotates R, G, B, R, G, B... by tree depth, not by a widest-range
// heuristic, so the tree's shape is purely a function of insertion
// order.
//
// Node 0 is a reserved null sentinel; real nodes occupy indices 1..N
// in insertion order, so a node's 1-based index minus one is the
// 0-based index of the color among the distinct colors, in the order
// they were first Insert'd. At most 65534 colors are supported:
// NewKDTree3 rejects a count of 65535 or more.
type KDTree3 struct {
	nodes          []kdNode
	head           uint16
	nodesAllocated uint16
}

type kdNode struct {
	left, right uint16
	r, g, b     byte
}

type kdRect struct {
	minR, minG, minB byte
	maxR, maxG, maxB byte
}

func infiniteRect() kdRect {
	return kdRect{0, 0, 0, 255, 255, 255}
}

// NewKDTree3 allocates a tree with room for up to count colors. count
// must be less than 65535.
func NewKDTree3(count int) (*KDTree3, error) {
	if count < 0 || count >= 65535 {
		return nil, invalidArg("NewKDTree3", "count %d out of range [0,65535)", count)
	}
	return &KDTree3{nodes: make([]kdNode, count+1), nodesAllocated: 1}, nil
}

// NodeCount returns the number of colors inserted so far.
func (t *KDTree3) NodeCount() int {
	return int(t.nodesAllocated) - 1
}

// Insert adds a color to the tree. A duplicate insertion silently
// follows the existing branch down to its matching node without
// allocating a new node, so it is harmless but wasted work, never
// corruption; it also takes no insertion index, so later colors'
// indices count distinct colors only. Callers should still dedup
// beforehand for performance.
func (t *KDTree3) Insert(c Color) {
	r, g, b := c.RGB()
	t.head = t.insert(r, g, b, t.head, 0)
}

func (t *KDTree3) insert(r, g, b byte, node uint16, level int) uint16 {
	if node == 0 {
		id := t.nodesAllocated
		t.nodesAllocated++
		t.nodes[id] = kdNode{r: r, g: g, b: b}
		return id
	}

	if r == t.nodes[node].r && g == t.nodes[node].g && b == t.nodes[node].b {
		return node
	}

	n := &t.nodes[node]
	var goRight bool
	switch level {
	case 0:
		goRight = r > n.r
	case 1:
		goRight = g > n.g
	default:
		goRight = b > n.b
	}

	if goRight {
		n.right = t.insert(r, g, b, n.right, (level+1)%3)
	} else {
		n.left = t.insert(r, g, b, n.left, (level+1)%3)
	}
	return node
}

type kdSearchState struct {
	targetR, targetG, targetB int
	bestDistanceSq            int
	best                      uint16
}

// Nearest returns the closest color in the tree to q along with its
// 0-based insertion index among the distinct colors inserted. The
// tree must contain at least one color.
func (t *KDTree3) Nearest(q Color) (nearest Color, index int) {
	qr, qg, qb := q.RGB()
	ss := &kdSearchState{
		targetR: int(qr), targetG: int(qg), targetB: int(qb),
		bestDistanceSq: 1 << 30,
	}
	t.nearestNeighbor(t.head, infiniteRect(), 0, ss)
	best := t.nodes[ss.best]
	return NewColor(best.r, best.g, best.b), int(ss.best) - 1
}

func (t *KDTree3) nearestNeighbor(node uint16, leftRect kdRect, level int, ss *kdSearchState) {
	n := &t.nodes[node]

	diff := int(n.r) - ss.targetR
	distSq := diff * diff
	diff = int(n.g) - ss.targetG
	distSq += diff * diff
	diff = int(n.b) - ss.targetB
	distSq += diff * diff

	if distSq < ss.bestDistanceSq {
		ss.best = node
		ss.bestDistanceSq = distSq
	}

	if n.left == 0 && n.right == 0 {
		return
	}

	axis := level % 3
	rightRect := leftRect
	var targetInLeft bool

	switch axis {
	case 0:
		leftRect.maxR = n.r
		rightRect.minR = n.r
		targetInLeft = ss.targetR < int(n.r)
	case 1:
		leftRect.maxG = n.g
		rightRect.minG = n.g
		targetInLeft = ss.targetG < int(n.g)
	default:
		leftRect.maxB = n.b
		rightRect.minB = n.b
		targetInLeft = ss.targetB < int(n.b)
	}

	if targetInLeft {
		if n.left != 0 {
			t.nearestNeighbor(n.left, leftRect, level+1, ss)
		}
		if n.right != 0 && rectDistanceSq(rightRect, ss) < ss.bestDistanceSq {
			t.nearestNeighbor(n.right, rightRect, level+1, ss)
		}
	} else {
		if n.right != 0 {
			t.nearestNeighbor(n.right, rightRect, level+1, ss)
		}
		if n.left != 0 && rectDistanceSq(leftRect, ss) < ss.bestDistanceSq {
			t.nearestNeighbor(n.left, leftRect, level+1, ss)
		}
	}
}

// rectDistanceSq returns the squared distance from the search target
// to the closest point inside rect, clamping each axis independently
// to the rect's bounds.
func rectDistanceSq(rect kdRect, ss *kdSearchState) int {
	clamp := func(target int, lo, hi byte) int {
		if target > int(lo) {
			if target > int(hi) {
				return int(hi)
			}
			return target
		}
		return int(lo)
	}

	f := clamp(ss.targetR, rect.minR, rect.maxR)
	diff := f - ss.targetR
	sq := diff * diff

	f = clamp(ss.targetG, rect.minG, rect.maxG)
	diff = f - ss.targetG
	sq += diff * diff

	f = clamp(ss.targetB, rect.minB, rect.maxB)
	diff = f - ss.targetB
	sq += diff * diff

	return sq
}
