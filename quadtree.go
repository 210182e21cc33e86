package quadcollide

import (
	"sync"

	"github.com/emirpasic/gods/sets/linkedhashset"
)

// quadtreeNode is one node in the arena. Nodes are addressed by integer
// index into Quadtree.nodes rather than by pointer: child handles are
// stored inline and there are no back-edges. parent is kept only as a
// diagnostic field, never consulted by traversal.
type quadtreeNode struct {
	rect     Rect
	depth    int
	parent   int
	isLeaf   bool
	children [4]int

	// segments is valid only on leaves: the set of segments whose swept
	// parallelogram overlaps rect.
	// A linkedhashset (github.com/emirpasic/gods/sets/linkedhashset) is used
	// both because membership here is a true set -- a segment must never
	// appear twice in the same leaf -- and because its insertion order
	// makes the leaf-local pair iteration order reproducible for a fixed
	// segment population, independent of map iteration order.
	segments *linkedhashset.Set
}

// Quadrant indices, in a fixed order: {UL, UR, LL, LR}.
const (
	quadUL = iota
	quadUR
	quadLL
	quadLR
)

// Quadtree is the spatial index over a World's segments.
type Quadtree struct {
	nodes  []quadtreeNode
	root   int
	config Config
}

// buildQuadtree constructs a fresh index covering box for the given
// segments.
func buildQuadtree(box Rect, segments []*Segment, cfg Config) *Quadtree {
	qt := &Quadtree{config: cfg}
	qt.nodes = make([]quadtreeNode, 0, 64)
	qt.root = qt.buildNode(box, 0, -1, segments)
	return qt
}

// buildNode creates the node for rect at depth, recursing into four
// children if the configured SubdivisionPolicy calls for it. It returns the
// new node's arena index.
func (qt *Quadtree) buildNode(rect Rect, depth, parent int, candidates []*Segment) int {
	overlapping := filterOverlapping(rect, candidates)

	idx := len(qt.nodes)
	qt.nodes = append(qt.nodes, quadtreeNode{rect: rect, depth: depth, parent: parent})

	if qt.isLeafNode(depth, len(overlapping)) {
		set := linkedhashset.New()
		for _, s := range overlapping {
			set.Add(s)
		}
		qt.nodes[idx].isLeaf = true
		qt.nodes[idx].segments = set
		return idx
	}

	var children [4]int
	for q, childRect := range quadrants(rect) {
		children[q] = qt.buildNode(childRect, depth+1, idx, overlapping)
	}
	qt.nodes[idx].children = children
	return idx
}

// isLeafNode applies the configured SubdivisionPolicy.
func (qt *Quadtree) isLeafNode(depth, overlapCount int) bool {
	switch qt.config.Subdivision.kind {
	case depthCapped:
		return depth >= qt.config.Subdivision.depth
	default: // overflowDriven
		return overlapCount <= qt.config.Subdivision.capacity
	}
}

// quadrants splits rect into its four child rectangles at the centroid, in
// the fixed {UL, UR, LL, LR} order.
func quadrants(rect Rect) [4]Rect {
	center := Point{
		X: (rect.UpperLeft.X + rect.LowerRight.X) / 2,
		Y: (rect.UpperLeft.Y + rect.LowerRight.Y) / 2,
	}
	return [4]Rect{
		quadUL: {rect.UpperLeft, center},
		quadUR: {Point{center.X, rect.UpperLeft.Y}, Point{rect.LowerRight.X, center.Y}},
		quadLL: {Point{rect.UpperLeft.X, center.Y}, Point{center.X, rect.LowerRight.Y}},
		quadLR: {center, rect.LowerRight},
	}
}

// filterOverlapping returns the subset of candidates whose swept
// parallelogram overlaps rect.
func filterOverlapping(rect Rect, candidates []*Segment) []*Segment {
	out := make([]*Segment, 0, len(candidates))
	for _, s := range candidates {
		if segmentOverlapsNode(s, rect) {
			out = append(out, s)
		}
	}
	return out
}

// segmentOverlapsNode is the quadtree containment predicate
// isSegmentInNode, ported from original_source/Quadtree.c's
// isLineInQuadtree: a four-sided half-plane rejection, then corner-in-shape
// tests in both directions, then an edge-crossing fallback.
func segmentOverlapsNode(seg *Segment, rect Rect) bool {
	corners := seg.sweepCorners() // P1, P2, P2+shift, P1+shift

	allRightOf, allLeftOf, allBelowTop, allAboveBottom := true, true, true, true
	for _, p := range corners {
		if p.X <= rect.LowerRight.X {
			allRightOf = false
		}
		if p.X >= rect.UpperLeft.X {
			allLeftOf = false
		}
		if p.Y <= rect.LowerRight.Y {
			allBelowTop = false
		}
		if p.Y >= rect.UpperLeft.Y {
			allAboveBottom = false
		}
	}
	if allRightOf || allLeftOf || allBelowTop || allAboveBottom {
		return false
	}

	for _, p := range corners {
		if pointInAABB(p, rect.UpperLeft, rect.LowerRight) {
			return true
		}
	}

	boxCorners := [4]Point{
		rect.UpperLeft,
		{rect.LowerRight.X, rect.UpperLeft.Y},
		{rect.UpperLeft.X, rect.LowerRight.Y},
		rect.LowerRight,
	}
	shiftedP1, shiftedP2 := corners[3], corners[2]
	for _, bc := range boxCorners {
		if pointInParallelogram(bc, seg.P1, seg.P2, shiftedP1, shiftedP2) {
			return true
		}
	}

	boxEdges := [4][2]Point{
		{boxCorners[0], boxCorners[1]},
		{boxCorners[0], boxCorners[2]},
		{boxCorners[1], boxCorners[3]},
		{boxCorners[2], boxCorners[3]},
	}
	parallelogramEdges := [3][2]Point{
		{seg.P1, seg.P2},
		{seg.P1, shiftedP1},
		{seg.P2, shiftedP2},
	}
	for _, be := range boxEdges {
		for _, pe := range parallelogramEdges {
			if intersectLines(be[0], be[1], pe[0], pe[1]) {
				return true
			}
		}
	}
	return false
}

// refresh recomputes every leaf's segment membership against the current
// swept parallelograms, preserving the tree's shape rather than rebuilding
// it from scratch each step. Leaves are refreshed concurrently, chunked
// across workers -- the same sync.WaitGroup fan-out used for position-advance
// and wall-bounce in world.go.
func (qt *Quadtree) refresh(segments []*Segment, workers int) {
	leaves := qt.leafIndices()
	parallelFor(len(leaves), workers, func(i int) {
		node := &qt.nodes[leaves[i]]
		overlapping := filterOverlapping(node.rect, segments)
		node.segments = linkedhashset.New()
		for _, s := range overlapping {
			node.segments.Add(s)
		}
	})
}

// leafIndices returns the arena indices of every leaf node.
func (qt *Quadtree) leafIndices() []int {
	var leaves []int
	var walk func(idx int)
	walk = func(idx int) {
		n := &qt.nodes[idx]
		if n.isLeaf {
			leaves = append(leaves, idx)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(qt.root)
	return leaves
}

// detectCollisions performs the parallel collision traversal: at internal
// nodes it recurses into all four children in parallel (up to
// maxParallelDepth, beyond which it continues on the calling goroutine); at
// leaves it runs the O(k^2) pair loop. It returns a merged EventList and the
// raw (pre-dedup) pair count.
func (qt *Quadtree) detectCollisions(maxParallelDepth int) (*EventList, int) {
	return qt.detectNode(qt.root, maxParallelDepth)
}

func (qt *Quadtree) detectNode(idx, parallelBudget int) (*EventList, int) {
	node := &qt.nodes[idx]
	if node.isLeaf {
		return detectLeafCollisions(node)
	}

	if parallelBudget <= 0 {
		merged := &EventList{}
		total := 0
		for _, c := range node.children {
			events, count := qt.detectNode(c, parallelBudget)
			merged.Concat(events)
			total += count
		}
		return merged, total
	}

	var wg sync.WaitGroup
	var childEvents [4]*EventList
	var childCounts [4]int
	for q, c := range node.children {
		wg.Add(1)
		go func(q, c int) {
			defer wg.Done()
			childEvents[q], childCounts[q] = qt.detectNode(c, parallelBudget-1)
		}(q, c)
	}
	wg.Wait()

	merged := &EventList{}
	total := 0
	for q := range childEvents {
		merged.Concat(childEvents[q])
		total += childCounts[q]
	}
	return merged, total
}

// detectLeafCollisions runs the O(k^2) pair loop over a single leaf's
// segments, per original_source/Quadtree.c's detectCollisionsReducer leaf
// case.
func detectLeafCollisions(node *quadtreeNode) (*EventList, int) {
	events := &EventList{}
	count := 0
	if node.segments == nil {
		return events, count
	}

	values := node.segments.Values()
	segs := make([]*Segment, len(values))
	for i, v := range values {
		segs[i] = v.(*Segment)
	}

	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			a, b := segs[i], segs[j]
			if a.ID > b.ID {
				a, b = b, a
			}
			shiftedP1, shiftedP2 := relativeSweptEndpoints(a, b)
			if !fastIntersect(a, b, shiftedP1, shiftedP2) {
				continue
			}
			verdict := intersect(a, b, shiftedP1, shiftedP2)
			if verdict == NoIntersection {
				continue
			}
			events.Append(IntersectionEvent{A: a, B: b, Verdict: verdict})
			count++
		}
	}
	return events, count
}
