package quadcollide

import (
	"math"
	"sync"
	"testing"
)

func approxEqual(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestIntersectLinesCrossing(t *testing.T) {
	p1, p2 := Point{0, 0}, Point{10, 10}
	p3, p4 := Point{0, 10}, Point{10, 0}
	if !intersectLines(p1, p2, p3, p4) {
		t.Errorf("expected crossing segments to intersect")
	}
}

func TestIntersectLinesParallelNoTouch(t *testing.T) {
	p1, p2 := Point{0, 0}, Point{10, 0}
	p3, p4 := Point{0, 1}, Point{10, 1}
	if intersectLines(p1, p2, p3, p4) {
		t.Errorf("expected parallel non-touching segments not to intersect")
	}
}

func TestIntersectLinesCollinearOverlap(t *testing.T) {
	p1, p2 := Point{0, 0}, Point{10, 0}
	p3, p4 := Point{5, 0}, Point{15, 0}
	if !intersectLines(p1, p2, p3, p4) {
		t.Errorf("expected collinear overlapping segments to intersect")
	}
}

func TestPointInAABB(t *testing.T) {
	upperLeft := Point{0, 0}
	lowerRight := Point{10, 10}
	if !pointInAABB(Point{5, 5}, upperLeft, lowerRight) {
		t.Errorf("expected center point to be inside box")
	}
	if pointInAABB(Point{20, 20}, upperLeft, lowerRight) {
		t.Errorf("expected far point to be outside box")
	}
}

func TestGetIntersectionPointMidpoint(t *testing.T) {
	p := getIntersectionPoint(Point{0, 0}, Point{10, 10}, Point{0, 10}, Point{10, 0})
	approxEqual(t, p.X, 5)
	approxEqual(t, p.Y, 5)
}

func TestDirectionSign(t *testing.T) {
	if direction(Point{0, 0}, Point{10, 0}, Point{5, 5}) >= 0 {
		t.Errorf("expected point above the line to give a negative orientation value")
	}
	if direction(Point{0, 0}, Point{10, 0}, Point{5, -5}) <= 0 {
		t.Errorf("expected point below the line to give a positive orientation value")
	}
}

func TestResolveElasticConservesKineticEnergy(t *testing.T) {
	l1 := &Segment{ID: 0, P1: Point{0, 0}, P2: Point{1, 0}, Velocity: Vector{2, 1}, Length: 1}
	l2 := &Segment{ID: 1, P1: Point{2, 0}, P2: Point{3, 0}, Velocity: Vector{-1, 2}, Length: 3}

	before := 0.5*l1.Length*l1.Velocity.Dot(l1.Velocity) + 0.5*l2.Length*l2.Velocity.Dot(l2.Velocity)
	resolveElastic(l1, l2, L1WithL2)
	after := 0.5*l1.Length*l1.Velocity.Dot(l1.Velocity) + 0.5*l2.Length*l2.Velocity.Dot(l2.Velocity)

	approxEqual(t, before, after)
}

func TestResolveElasticEqualMassSwapsNormalVelocity(t *testing.T) {
	// l2 is horizontal, so its face is the X axis and its normal is the Y
	// axis. Velocities purely along the normal should swap for equal mass.
	l1 := &Segment{ID: 0, P1: Point{0, 0}, P2: Point{1, 0}, Velocity: Vector{0, 3}, Length: 1}
	l2 := &Segment{ID: 1, P1: Point{2, 0}, P2: Point{3, 0}, Velocity: Vector{0, -2}, Length: 1}

	resolveElastic(l1, l2, L1WithL2)

	approxEqual(t, l1.Velocity.Y, -2)
	approxEqual(t, l2.Velocity.Y, 3)
}

func TestResolvePanicsOnMisorderedIDs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected resolve to panic when A.ID >= B.ID")
		}
	}()
	l1 := &Segment{ID: 1}
	l2 := &Segment{ID: 0}
	resolve(IntersectionEvent{A: l1, B: l2, Verdict: L1WithL2})
}

func TestResolveUnstickRedirectsAwayFromIntersectionPoint(t *testing.T) {
	// l1 is horizontal, l2 is vertical; they cross at (25,25). For l1, P2 is
	// nearer to the crossing point than P1, so the redirect should point
	// away from P2, i.e. toward P1. For l2, P1 is nearer, so the redirect
	// should point toward P2.
	l1 := &Segment{ID: 0, P1: Point{0, 25}, P2: Point{40, 25}, Velocity: Vector{3, 4}}
	l2 := &Segment{ID: 1, P1: Point{25, 0}, P2: Point{25, 60}, Velocity: Vector{-1, 2}}

	speed1 := l1.Velocity.Length()
	speed2 := l2.Velocity.Length()

	resolve(IntersectionEvent{A: l1, B: l2, Verdict: AlreadyIntersected})

	approxEqual(t, l1.Velocity.Length(), speed1)
	approxEqual(t, l2.Velocity.Length(), speed2)

	wantV1 := speed1 * -1
	approxEqual(t, l1.Velocity.X, wantV1)
	approxEqual(t, l1.Velocity.Y, 0)

	approxEqual(t, l2.Velocity.X, 0)
	approxEqual(t, l2.Velocity.Y, speed2)
}

func TestCanonicalizeDedupesRepeatedPairs(t *testing.T) {
	a := &Segment{ID: 0}
	b := &Segment{ID: 1}

	events := &EventList{}
	events.Append(IntersectionEvent{A: a, B: b, Verdict: L1WithL2})
	events.Append(IntersectionEvent{A: a, B: b, Verdict: L1WithL2})

	ordered, duplicatesRemoved := canonicalize(events)
	if len(ordered) != 1 {
		t.Fatalf("expected 1 canonical event, got %d", len(ordered))
	}
	if duplicatesRemoved != 1 {
		t.Errorf("expected 1 duplicate removed, got %d", duplicatesRemoved)
	}
}

func TestCanonicalizeOrdersByID(t *testing.T) {
	s0 := &Segment{ID: 0}
	s1 := &Segment{ID: 1}
	s2 := &Segment{ID: 2}

	events := &EventList{}
	events.Append(IntersectionEvent{A: s1, B: s2, Verdict: L1WithL2})
	events.Append(IntersectionEvent{A: s0, B: s1, Verdict: L1WithL2})

	ordered, _ := canonicalize(events)
	if len(ordered) != 2 {
		t.Fatalf("expected 2 canonical events, got %d", len(ordered))
	}
	if ordered[0].A.ID != 0 || ordered[0].B.ID != 1 {
		t.Errorf("expected first event to be (0,1), got (%d,%d)", ordered[0].A.ID, ordered[0].B.ID)
	}
	if ordered[1].A.ID != 1 || ordered[1].B.ID != 2 {
		t.Errorf("expected second event to be (1,2), got (%d,%d)", ordered[1].A.ID, ordered[1].B.ID)
	}
}

func TestParallelForVisitsEveryIndexOnce(t *testing.T) {
	n := 97
	seen := make([]int, n)
	var mu sync.Mutex
	parallelFor(n, 4, func(i int) {
		mu.Lock()
		seen[i]++
		mu.Unlock()
	})
	for i, v := range seen {
		if v != 1 {
			t.Errorf("index %d visited %d times, want 1", i, v)
		}
	}
}

func TestParallelForReduceIntSumsPartials(t *testing.T) {
	n := 50
	total := parallelForReduceInt(n, 4, func(i int) int { return 1 })
	if total != n {
		t.Errorf("got %d, want %d", total, n)
	}
}
