package quadcollide

// Segment is a rigid line segment with a constant velocity. ID is assigned
// by World.AddSegment in insertion order and is the sole ordering key used
// throughout the pipeline: id(a) < id(b) defines "first" for every pairwise
// operation in this package.
type Segment struct {
	ID       int
	P1, P2   Point
	Velocity Vector

	// Length is the Euclidean distance between P1 and P2 at construction
	// time. Segments are rigid: Length never changes after AddSegment, even
	// as P1/P2 are translated by the position-advance phase.
	Length float64

	// shift is Velocity scaled by the world's time step, cached so the
	// broad/narrow phase and the quadtree containment test never recompute
	// it. parallelogram holds the four swept corners {P1, P2, P2+shift,
	// P1+shift}. Both are invalidated whenever Velocity changes and must be
	// refreshed with refreshSweep before the index or detector reads them.
	shift         Vector
	parallelogram [4]Point
	sweepValid    bool
}

// refreshSweep recomputes shift and the cached swept parallelogram from the
// segment's current endpoints, velocity, and the world's time step. Must be
// called once per step before the quadtree is refreshed, and again
// immediately after any phase that mutates Velocity (the resolver, the
// wall-bounce phase), or the cached corners will describe a motion the
// segment no longer has.
func (s *Segment) refreshSweep(dt float64) {
	s.shift = s.Velocity.Scale(dt)
	s.parallelogram = [4]Point{
		s.P1,
		s.P2,
		s.P2.Add(s.shift),
		s.P1.Add(s.shift),
	}
	s.sweepValid = true
}

// sweepCorners returns the cached swept-parallelogram corners in the order
// {P1, P2, P2+shift, P1+shift}, panicking if they were never computed.
// A stale or absent parallelogram means a call site skipped refreshSweep --
// a bug in this package, never a symptom of bad input.
func (s *Segment) sweepCorners() [4]Point {
	if !s.sweepValid {
		panic("quadcollide: segment parallelogram read before refreshSweep")
	}
	return s.parallelogram
}

// shiftedEndpoints returns (P1+shift, P2+shift): the segment's own
// endpoints translated by its own motion over the step. Geometry call sites
// pair this with (P1, P2) as the opposite side of a swept parallelogram, per
// the pointInParallelogram contract.
func (s *Segment) shiftedEndpoints() (Point, Point) {
	if !s.sweepValid {
		panic("quadcollide: segment parallelogram read before refreshSweep")
	}
	return s.parallelogram[3], s.parallelogram[2]
}

// direction returns the segment's endpoint-to-endpoint vector, P2-P1.
func (s *Segment) direction() Vector {
	return s.P2.Sub(s.P1)
}

// relativeSweptEndpoints returns b's endpoints shifted by b's motion
// relative to a over the step -- the two "far" corners of the parallelogram
// b sweeps out in a's reference frame. a and b need not satisfy any
// ordering; the broad/narrow phase always calls this with a as the
// lower-ID segment, matching original_source/Quadtree.c's detect loop.
func relativeSweptEndpoints(a, b *Segment) (Point, Point) {
	rel := b.shift.Sub(a.shift)
	return b.P1.Add(rel), b.P2.Add(rel)
}
