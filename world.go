package quadcollide

import (
	"sync/atomic"

	"github.com/emirpasic/gods/lists/arraylist"
)

// StepStats summarizes the most recently completed step: wall and
// line-line collision counts, plus the raw-vs-deduped pair counts behind
// the line-line tally.
type StepStats struct {
	WallCollisions      int
	LineLineCollisions  int
	RawPairs            int
	DuplicatesRemoved   int
}

// World owns the simulation's segments and spatial index and drives the
// per-step collision pipeline. It is the only surface a driver (argument
// parsing, scene loading, rendering -- none of which live in this package)
// needs to touch.
type World struct {
	config   Config
	capacity int
	segments *arraylist.List
	index    *Quadtree

	numLineWallCollisions atomic.Uint64
	numLineLineCollisions atomic.Uint64

	lastStats StepStats
}

// NewWorld reserves capacity for capacity segments and applies opts over the
// package defaults (box [0,1]x[0,1], Δt 0.5, overflow-driven quadtree with
// leaf capacity 150, GOMAXPROCS workers). Both counters start at 0.
func NewWorld(capacity int, opts ...WorldOption) (*World, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	w := &World{
		config:   cfg,
		capacity: capacity,
		segments: arraylist.New(),
	}
	w.index = buildQuadtree(cfg.Box, nil, cfg)
	return w, nil
}

// AddSegment appends seg to the world, assigning it the next ID, and
// rebuilds the spatial index. Must only be called before Step is first
// invoked. Returns ErrCapacityExceeded once the reserved capacity is used
// up, or ErrDegenerateSegment for a zero-length segment.
func (w *World) AddSegment(seg Segment) error {
	if w.segments.Size() >= w.capacity {
		return ErrCapacityExceeded
	}

	length := seg.P2.Sub(seg.P1).Length()
	if length < epsilon {
		return ErrDegenerateSegment
	}

	seg.ID = w.segments.Size()
	seg.Length = length
	stored := &seg
	stored.refreshSweep(w.config.DT)

	w.segments.Add(stored)
	w.index = buildQuadtree(w.config.Box, w.segmentSlice(), w.config)
	return nil
}

// NumSegments returns the number of segments in the world.
func (w *World) NumSegments() int {
	return w.segments.Size()
}

// Segment returns a copy of the segment at index, and false if index is out
// of range.
func (w *World) Segment(index int) (Segment, bool) {
	v, ok := w.segments.Get(index)
	if !ok {
		return Segment{}, false
	}
	return *(v.(*Segment)), true
}

// NumLineWallCollisions returns the cumulative wall-collision count.
func (w *World) NumLineWallCollisions() uint64 {
	return w.numLineWallCollisions.Load()
}

// NumLineLineCollisions returns the cumulative line-line collision count.
func (w *World) NumLineLineCollisions() uint64 {
	return w.numLineLineCollisions.Load()
}

// StepStats returns the tallies from the most recently completed step.
func (w *World) StepStats() StepStats {
	return w.lastStats
}

// segmentSlice returns every segment in ID order.
func (w *World) segmentSlice() []*Segment {
	values := w.segments.Values()
	segs := make([]*Segment, len(values))
	for i, v := range values {
		segs[i] = v.(*Segment)
	}
	return segs
}

// Step advances the simulation by one time step: refresh the index, detect
// collisions, canonically sort+dedup the results, resolve in canonical
// order, advance positions, then bounce off walls. Phases run strictly in
// that order; the refresh/detect/advance/wall-bounce phases are internally
// parallel, sort+dedup+resolve is sequential.
func (w *World) Step() StepStats {
	segs := w.segmentSlice()
	dt := w.config.DT
	workers := w.config.Workers

	parallelFor(len(segs), workers, func(i int) {
		segs[i].refreshSweep(dt)
	})
	w.index.refresh(segs, workers)

	rawEvents, _ := w.index.detectCollisions(w.config.MaxParallelDepth)
	canonical, duplicatesRemoved := canonicalize(rawEvents)
	rawPairs := len(canonical) + duplicatesRemoved

	for _, ev := range canonical {
		resolve(ev)
		ev.A.refreshSweep(dt)
		ev.B.refreshSweep(dt)
	}

	parallelFor(len(segs), workers, func(i int) {
		s := segs[i]
		s.P1 = s.P1.Add(s.Velocity.Scale(dt))
		s.P2 = s.P2.Add(s.Velocity.Scale(dt))
	})

	box := w.config.Box
	wallCount := parallelForReduceInt(len(segs), workers, func(i int) int {
		s := segs[i]
		collided := false

		if (s.P1.X > box.LowerRight.X || s.P2.X > box.LowerRight.X) && s.Velocity.X > 0 {
			s.Velocity.X = -s.Velocity.X
			collided = true
		}
		if (s.P1.X < box.UpperLeft.X || s.P2.X < box.UpperLeft.X) && s.Velocity.X < 0 {
			s.Velocity.X = -s.Velocity.X
			collided = true
		}
		if (s.P1.Y > box.LowerRight.Y || s.P2.Y > box.LowerRight.Y) && s.Velocity.Y > 0 {
			s.Velocity.Y = -s.Velocity.Y
			collided = true
		}
		if (s.P1.Y < box.UpperLeft.Y || s.P2.Y < box.UpperLeft.Y) && s.Velocity.Y < 0 {
			s.Velocity.Y = -s.Velocity.Y
			collided = true
		}

		s.refreshSweep(dt)
		if collided {
			return 1
		}
		return 0
	})

	w.numLineWallCollisions.Add(uint64(wallCount))
	w.numLineLineCollisions.Add(uint64(len(canonical)))

	w.lastStats = StepStats{
		WallCollisions:     wallCount,
		LineLineCollisions: len(canonical),
		RawPairs:           rawPairs,
		DuplicatesRemoved:  duplicatesRemoved,
	}
	return w.lastStats
}
