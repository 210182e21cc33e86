package quadcollide

import "runtime"

// Rect is an axis-aligned rectangle, upperLeft being the minimum corner and
// lowerRight the maximum corner.
type Rect struct {
	UpperLeft, LowerRight Point
}

// SubdivisionPolicy selects how the quadtree decides whether a node is a
// leaf: either by overlap-count overflow or by a fixed depth cap.
// OverflowDriven is the default.
type SubdivisionPolicy struct {
	kind     subdivisionKind
	capacity int
	depth    int
}

type subdivisionKind int

const (
	overflowDriven subdivisionKind = iota
	depthCapped
)

// OverflowDriven returns a policy where a node subdivides only once the
// number of segments overlapping it exceeds leafCapacity. Recommended range
// is [100, 300]; values outside that range are still honored.
func OverflowDriven(leafCapacity int) SubdivisionPolicy {
	return SubdivisionPolicy{kind: overflowDriven, capacity: leafCapacity}
}

// DepthCapped returns a policy where every node subdivides down to a fixed
// depth, regardless of how many segments land in the resulting leaves.
// Recommended depth is 2-4.
func DepthCapped(depth int) SubdivisionPolicy {
	return SubdivisionPolicy{kind: depthCapped, depth: depth}
}

// Config holds the simulation parameters a World is built with: the box
// bounds, time step, quadtree subdivision policy, and per-step fan-out
// width.
type Config struct {
	Box Rect
	// DT is the fixed simulation time step. Defaults to 0.5.
	DT float64
	// Subdivision selects the quadtree's leaf policy. Defaults to
	// OverflowDriven(150).
	Subdivision SubdivisionPolicy
	// Workers bounds the fan-out width of the per-step parallel regions.
	// Defaults to runtime.GOMAXPROCS(0).
	Workers int
	// MaxParallelDepth bounds how many quadtree levels the detect traversal
	// fans out goroutines over before continuing serially; beyond this
	// depth the per-node work is assumed too small to amortize goroutine
	// overhead. Defaults to 3.
	MaxParallelDepth int
}

// WorldOption configures a World at construction time, in the functional-
// options idiom the pack's mikenye-geom2d/options package uses for
// GeometryOptionsFunc (the pattern is reproduced here; the package itself
// is not imported, since it lives in a separate module with no relationship
// to this one).
type WorldOption func(*Config)

// WithBox sets the simulation box. Segments are expected to start inside
// it; wall-bounce keeps them bounded thereafter.
func WithBox(box Rect) WorldOption {
	return func(c *Config) { c.Box = box }
}

// WithTimeStep overrides the default 0.5 time step.
func WithTimeStep(dt float64) WorldOption {
	return func(c *Config) { c.DT = dt }
}

// WithSubdivisionPolicy overrides the quadtree's leaf policy.
func WithSubdivisionPolicy(p SubdivisionPolicy) WorldOption {
	return func(c *Config) { c.Subdivision = p }
}

// WithWorkers overrides the worker fan-out width used by the parallel
// regions of each step. A value <= 0 is ignored.
func WithWorkers(n int) WorldOption {
	return func(c *Config) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithMaxParallelDepth overrides how many quadtree levels the detect
// traversal fans goroutines over.
func WithMaxParallelDepth(depth int) WorldOption {
	return func(c *Config) { c.MaxParallelDepth = depth }
}

// defaultConfig returns the configuration a World is built with before any
// WorldOption is applied.
func defaultConfig() Config {
	return Config{
		Box:              Rect{Point{0, 0}, Point{1, 1}},
		DT:               0.5,
		Subdivision:      OverflowDriven(150),
		Workers:          runtime.GOMAXPROCS(0),
		MaxParallelDepth: 3,
	}
}
