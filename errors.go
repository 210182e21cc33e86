package quadcollide

import "errors"

// ErrCapacityExceeded is returned by AddSegment once the world's reserved
// capacity has been used up.
var ErrCapacityExceeded = errors.New("quadcollide: world capacity exceeded")

// ErrDegenerateSegment is returned by AddSegment for a zero-length segment.
// The design forbids these at construction: normalizing a zero direction
// vector is undefined, and a zero-length segment carries zero mass, which
// would divide by zero in the elastic impulse formula.
var ErrDegenerateSegment = errors.New("quadcollide: segment has zero length")

// ErrInvalidCapacity is returned by NewWorld for a non-positive capacity.
var ErrInvalidCapacity = errors.New("quadcollide: capacity must be positive")
