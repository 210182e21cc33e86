package quadcollide

import "math"

// Verdict is the narrow-phase classifier's output for an ordered segment
// pair (a, b) with id(a) < id(b).
type Verdict int

const (
	// NoIntersection means the broad phase admitted the pair but the
	// refined checks rejected it; no event is recorded.
	NoIntersection Verdict = iota
	// AlreadyIntersected means the two segments overlap right now, before
	// the step's position advance.
	AlreadyIntersected
	// L1WithL2 means segment a reaches segment b's body first during the
	// step; b's direction is the contact face.
	L1WithL2
	// L2WithL1 means segment b reaches segment a's body first; a's
	// direction is the contact face.
	L2WithL1
)

// direction computes the signed area of the triangle (pi, pj, pk), scaled by
// two. Its sign says which side of the directed line pi->pj the point pk
// lies on.
func direction(pi, pj, pk Point) float64 {
	return (pk.X-pi.X)*(pj.Y-pi.Y) - (pj.X-pi.X)*(pk.Y-pi.Y)
}

// onSegment reports whether pk, known to be collinear with pi and pj, lies
// within the closed bounding box of segment (pi, pj).
func onSegment(pi, pj, pk Point) bool {
	return ((pi.X <= pk.X && pk.X <= pj.X) || (pj.X <= pk.X && pk.X <= pi.X)) &&
		((pi.Y <= pk.Y && pk.Y <= pj.Y) || (pj.Y <= pk.Y && pk.Y <= pi.Y))
}

// intersectLines reports whether segments (p1,p2) and (p3,p4) share a point,
// using an AABB rejection followed by the standard straddle test and an
// on-segment fallback for collinear boundary contact.
func intersectLines(p1, p2, p3, p4 Point) bool {
	if math.Max(p1.X, p2.X) < math.Min(p3.X, p4.X) {
		return false
	}
	if math.Min(p1.X, p2.X) > math.Max(p3.X, p4.X) {
		return false
	}
	if math.Max(p1.Y, p2.Y) < math.Min(p3.Y, p4.Y) {
		return false
	}
	if math.Min(p1.Y, p2.Y) > math.Max(p3.Y, p4.Y) {
		return false
	}

	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

// pointInParallelogram reports whether q lies inside the parallelogram whose
// opposite sides are (p1,p2) and (p3,p4). Corner order is part of the
// contract: callers must pass corners in the order produced by
// Segment.sweepCorners / the shifted-pair construction in fastIntersect and
// intersect.
func pointInParallelogram(q, p1, p2, p3, p4 Point) bool {
	d1 := direction(p1, p2, q)
	d2 := direction(p3, p4, q)
	d3 := direction(p1, p3, q)
	d4 := direction(p2, p4, q)
	return d1*d2 < 0 && d3*d4 < 0
}

// pointInAABB reports whether point lies in the closed axis-aligned box
// with corners upperLeft (min) and lowerRight (max).
func pointInAABB(point, upperLeft, lowerRight Point) bool {
	return point.X >= upperLeft.X && point.X <= lowerRight.X &&
		point.Y >= upperLeft.Y && point.Y <= lowerRight.Y
}

// getIntersectionPoint solves for the point shared by two intersecting,
// non-parallel segments (p1,p2) and (p3,p4). Its precondition -- a shared
// point exists and the segments are not parallel -- only holds when the
// caller already knows the pair is AlreadyIntersected; calling it on a pair
// that is merely about to collide, or that never collides at all, divides
// by zero or returns a meaningless point.
func getIntersectionPoint(p1, p2, p3, p4 Point) Point {
	u := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) /
		((p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y))
	return p1.Add(p2.Sub(p1).Scale(u))
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

// fastIntersect is the cheap boolean broad phase. l2ShiftedP1/l2ShiftedP2
// are l2's endpoints after being shifted by l2's motion relative to l1 over
// the step, i.e. the two "far" corners of l2's swept parallelogram relative
// to l1.
func fastIntersect(l1, l2 *Segment, l2ShiftedP1, l2ShiftedP2 Point) bool {
	l1p1, l1p2 := l1.P1, l1.P2
	l2p1, l2p2 := l2.P1, l2.P2

	if math.Max(l1p1.X, l1p2.X) < min3(l2p1.X, l2p2.X, math.Min(l2ShiftedP1.X, l2ShiftedP2.X)) {
		return false
	}
	if math.Min(l1p1.X, l1p2.X) > max3(l2p1.X, l2p2.X, math.Max(l2ShiftedP1.X, l2ShiftedP2.X)) {
		return false
	}
	if math.Max(l1p1.Y, l1p2.Y) < min3(l2p1.Y, l2p2.Y, math.Min(l2ShiftedP1.Y, l2ShiftedP2.Y)) {
		return false
	}
	if math.Min(l1p1.Y, l1p2.Y) > max3(l2p1.Y, l2p2.Y, math.Max(l2ShiftedP1.Y, l2ShiftedP2.Y)) {
		return false
	}

	if pointInParallelogram(l1p1, l2p1, l2p2, l2ShiftedP1, l2ShiftedP2) {
		return true
	}
	if pointInParallelogram(l1p2, l2p1, l2p2, l2ShiftedP1, l2ShiftedP2) {
		return true
	}
	if intersectLines(l1p1, l1p2, l2p1, l2p2) {
		return true
	}
	if intersectLines(l1p1, l1p2, l2ShiftedP1, l2ShiftedP2) {
		return true
	}
	if intersectLines(l1p1, l1p2, l2ShiftedP1, l2p1) {
		return true
	}
	return false
}

// intersect is the narrow-phase classifier. l1 and l2 must satisfy
// l1.ID < l2.ID. l2ShiftedP1/l2ShiftedP2 are l2's endpoints shifted by the
// relative motion of l2 with respect to l1 over the step, forming l2's
// swept parallelogram relative to l1's reference frame.
func intersect(l1, l2 *Segment, l2ShiftedP1, l2ShiftedP2 Point) Verdict {
	if l1.ID >= l2.ID {
		panic("quadcollide: intersect called with id(l1) >= id(l2)")
	}

	if intersectLines(l1.P1, l1.P2, l2.P1, l2.P2) {
		return AlreadyIntersected
	}

	if pointInParallelogram(l1.P1, l2.P1, l2.P2, l2ShiftedP1, l2ShiftedP2) &&
		pointInParallelogram(l1.P2, l2.P1, l2.P2, l2ShiftedP1, l2ShiftedP2) {
		return L1WithL2
	}

	numCrossings := 0
	topCrossed := false
	bottomCrossed := false

	if intersectLines(l1.P1, l1.P2, l2ShiftedP1, l2ShiftedP2) {
		numCrossings++
	}
	if intersectLines(l1.P1, l1.P2, l2ShiftedP1, l2.P1) {
		numCrossings++
		topCrossed = true
	}
	if numCrossings == 2 {
		return L2WithL1
	}
	if intersectLines(l1.P1, l1.P2, l2ShiftedP2, l2.P2) {
		numCrossings++
		bottomCrossed = true
	}
	if numCrossings == 2 {
		return L2WithL1
	}

	angle := l1.direction().Angle(l2.direction())

	if topCrossed && angle < 0 {
		return L2WithL1
	}
	if bottomCrossed && angle > 0 {
		return L2WithL1
	}

	return L1WithL2
}
