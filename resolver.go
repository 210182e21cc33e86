package quadcollide

// resolve applies the impulse rule to a single classified event, mutating
// both segments' velocities in place. Ported from
// original_source/CollisionWorld.c's CollisionWorld_collisionSolver.
//
// Precondition: ev.A.ID < ev.B.ID and ev.Verdict is one of
// AlreadyIntersected, L1WithL2, L2WithL1. Any other verdict indicates a bug
// in the caller and panics rather than resolving silently.
func resolve(ev IntersectionEvent) {
	l1, l2 := ev.A, ev.B
	if l1.ID >= l2.ID {
		panic("quadcollide: resolve called with id(A) >= id(B)")
	}

	switch ev.Verdict {
	case AlreadyIntersected:
		resolveUnstick(l1, l2)
	case L1WithL2, L2WithL1:
		resolveElastic(l1, l2, ev.Verdict)
	default:
		panic("quadcollide: resolve called with unrecognized verdict")
	}
}

// resolveUnstick handles the case where two segments are found to already
// overlap. Each segment is redirected along its own axis, away from the
// shared intersection point, at its original speed -- this frees the pair
// in the fastest way available without changing either segment's speed.
func resolveUnstick(l1, l2 *Segment) {
	p := getIntersectionPoint(l1.P1, l1.P2, l2.P1, l2.P2)

	for _, s := range [2]*Segment{l1, l2} {
		speed := s.Velocity.Length()
		var away Point
		if s.P1.Sub(p).Length() < s.P2.Sub(p).Length() {
			away = s.P2
		} else {
			away = s.P1
		}
		s.Velocity = away.Sub(p).Normalize().Scale(speed)
	}
}

// resolveElastic applies the 1D elastic collision formula along the contact
// normal, preserving each segment's tangential (face-parallel) velocity
// component. Mass is taken as segment length.
func resolveElastic(l1, l2 *Segment, verdict Verdict) {
	var face Vector
	if verdict == L1WithL2 {
		face = l2.direction().Normalize()
	} else {
		face = l1.direction().Normalize()
	}
	normal := face.Orthogonal()

	v1Face := l1.Velocity.Dot(face)
	v2Face := l2.Velocity.Dot(face)
	v1Normal := l1.Velocity.Dot(normal)
	v2Normal := l2.Velocity.Dot(normal)

	m1, m2 := l1.Length, l2.Length

	newV1Normal := ((m1-m2)/(m1+m2))*v1Normal + (2*m2/(m1+m2))*v2Normal
	newV2Normal := (2*m1/(m1+m2))*v1Normal + ((m2-m1)/(m1+m2))*v2Normal

	l1.Velocity = normal.Scale(newV1Normal).Add(face.Scale(v1Face))
	l2.Velocity = normal.Scale(newV2Normal).Add(face.Scale(v2Face))
}
