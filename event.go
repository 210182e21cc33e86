package quadcollide

// IntersectionEvent records a classified, not-yet-resolved collision between
// two segments. A is always the lower-ID segment.
type IntersectionEvent struct {
	A, B    *Segment
	Verdict Verdict
}

// key returns the lexicographic ordering key (id(A), id(B)) used by the
// red-black-tree-backed canonical sort/dedup pass in eventset.go.
func (e IntersectionEvent) key() (int, int) {
	return e.A.ID, e.B.ID
}

// eventNode is one link in an EventList.
type eventNode struct {
	event IntersectionEvent
	next  *eventNode
}

// EventList is an append-only singly-linked sequence of collision events:
// O(1) append, O(1) concatenation, and an identity (the empty list) so that
// per-goroutine partials accumulated during the detect traversal can be
// merged at every join point without copying.
//
// No example-repo dependency offers this exact shape (a tail-tracked linked
// list built for splice-concat); emirpasic/gods' list types keep no tail
// pointer, so concatenation there is O(n). This structure is therefore
// hand-rolled.
type EventList struct {
	head, tail *eventNode
	count      int
}

// Append adds ev to the end of the list in O(1).
func (l *EventList) Append(ev IntersectionEvent) {
	node := &eventNode{event: ev}
	if l.tail == nil {
		l.head = node
		l.tail = node
	} else {
		l.tail.next = node
		l.tail = node
	}
	l.count++
}

// Concat splices other onto the end of l in O(1) and empties other. Concat
// with an empty list is a no-op on either side, realizing the identity
// element of the append monoid.
func (l *EventList) Concat(other *EventList) {
	if other == nil || other.head == nil {
		return
	}
	if l.head == nil {
		l.head, l.tail, l.count = other.head, other.tail, other.count
	} else {
		l.tail.next = other.head
		l.tail = other.tail
		l.count += other.count
	}
	other.head, other.tail, other.count = nil, nil, 0
}

// Len returns the number of events currently in the list.
func (l *EventList) Len() int {
	return l.count
}

// forEach invokes fn for every event in append order, from head to tail.
func (l *EventList) forEach(fn func(IntersectionEvent)) {
	for n := l.head; n != nil; n = n.next {
		fn(n.event)
	}
}
