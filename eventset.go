package quadcollide

import (
	rbt "github.com/emirpasic/gods/trees/redblacktree"
)

// eventKey is the canonical ordering key of an IntersectionEvent:
// lexicographic on (id(A), id(B)).
type eventKey struct {
	a, b int
}

// compareEventKeys implements the github.com/emirpasic/gods/utils.Comparator
// signature for eventKey, ordering lexicographically on (a, b). This is the
// same red-black-tree-backed ordering technique the sweep-line status
// structure once used to keep segments ordered by y-coordinate; here the
// tree orders events by id pair instead, and its "insert with an existing
// key overwrites" behavior is what gives the sort/dedup pass its dedup for
// free.
func compareEventKeys(x, y interface{}) int {
	kx, ky := x.(eventKey), y.(eventKey)
	switch {
	case kx.a != ky.a:
		if kx.a < ky.a {
			return -1
		}
		return 1
	case kx.b != ky.b:
		if kx.b < ky.b {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// canonicalize drains an EventList into a list of events sorted by
// (id(A), id(B)) with duplicate (A, B) pairs collapsed to one. The same
// segment pair can surface more than once when their swept parallelograms
// straddle a leaf boundary and get tested in more than one leaf; resolving
// a duplicate twice would apply its impulse twice. It returns the canonical
// slice alongside the number of raw events that were dropped as duplicates,
// so the caller can compute N = N0 - duplicatesRemoved for the per-step
// line-line counter.
//
// Implemented with a *redblacktree.Tree keyed by eventKey: every duplicate
// (A, B) pair collapses into a single Put, and an in-order traversal of the
// tree after all events are inserted yields the sorted, deduplicated order
// directly, without hand-rolling a selection sort.
func canonicalize(events *EventList) ([]IntersectionEvent, int) {
	tree := rbt.NewWith(compareEventKeys)
	raw := 0
	events.forEach(func(ev IntersectionEvent) {
		raw++
		a, b := ev.key()
		tree.Put(eventKey{a, b}, ev)
	})

	ordered := make([]IntersectionEvent, 0, tree.Size())
	it := tree.Iterator()
	for it.Next() {
		ordered = append(ordered, it.Value().(IntersectionEvent))
	}

	duplicatesRemoved := raw - len(ordered)
	return ordered, duplicatesRemoved
}
