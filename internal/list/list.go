// Package list implements a doubly linked list whose nodes live in a single
// arena and are addressed by generation-checked handles.
package list

import "iter"

// Sentinel slots. They are never freed and never hold a value.
const (
	head uint32 = 0
	tail uint32 = 1
)

// Handle addresses a list element. A handle becomes stale once its element is
// removed; stale handles are rejected by every method that accepts one.
type Handle struct {
	idx uint32
	gen uint32
}

type node[V any] struct {
	value V
	prev  uint32
	next  uint32
	gen   uint32
	live  bool
}

// List represents a doubly linked list.
type List[V any] struct {
	nodes []node[V]
	free  []uint32
	n     int
}

// New returns an empty list with room for capacity elements before the arena grows.
func New[V any](capacity int) *List[V] {
	if capacity < 0 {
		capacity = 0
	}

	l := &List[V]{nodes: make([]node[V], 2, capacity+2)}
	l.nodes[head].next = tail
	l.nodes[tail].prev = head

	return l
}

func (l *List[V]) valid(h Handle) bool {
	if h.idx == head || h.idx == tail || int(h.idx) >= len(l.nodes) {
		return false
	}

	n := &l.nodes[h.idx]

	return n.live && n.gen == h.gen
}

func (l *List[V]) alloc(v V) uint32 {
	var i uint32

	if k := len(l.free); k > 0 {
		i = l.free[k-1]
		l.free = l.free[:k-1]
	} else {
		l.nodes = append(l.nodes, node[V]{})
		i = uint32(len(l.nodes) - 1) //nolint:gosec
	}

	l.nodes[i].value = v
	l.nodes[i].live = true

	return i
}

// release frees an unlinked slot and invalidates outstanding handles to it.
func (l *List[V]) release(i uint32) V { //nolint:ireturn
	n := &l.nodes[i]
	v := n.value

	var zero V

	n.value = zero
	n.live = false
	n.gen++
	l.free = append(l.free, i)

	return v
}

func (l *List[V]) insertAfter(i, at uint32) {
	n := &l.nodes[i]
	n.prev = at
	n.next = l.nodes[at].next
	l.nodes[n.next].prev = i
	l.nodes[at].next = i
}

func (l *List[V]) unlink(i uint32) {
	n := &l.nodes[i]
	l.nodes[n.prev].next = n.next
	l.nodes[n.next].prev = n.prev
	n.prev = i
	n.next = i
}

func (l *List[V]) move(i, at uint32) {
	if i == at || l.nodes[i].prev == at {
		return
	}

	l.unlink(i)
	l.insertAfter(i, at)
}

func (l *List[V]) handle(i uint32) Handle {
	return Handle{idx: i, gen: l.nodes[i].gen}
}

// Len returns the number of elements of list.
func (l *List[V]) Len() int { return l.n }

// Back returns the last element of list, false if the list is empty.
func (l *List[V]) Back() (Handle, bool) {
	i := l.nodes[tail].prev
	if i == head {
		return Handle{}, false
	}

	return l.handle(i), true
}

// PushFront inserts v at the front.
func (l *List[V]) PushFront(v V) Handle {
	i := l.alloc(v)
	l.insertAfter(i, head)
	l.n++

	return l.handle(i)
}

// MoveToFront moves the element to the front.
func (l *List[V]) MoveToFront(h Handle) bool {
	if !l.valid(h) {
		return false
	}

	l.move(h.idx, head)

	return true
}

// Remove removes the element from list and returns its value.
func (l *List[V]) Remove(h Handle) (V, bool) { //nolint:ireturn
	if !l.valid(h) {
		var zero V

		return zero, false
	}

	l.unlink(h.idx)
	l.n--

	return l.release(h.idx), true
}

// Value returns the value held by the element.
func (l *List[V]) Value(h Handle) (V, bool) { //nolint:ireturn
	if !l.valid(h) {
		var zero V

		return zero, false
	}

	return l.nodes[h.idx].value, true
}

// Set replaces the value held by the element in place.
func (l *List[V]) Set(h Handle, v V) bool {
	if !l.valid(h) {
		return false
	}

	l.nodes[h.idx].value = v

	return true
}

// All yields values from front to back.
func (l *List[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i := l.nodes[head].next; i != tail; i = l.nodes[i].next {
			if !yield(l.nodes[i].value) {
				return
			}
		}
	}
}

// Backward yields values from back to front.
func (l *List[V]) Backward() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i := l.nodes[tail].prev; i != head; i = l.nodes[i].prev {
			if !yield(l.nodes[i].value) {
				return
			}
		}
	}
}

// Reset removes all elements. The arena is kept for reuse.
func (l *List[V]) Reset() {
	for i := l.nodes[head].next; i != tail; {
		next := l.nodes[i].next
		l.release(i)
		i = next
	}

	l.nodes[head].next = tail
	l.nodes[tail].prev = head
	l.n = 0
}
