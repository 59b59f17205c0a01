package world

import (
	"iter"

	"github.com/patricklbell/raytracer/pkg/arena"
)

type node[T any] struct {
	value      T
	prev, next *node[T]
	index      uint32
	generation uint32
	live       bool
}

// list is a generational slot map whose live entries are threaded in
// insertion order. Slots are never reused, not even after release.
type list[T any] struct {
	kind   Kind
	nodes  *arena.Arena[node[T]]
	base   uint32 // index of slots[0]; slots before it were released
	slots  []*node[T]
	first  *node[T]
	last   *node[T]
	length int
}

func newList[T any](kind Kind) list[T] {
	return list[T]{kind: kind, nodes: arena.New[node[T]](0)}
}

func (l *list[T]) add(value T) Handle {
	n := l.nodes.Alloc()
	n.value = value
	n.index = l.base + uint32(len(l.slots))
	n.generation = 1
	n.live = true

	n.prev = l.last
	if l.last != nil {
		l.last.next = n
	} else {
		l.first = n
	}
	l.last = n
	l.length++

	l.slots = append(l.slots, n)
	return l.handleOf(n)
}

func (l *list[T]) lookup(h Handle) *node[T] {
	if h.kind != l.kind || h.index < l.base || int(h.index-l.base) >= len(l.slots) {
		return nil
	}
	n := l.slots[h.index-l.base]
	if !n.live || n.generation != h.generation {
		return nil
	}
	return n
}

func (l *list[T]) resolve(h Handle) (*T, bool) {
	n := l.lookup(h)
	if n == nil {
		return nil, false
	}
	return &n.value, true
}

func (l *list[T]) remove(h Handle) bool {
	n := l.lookup(h)
	if n == nil {
		return false
	}

	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.first = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.last = n.prev
	}
	n.prev, n.next = nil, nil

	// The slot keeps its memory; bumping the generation invalidates outstanding handles
	var zero T
	n.value = zero
	n.live = false
	n.generation++
	l.length--
	return true
}

func (l *list[T]) handleOf(n *node[T]) Handle {
	return Handle{index: n.index, generation: n.generation, kind: l.kind}
}

// all yields live entries in insertion order
func (l *list[T]) all() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for n := l.first; n != nil; n = n.next {
			if !yield(l.handleOf(n), &n.value) {
				return
			}
		}
	}
}

func (l *list[T]) release() {
	l.nodes.Release()
	l.base += uint32(len(l.slots))
	l.slots = nil
	l.first, l.last = nil, nil
	l.length = 0
}
