// Package arena provides a typed region allocator. Values are carved out of
// fixed-size chunks so pointers stay valid until the arena is cleared or
// released; there is no per-object free.
package arena

// DefaultChunkSize is the number of values per chunk when none is given
const DefaultChunkSize = 1024

// Arena hands out pointers to zeroed values of T
type Arena[T any] struct {
	chunkSize int
	chunks    [][]T
	current   int // index of the chunk being filled
	count     int
}

// New creates an arena allocating chunkSize values at a time.
// A chunkSize <= 0 uses DefaultChunkSize.
func New[T any](chunkSize int) *Arena[T] {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Arena[T]{chunkSize: chunkSize}
}

// Alloc returns a pointer to a new zero value
func (a *Arena[T]) Alloc() *T {
	return &a.AllocSlice(1)[0]
}

// AllocSlice returns n contiguous zero values. Requests larger than the
// chunk size get a dedicated chunk.
func (a *Arena[T]) AllocSlice(n int) []T {
	if n <= 0 {
		return nil
	}
	a.count += n

	if n > a.chunkSize {
		chunk := make([]T, n)
		a.chunks = append(a.chunks, chunk)
		return chunk
	}

	for a.current < len(a.chunks) {
		chunk := a.chunks[a.current]
		if cap(chunk)-len(chunk) >= n {
			start := len(chunk)
			chunk = chunk[:start+n]
			a.chunks[a.current] = chunk
			return chunk[start : start+n : start+n]
		}
		a.current++
	}

	chunk := make([]T, n, a.chunkSize)
	a.chunks = append(a.chunks, chunk)
	a.current = len(a.chunks) - 1
	return chunk[:n:n]
}

// Len returns the number of values allocated since the last Clear
func (a *Arena[T]) Len() int {
	return a.count
}

// Clear forgets every allocation but keeps chunk memory for reuse.
// Pointers obtained before Clear must not be used afterwards.
func (a *Arena[T]) Clear() {
	var zero T
	for i, chunk := range a.chunks {
		for j := range chunk {
			chunk[j] = zero
		}
		a.chunks[i] = chunk[:0]
	}
	a.current = 0
	a.count = 0
}

// Release drops all chunk memory
func (a *Arena[T]) Release() {
	a.chunks = nil
	a.current = 0
	a.count = 0
}
