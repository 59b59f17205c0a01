package core

import "math"

// Interval is the range of ray parameters t a hit is accepted in.
// Accepting a hit narrows Max to the hit distance, so later candidates
// must be closer to be accepted.
type Interval struct {
	Min float32
	Max float32
}

// NewInterval creates a new Interval
func NewInterval(min, max float32) Interval {
	return Interval{Min: min, Max: max}
}

// PositiveInterval returns [0, MaxFloat32]
func PositiveInterval() Interval {
	return Interval{Min: 0, Max: math.MaxFloat32}
}

// Contains reports whether x lies in the closed interval
func (i Interval) Contains(x float32) bool {
	return i.Min <= x && x <= i.Max
}

// IsEmpty reports whether no t can satisfy the interval
func (i Interval) IsEmpty() bool {
	return i.Max < i.Min
}

// Scale returns the interval with both bounds multiplied by s
func (i Interval) Scale(s float32) Interval {
	return Interval{Min: i.Min * s, Max: i.Max * s}
}
