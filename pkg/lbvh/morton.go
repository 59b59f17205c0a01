package lbvh

import "github.com/patricklbell/raytracer/pkg/core"

// MortonBits is the number of bits quantized per axis
const MortonBits = 21

const mortonMax = 1<<MortonBits - 1

// quantize maps x in [0,1] onto [0, 2^21-1]. Out of range and NaN inputs clamp.
func quantize(x float32) uint64 {
	if !(x > 0) {
		return 0
	}
	q := float64(x) * (1 << MortonBits)
	if q >= mortonMax {
		return mortonMax
	}
	return uint64(q)
}

// spread inserts two zero bits between each of the low 21 bits of x
func spread(x uint64) uint64 {
	x &= mortonMax
	x = (x | x<<32) & 0x1f00000000ffff
	x = (x | x<<16) & 0x1f0000ff0000ff
	x = (x | x<<8) & 0x100f00f00f00f00f
	x = (x | x<<4) & 0x10c30c30c30c30c3
	x = (x | x<<2) & 0x1249249249249249
	return x
}

// MortonCode interleaves the quantized coordinates of c, normalized against
// the box [min, min+extents], as x0 y0 z0 x1 y1 z1 ... from the low bit up.
// An axis with zero extent contributes zero bits.
func MortonCode(c, min, extents core.Vec3) uint64 {
	var code uint64
	for axis := 0; axis < 3; axis++ {
		var norm float32
		if extents[axis] > 0 {
			norm = (c[axis] - min[axis]) / extents[axis]
		}
		code |= spread(quantize(norm)) << axis
	}
	return code
}
