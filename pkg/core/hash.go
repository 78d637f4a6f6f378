package core

// Hash32 mixes 32-bit input into a well-distributed 32-bit output.
func Hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// Hash2 returns a stable hash for 2D coordinates and a seed. The result does
// not depend on call order, so it can back stateless random patterns.
func Hash2(seed uint32, x, y uint32) uint32 {
	h := seed
	h ^= x * 0x9e3779b1
	h ^= y * 0x85ebca6b
	return Hash32(h)
}

// Unit maps a hash into [0, 1).
func Unit(h uint32) float64 {
	return float64(h) / float64(1<<32)
}
