package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// All seeded call sites derive their PCG state here so that a seed in config or
// a test reproduces the same deals and decisions.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Fresh returns an unseeded generator for production sessions.
func Fresh() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewOrFresh returns New(seed) for a non-zero seed and Fresh otherwise.
func NewOrFresh(seed int64) *rand.Rand {
	if seed == 0 {
		return Fresh()
	}
	return New(seed)
}

// Derive returns the seed of the n-th independent stream under base. Streams with
// different n do not overlap in practice, which lets concurrent simulations stay
// reproducible regardless of scheduling.
func Derive(base int64, n int) int64 {
	return int64(mix(uint64(base) + uint64(n+1)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
