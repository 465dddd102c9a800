package schedule

// Seeded, platform-independent randomness. Every schedule and paper pick in
// the system derives from a seed string, so two clients that agree on the
// calendar date agree on the outcome without any server coordination.

const (
	fnvOffset32 = 2166136261
	fnvPrime32  = 16777619

	mulberryStep = 0x6D2B79F5
)

// fnv1a32 hashes a seed string with 32-bit FNV-1a.
func fnv1a32(s string) uint32 {
	h := uint32(fnvOffset32)
	for i := 0; i < len(s); i++ {
		h = (h ^ uint32(s[i])) * fnvPrime32
	}
	return h
}

// Rand is a mulberry32 counter generator. Not cryptographic; the point is
// that the same seed replays the same stream on every platform.
type Rand struct {
	state uint32
}

// NewRand seeds a generator from a seed string.
func NewRand(seed string) *Rand {
	return &Rand{state: fnv1a32(seed)}
}

// Float64 returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	r.state += mulberryStep
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Intn returns a value in [0, n) from the next draw.
func (r *Rand) Intn(n int) int {
	return int(r.Float64() * float64(n))
}

// Shuffle returns a Fisher-Yates permutation of indices [0, n) drawn from a
// fresh stream for seed. Callers reorder their own slices with the result.
func Shuffle(n int, seed string) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	r := NewRand(seed)
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}

// PickIndex selects one index in [0, count) using a single draw from a
// fresh stream for seed.
func PickIndex(seed string, count int) int {
	if count <= 0 {
		return 0
	}
	return NewRand(seed).Intn(count)
}
