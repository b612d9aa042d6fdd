package chunk

// Hash multipliers for chunk coordinates. Large, odd and distinct so that
// the two axes do not cancel each other out.
const (
	hashPrimeX = 73856093
	hashPrimeY = 19349663
)

// DeriveSeed returns the per-chunk seed for coordinate c in a world seeded
// with worldSeed. It depends on nothing else.
func DeriveSeed(worldSeed int64, c Coord) int64 {
	return hashCoords(c.X, c.Y) ^ worldSeed
}

func hashCoords(x, y int) int64 {
	h := (int32(x) * hashPrimeX) ^ (int32(y) * hashPrimeY)
	return int64(h & 0x7fffffff)
}

// mix64 is the splitmix64 finalizer.
func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// fraction maps an integer key onto [0,1). Same key, same value.
func fraction(key int64) float64 {
	return float64(mix64(uint64(key))>>11) / (1 << 53)
}

// keyed draws reproducible values from a chunk seed. Every draw is
// addressed by an explicit key offset instead of advancing hidden state,
// so adding a draw never shifts the others.
type keyed struct {
	seed int64
}

func (k keyed) float(key int64) float64 {
	return fraction(k.seed + key)
}

// intn returns a value in [0,n). n must be positive.
func (k keyed) intn(key int64, n int) int {
	v := int(k.float(key) * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// chance reports true with probability p.
func (k keyed) chance(key int64, p float64) bool {
	return k.float(key) < p
}
