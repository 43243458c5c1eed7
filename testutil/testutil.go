package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/voxgo/seg"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// Boxes generates n random boxes of the given spatial dimensionality
// inside the given axis extents. len(sizes) must equal dims. The boxes
// may overlap, so an encoded volume is not guaranteed to keep every
// label.
func (r *RNG) Boxes(n, dims int, sizes ...int) []seg.Box {
	checkDims(dims, sizes)

	r.mu.Lock()
	defer r.mu.Unlock()

	boxes := make([]seg.Box, n)
	for i := range boxes {
		var lo, hi [3]int
		for a := 0; a < dims; a++ {
			lo[a] = r.rand.Intn(sizes[a])
			hi[a] = lo[a] + r.rand.Intn(sizes[a]-lo[a])
		}

		if dims == 2 {
			boxes[i] = seg.Box2D(lo[0], lo[1], hi[0], hi[1])
		} else {
			boxes[i] = seg.Box3D(lo[0], lo[1], hi[0], hi[1], lo[2], hi[2])
		}
	}

	return boxes
}

// DisjointBoxes generates n non-overlapping boxes by cutting axis 0 into
// n strips of equal height (sizes[0] must be at least n). Every box keeps
// all of its voxels under last-write-wins painting, so the encoded volume
// decodes without empty instances.
func (r *RNG) DisjointBoxes(n, dims int, sizes ...int) []seg.Box {
	checkDims(dims, sizes)
	if sizes[0] < n {
		panic(fmt.Sprintf("testutil: axis 0 extent %d cannot hold %d strips", sizes[0], n))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	strip := sizes[0] / n

	boxes := make([]seg.Box, n)
	for i := range boxes {
		var lo, hi [3]int

		lo[0] = i * strip
		hi[0] = lo[0] + r.rand.Intn(strip)

		for a := 1; a < dims; a++ {
			lo[a] = r.rand.Intn(sizes[a])
			hi[a] = lo[a] + r.rand.Intn(sizes[a]-lo[a])
		}

		if dims == 2 {
			boxes[i] = seg.Box2D(lo[0], lo[1], hi[0], hi[1])
		} else {
			boxes[i] = seg.Box3D(lo[0], lo[1], hi[0], hi[1], lo[2], hi[2])
		}
	}

	return boxes
}

func checkDims(dims int, sizes []int) {
	if dims != 2 && dims != 3 {
		panic(fmt.Sprintf("testutil: dims must be 2 or 3, got %d", dims))
	}
	if len(sizes) != dims {
		panic(fmt.Sprintf("testutil: got %d sizes for %d dims", len(sizes), dims))
	}
	for _, s := range sizes {
		if s <= 0 {
			panic(fmt.Sprintf("testutil: non-positive extent %d", s))
		}
	}
}
