package vein

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// DefaultMaxTries and DefaultPadding are the diffuse pipeline defaults.
const (
	DefaultMaxTries = 8
	DefaultPadding  = 2
)

const (
	axisX = 0
	axisZ = 1
)

// Diffusion replaces every cell of a square canvas with a pseudo-random nearby cell of the
// source canvas, retrying up to MaxTries times until it finds a nonzero one.
// Offsets are drawn from [-Radius/2, Radius/2). Both axes share one offset per try, which
// jitters along the diagonal; IndependentAxes hashes each axis separately.
type Diffusion struct {
	Radius          int
	MaxTries        int
	Seed            int64
	IndependentAxes bool
}

// Apply returns a new diffused canvas; src is left untouched.
func (d Diffusion) Apply(src []ARGB, size int) []ARGB {
	out := make([]ARGB, len(src))
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			out[z*size+x], _ = d.sampleCell(src, size, x, z)
		}
	}
	return out
}

// sampleCell returns the diffused value of (x, z) and how many source cells were read.
func (d Diffusion) sampleCell(src []ARGB, size, x, z int) (ARGB, int) {
	var sample ARGB
	reads := 0
	for try := 0; sample == 0 && try < d.MaxTries; try++ {
		dx, dz := d.offsets(x, try, z)
		rx := clampInt(x+dx, 0, size-1)
		rz := clampInt(z+dz, 0, size-1)
		sample = src[rz*size+rx]
		reads++
	}
	return sample, reads
}

func (d Diffusion) offsets(x, try, z int) (int, int) {
	dx := d.offset(x, try, z, axisX)
	if !d.IndependentAxes {
		return dx, dx
	}
	return dx, d.offset(x, try, z, axisZ)
}

// offset hashes (seed, x, try, z, axis).
func (d Diffusion) offset(x, try, z, axis int) int {
	var buf [40]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(d.Seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(x)))
	binary.LittleEndian.PutUint64(buf[16:], uint64(int64(try)))
	binary.LittleEndian.PutUint64(buf[24:], uint64(int64(z)))
	binary.LittleEndian.PutUint64(buf[32:], uint64(int64(axis)))

	h := xxhash.Sum64(buf[:])
	return int(h%uint64(d.Radius)) - d.Radius/2
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
