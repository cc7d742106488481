package fixture

import (
	"github.com/willf/bitset"

	"github.com/shaia/memscrub"
)

// CoverageTracker decorates a CacheGeometry, recording in a compact
// bitset which line indices relative to Base have been touched at least
// once. It is sized for property tests over large line counts, where a
// dense []bool or map would waste memory needlessly — a bitset only
// needs "touched at least once, in bounds" per line, not a count.
type CoverageTracker struct {
	memscrub.CacheGeometry
	Base Address
	seen *bitset.BitSet
}

// Address is a local alias so callers outside memscrub need not import
// it directly just to build a CoverageTracker.
type Address = memscrub.Address

// NewCoverageTracker builds a tracker over lineCount lines starting at
// base, decorating geom.
func NewCoverageTracker(geom memscrub.CacheGeometry, base Address, lineCount uint64) *CoverageTracker {
	return &CoverageTracker{
		CacheGeometry: geom,
		Base:          base,
		seen:          bitset.New(uint(lineCount)),
	}
}

func (c *CoverageTracker) Touch(addr Address) {
	w := c.CacheGeometry.CachelineWidthBits()
	idx := (addr - c.Base) >> w
	c.seen.Set(uint(idx))
	c.CacheGeometry.Touch(addr)
}

// AllSet reports whether every line in [0, lineCount) has been touched
// at least once.
func (c *CoverageTracker) AllSet(lineCount uint64) bool {
	for i := uint64(0); i < lineCount; i++ {
		if !c.seen.Test(uint(i)) {
			return false
		}
	}
	return true
}

// Count returns the number of distinct lines touched so far.
func (c *CoverageTracker) Count() uint64 {
	return uint64(c.seen.Count())
}
