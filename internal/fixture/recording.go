package fixture

import "github.com/shaia/memscrub"

// NullGeometry is a CacheGeometry for pure algorithmic property tests:
// Touch only records the address, it never dereferences it, so
// DeterministicRegions-based layouts need not be backed by real
// allocated memory.
type NullGeometry struct {
	WidthBits uint
	IndexBits uint
	Touches   []memscrub.Address
}

// NewNullGeometry builds a NullGeometry for the given cache line size
// and index bit count. cachelineBytes must be a power of two.
func NewNullGeometry(cachelineBytes uint64, cacheIndexBits uint) *NullGeometry {
	w := uint(0)
	for (uint64(1) << w) < cachelineBytes {
		w++
	}
	return &NullGeometry{WidthBits: w, IndexBits: cacheIndexBits}
}

func (g *NullGeometry) CachelineWidthBits() uint { return g.WidthBits }
func (g *NullGeometry) CacheIndexBits() uint     { return g.IndexBits }
func (g *NullGeometry) Touch(addr memscrub.Address) {
	g.Touches = append(g.Touches, addr)
}

// RecordingGeometry decorates a real CacheGeometry, additionally
// recording the exact sequence of touched addresses, so a test can
// assert on order against an independently computed expectation rather
// than trusting the iterator under test to check itself.
type RecordingGeometry struct {
	memscrub.CacheGeometry
	Touches []memscrub.Address
}

// NewRecordingGeometry wraps g, recording every address it is asked to
// touch in addition to forwarding the real Touch call.
func NewRecordingGeometry(g memscrub.CacheGeometry) *RecordingGeometry {
	return &RecordingGeometry{CacheGeometry: g}
}

func (g *RecordingGeometry) Touch(addr memscrub.Address) {
	g.Touches = append(g.Touches, addr)
	g.CacheGeometry.Touch(addr)
}
