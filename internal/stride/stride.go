// Package stride implements the cache-index-major address generator used
// by a Scrubber: RegionIterator walks one region, MultiRegionIterator
// concatenates several. Both are pure numeric value types with no
// knowledge of CacheGeometry or ScrubRegion, so the core package can hand
// them plain integers and call Touch itself.
package stride

// RegionIterator produces the byte addresses of a single region's cache
// lines in cache-index-major order: it visits index 0 across every
// "slot" that maps to it before moving to index 1, and so on, rather
// than walking the region linearly. Within one index, offsets increase
// by cacheLines each step, so consecutive addresses returned for the
// same index always land cacheLines apart.
//
// This is the non-start_index-adding formulation: the emitted address is
// base + (index+offset)*cachelineBytes, with no cache_index_of(base)
// folded into offset.
type RegionIterator struct {
	base           uint64
	cachelineBytes uint64
	sizeInLines    uint64
	cacheLines     uint64
	index          uint64
	offset         uint64
}

// NewRegionIterator builds an iterator over a region of sizeInLines
// cache lines starting at base, for a cache with cacheLines sets of
// cachelineBytes each.
func NewRegionIterator(base, cachelineBytes, sizeInLines, cacheLines uint64) *RegionIterator {
	return &RegionIterator{
		base:           base,
		cachelineBytes: cachelineBytes,
		sizeInLines:    sizeInLines,
		cacheLines:     cacheLines,
	}
}

// Next returns the next address in the region, or (0, false) once every
// cache index has been exhausted.
func (it *RegionIterator) Next() (uint64, bool) {
	for it.index < it.cacheLines {
		if it.index+it.offset < it.sizeInLines {
			addr := it.base + (it.index+it.offset)*it.cachelineBytes
			it.offset += it.cacheLines
			return addr, true
		}
		it.index++
		it.offset = 0
	}
	return 0, false
}

// RegionSpec is the pure-numeric description of one region that
// MultiRegionIterator needs: its base address and its length in cache
// lines.
type RegionSpec struct {
	Base        uint64
	SizeInLines uint64
}

// MultiRegionIterator concatenates RegionIterators over a list of
// regions, in the order supplied, moving to the next region only once
// the current one is exhausted.
type MultiRegionIterator struct {
	regions        []RegionSpec
	cachelineBytes uint64
	cacheLines     uint64
	pos            int
	cur            *RegionIterator
}

// NewMultiRegionIterator builds an iterator over regions, in order.
func NewMultiRegionIterator(regions []RegionSpec, cachelineBytes, cacheLines uint64) *MultiRegionIterator {
	return &MultiRegionIterator{
		regions:        regions,
		cachelineBytes: cachelineBytes,
		cacheLines:     cacheLines,
	}
}

// Next returns the next address across all regions, or (0, false) once
// every region is exhausted.
func (m *MultiRegionIterator) Next() (uint64, bool) {
	for m.pos < len(m.regions) {
		if m.cur == nil {
			r := m.regions[m.pos]
			m.cur = NewRegionIterator(r.Base, m.cachelineBytes, r.SizeInLines, m.cacheLines)
		}
		if addr, ok := m.cur.Next(); ok {
			return addr, true
		}
		m.cur = nil
		m.pos++
	}
	return 0, false
}
