package memscrub

import "github.com/shaia/memscrub/internal/stride"

// Scrubber walks a fixed set of regions under a fixed CacheGeometry,
// reading as many cache lines per Scrub call as the caller asks for, in
// index-major order. A
// Scrubber is not safe for concurrent use by multiple goroutines against
// the same instance; separate Scrubbers over disjoint regions may run in
// parallel freely, since each owns its own iterator state.
type Scrubber struct {
	geom    CacheGeometry
	regions []ScrubRegion
	cur     *stride.MultiRegionIterator
}

// New validates regions against geom and returns a Scrubber ready to
// scrub them. Validation happens once, up front, in the order supplied:
// an empty region list is rejected before any region is inspected, then
// each region is checked in turn and the first invariant violation is
// returned.
func New(geom CacheGeometry, regions []ScrubRegion) (*Scrubber, error) {
	if len(regions) == 0 {
		return nil, ErrNoScrubAreas
	}
	for _, r := range regions {
		if err := r.validate(geom); err != nil {
			return nil, err
		}
	}
	cp := make([]ScrubRegion, len(regions))
	copy(cp, regions)
	return &Scrubber{geom: geom, regions: cp}, nil
}

// Scrub touches nBytes worth of cache lines, continuing from wherever
// the previous call to Scrub left off. nBytes must be a multiple of the
// cache line size. Once every line across every region has been visited,
// the next call resumes from the very first region, index 0, offset 0 —
// there is no end-of-memory error, only wraparound.
func (s *Scrubber) Scrub(nBytes uint64) error {
	cachelineBytes := CachelineBytes(s.geom)
	if nBytes%cachelineBytes != 0 {
		return ErrUnalignedSize
	}
	nLines := nBytes / cachelineBytes
	for i := uint64(0); i < nLines; i++ {
		if s.cur == nil {
			s.cur = s.newIterator()
		}
		addr, ok := s.cur.Next()
		if !ok {
			s.cur = nil
			i--
			continue
		}
		s.geom.Touch(addr)
	}
	return nil
}

func (s *Scrubber) newIterator() *stride.MultiRegionIterator {
	cachelineBytes := CachelineBytes(s.geom)
	cacheLines := CacheLines(s.geom)
	specs := make([]stride.RegionSpec, len(s.regions))
	for i, r := range s.regions {
		specs[i] = stride.RegionSpec{Base: r.Start, SizeInLines: SizeInLines(s.geom, r)}
	}
	return stride.NewMultiRegionIterator(specs, cachelineBytes, cacheLines)
}
