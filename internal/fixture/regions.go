package fixture

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"

	"github.com/shaia/memscrub"
)

// DeterministicRegions generates a reproducible set of valid,
// cache-line-aligned, non-overlapping scrub regions from an integer
// seed, for property tests that need many distinct layouts without
// depending on a global PRNG: hashing the seed turns it into a
// reproducible number used to pick each region's span.
//
// Each region is separated from the next by one guard cache line, and
// span lengths fall in [minLines, maxLines).
func DeterministicRegions(seed uint64, count int, cachelineBytes, minLines, maxLines uint64) []memscrub.ScrubRegion {
	regions := make([]memscrub.ScrubRegion, 0, count)
	cursor := cachelineBytes
	buf := make([]byte, 8)
	for i := 0; i < count; i++ {
		binary.LittleEndian.PutUint64(buf, seed+uint64(i))
		h := murmur3.Sum64(buf)
		span := minLines
		if maxLines > minLines {
			span += h % (maxLines - minLines)
		}
		if span == 0 {
			span = 1
		}
		start := cursor
		end := start + span*cachelineBytes - 1
		regions = append(regions, memscrub.ScrubRegion{Start: start, End: end})
		cursor = end + 1 + cachelineBytes
	}
	return regions
}
