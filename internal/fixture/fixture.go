// Package fixture holds test-only support code: aligned memory
// allocation, recording/coverage-tracking CacheGeometry decorators, and
// a deterministic multi-region layout generator. Nothing in the core
// memscrub package imports this package.
package fixture

import (
	"unsafe"

	"github.com/shaia/memscrub"
)

// Mem is an allocated buffer holding a cache-line-aligned ScrubRegion
// with a guard cache line on each side: the allocation is oversized, the
// low bits of the pointer are masked off to find an aligned line
// boundary, and a line of padding is kept before and after the region so
// out-of-bounds reads are detectable. Buf is kept on the struct so the
// backing array stays reachable for as long as Region's addresses are in
// use.
type Mem struct {
	Buf    []byte
	Region memscrub.ScrubRegion
}

// AllocAligned allocates a buffer containing a cachelineBytes-aligned
// region of sizeBytes, guarded by at least one full cache line of
// padding on each side. sizeBytes must be a multiple of cachelineBytes.
//
// Rounding the buffer's start address up to a line boundary can itself
// consume up to cachelineBytes-1 bytes, so a full extra line is reserved
// on top of that to guarantee the trailing guard is never short; three
// line's worth of slack is the simplest bound that always works,
// independent of where the runtime happens to place buf.
func AllocAligned(cachelineBytes, sizeBytes uint64) *Mem {
	total := cachelineBytes*3 + sizeBytes
	buf := make([]byte, total)
	base := uintptr(unsafe.Pointer(&buf[0]))
	mask := uintptr(cachelineBytes - 1)
	aligned := (base + mask) &^ mask
	if aligned-base < uintptr(cachelineBytes) {
		aligned += uintptr(cachelineBytes)
	}
	start := uint64(aligned)
	end := start + sizeBytes - 1
	return &Mem{
		Buf: buf,
		Region: memscrub.ScrubRegion{
			Start: start,
			End:   end,
		},
	}
}
