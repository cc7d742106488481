// Package memscrub implements a cache-aware memory scrubber: a routine
// that walks one or more memory regions reading every cache line, in an
// order that reads every line mapping to one cache index set before
// moving on to the next set, rather than walking linearly and evicting
// the whole cache.
package memscrub

import (
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/shaia/memscrub/internal/arch"
)

// Address is a raw byte address. It crosses in and out of the package as
// a plain integer for arithmetic; CacheGeometry implementations are
// responsible for interpreting it as a real pointer inside Touch.
type Address = uint64

// CacheGeometry describes the cache a Scrubber is walking: how wide a
// cache line is, how many index sets the cache has, and how to read one
// line's worth of bytes starting at an address.
type CacheGeometry interface {
	// CachelineWidthBits is log2 of the cache line size in bytes.
	CachelineWidthBits() uint
	// CacheIndexBits is log2 of the number of cache index sets.
	CacheIndexBits() uint
	// Touch reads the cache line containing addr, forcing any ECC check
	// or ordinary read side effect the platform performs on access. It
	// never writes.
	Touch(addr Address)
}

// CachelineBytes returns the cache line size in bytes for g.
func CachelineBytes(g CacheGeometry) uint64 {
	return uint64(1) << g.CachelineWidthBits()
}

// CacheLines returns the number of cache index sets for g.
func CacheLines(g CacheGeometry) uint64 {
	return uint64(1) << g.CacheIndexBits()
}

// CacheIndexOf returns which cache index set addr falls into under g.
func CacheIndexOf(g CacheGeometry, addr Address) uint64 {
	return (addr >> g.CachelineWidthBits()) & (CacheLines(g) - 1)
}

// DefaultGeometry is the reference CacheGeometry: Touch reads every
// whole 8-byte word of the line through the platform accessor in
// internal/arch. With a cache line shorter than 8 bytes, Touch reads
// nothing.
type DefaultGeometry struct {
	widthBits uint
	indexBits uint
	accessor  arch.Accessor
}

// NewDefaultGeometry builds a DefaultGeometry for a cache with the given
// line size in bytes and number of index bits. cachelineBytes must be a
// power of two.
func NewDefaultGeometry(cachelineBytes uint64, cacheIndexBits uint) (*DefaultGeometry, error) {
	if cachelineBytes == 0 || cachelineBytes&(cachelineBytes-1) != 0 {
		return nil, fmt.Errorf("memscrub: cacheline size must be a power of two, got %d", cachelineBytes)
	}
	return &DefaultGeometry{
		widthBits: uint(bits.TrailingZeros64(cachelineBytes)),
		indexBits: cacheIndexBits,
		accessor:  arch.Get(),
	}, nil
}

func (g *DefaultGeometry) CachelineWidthBits() uint { return g.widthBits }
func (g *DefaultGeometry) CacheIndexBits() uint     { return g.indexBits }

func (g *DefaultGeometry) Touch(addr Address) {
	g.accessor.Touch(unsafe.Pointer(uintptr(addr)), 1<<g.widthBits)
}
