// Command scrubdemo runs a cache-aware memory scrubber over a freshly
// allocated buffer and reports progress: print capability info, then run
// a few illustrative operations.
package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/shaia/memscrub"
	"github.com/shaia/memscrub/internal/arch"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	cachelineBytes := flag.Uint64("cacheline-bytes", 64, "cache line size in bytes")
	cacheIndexBits := flag.Uint("cache-index-bits", 10, "log2 of the number of cache index sets")
	regionBytes := flag.Uint64("region-bytes", 1<<20, "size of the demo region in bytes")
	chunkBytes := flag.Uint64("chunk-bytes", 1<<16, "bytes scrubbed per AutoScrubDriver iteration")
	flag.Parse()

	log.Printf("scrubdemo %s (%s)", version, commit)
	if caps := arch.Capabilities(); caps != nil {
		log.Printf("cpu capabilities: %+v", caps)
	}

	geom, err := memscrub.NewDefaultGeometry(*cachelineBytes, *cacheIndexBits)
	if err != nil {
		log.Fatalf("geometry: %v", err)
	}

	buf := make([]byte, *regionBytes+*cachelineBytes)
	start := alignUp(addrOf(buf), *cachelineBytes)
	end := start + *regionBytes - 1
	region := memscrub.ScrubRegion{Start: start, End: end}

	s, err := memscrub.New(geom, []memscrub.ScrubRegion{region})
	if err != nil {
		log.Fatalf("new scrubber: %v", err)
	}

	driver := memscrub.NewAutoScrubDriver(s)
	policy := &fixedChunkPolicy{chunk: *chunkBytes, remaining: 4}
	if err := driver.Run(policy); err != nil {
		log.Fatalf("scrub: %v", err)
	}
	// region.Start/End are buf's address turned into plain integers, not
	// a Go pointer, so nothing above keeps buf itself reachable; without
	// this the GC is free to reclaim it out from under the scrub above.
	runtime.KeepAlive(buf)
	log.Printf("scrubbed %d chunks of %d bytes over a %d byte region", 4, *chunkBytes, *regionBytes)
}

// fixedChunkPolicy drives a fixed number of fixed-size scrub calls, then
// stops.
type fixedChunkPolicy struct {
	chunk     uint64
	remaining int
}

func (p *fixedChunkPolicy) NextChunk() uint64 {
	if p.remaining <= 0 {
		return 0
	}
	p.remaining--
	return p.chunk
}
