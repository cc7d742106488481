// Package arm64 provides the AArch64 cache-line touch primitive.
package arm64

import (
	"sync/atomic"
	"unsafe"
)

// barrierSink exists only so Barrier has somewhere to perform an atomic
// round-trip; its value is never read by callers.
var barrierSink uint32

// Barrier approximates a data-synchronization-barrier-then-read pattern:
// an atomic add forces a memory ordering point using Go's atomic
// primitives. A genuine DSB instruction requires assembly, which this
// portable build does not carry (see DESIGN.md).
func Barrier() {
	atomic.AddUint32(&barrierSink, 1)
}

// Touch issues a barrier, then reads every 8-byte word of the nbytes
// starting at ptr. ARM64's weaker memory model makes the barrier step
// necessary for the read to reliably reach the line's current cached
// state, unlike amd64's TSO.
func Touch(ptr unsafe.Pointer, nbytes int) {
	Barrier()
	words := nbytes / 8
	for i := 0; i < words; i++ {
		w := (*uint64)(unsafe.Pointer(uintptr(ptr) + uintptr(i*8)))
		atomic.LoadUint64(w)
	}
}
