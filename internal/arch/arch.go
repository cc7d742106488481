// Package arch selects the cache-line touch primitive for the running
// GOARCH. Get() resolves the Accessor directly from runtime.GOARCH
// rather than caching it at init time, since Touch has no feature gating
// to detect — only the barrier step varies by architecture.
package arch

import (
	"runtime"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"

	"github.com/shaia/memscrub/internal/arch/amd64"
	"github.com/shaia/memscrub/internal/arch/arm64"
)

// Accessor reads a cache line starting at ptr, forcing whatever ECC or
// ordering guarantees the platform provides for a load. Every
// implementation reads nbytes/8 whole 8-byte words; trailing bytes past
// the last whole word, or all of a line shorter than 8 bytes, are not
// read.
type Accessor interface {
	Touch(ptr unsafe.Pointer, nbytes int)
}

type genericAccessor struct{}

func (genericAccessor) Touch(ptr unsafe.Pointer, nbytes int) {
	words := nbytes / 8
	for i := 0; i < words; i++ {
		w := (*uint64)(unsafe.Pointer(uintptr(ptr) + uintptr(i*8)))
		atomic.LoadUint64(w)
	}
}

type amd64Accessor struct{}

func (amd64Accessor) Touch(ptr unsafe.Pointer, nbytes int) { amd64.Touch(ptr, nbytes) }

type arm64Accessor struct{}

func (arm64Accessor) Touch(ptr unsafe.Pointer, nbytes int) { arm64.Touch(ptr, nbytes) }

// Get returns the Accessor appropriate for runtime.GOARCH, falling back
// to a portable word-at-a-time reader on any architecture other than
// amd64 and arm64.
func Get() Accessor {
	switch runtime.GOARCH {
	case "amd64":
		return amd64Accessor{}
	case "arm64":
		return arm64Accessor{}
	default:
		return genericAccessor{}
	}
}

// Capabilities reports architecture feature flags relevant to a
// scrubber's demo/diagnostic output. It carries no bearing on which
// Accessor Get returns, since Touch needs no SIMD path.
func Capabilities() map[string]bool {
	switch runtime.GOARCH {
	case "amd64":
		return map[string]bool{
			"avx2":  cpu.X86.HasAVX2,
			"sse42": cpu.X86.HasSSE42,
		}
	case "arm64":
		return map[string]bool{
			"asimd": cpu.ARM64.HasASIMD,
			"aes":   cpu.ARM64.HasAES,
		}
	default:
		return nil
	}
}
