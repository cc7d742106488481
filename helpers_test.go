package memscrub

import (
	"testing"
	"unsafe"
)

// addrOf returns buf's first-byte address as an Address, for tests that
// need a real, dereferenceable address to pass through DefaultGeometry.
func addrOf(t *testing.T, buf []byte) Address {
	t.Helper()
	if len(buf) == 0 {
		t.Fatal("addrOf: empty buffer")
	}
	return Address(uintptr(unsafe.Pointer(&buf[0])))
}
