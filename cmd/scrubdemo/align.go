package main

import "unsafe"

func addrOf(buf []byte) uint64 {
	return uint64(uintptr(unsafe.Pointer(&buf[0])))
}

func alignUp(addr, align uint64) uint64 {
	mask := align - 1
	return (addr + mask) &^ mask
}
