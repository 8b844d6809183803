package firmware

import (
	"encoding/binary"
	"testing"
	"unsafe"
)

// buildDescriptor writes one EFI_MEMORY_DESCRIPTOR-shaped entry at buf,
// padded out to stride bytes so tests can simulate a firmware reporting a
// descriptor size larger than rawMemoryDescriptor's own size.
func buildDescriptor(buf []byte, stride int, typ uint32, physStart, pages uint64) {
	binary.LittleEndian.PutUint32(buf[0:4], typ)
	binary.LittleEndian.PutUint64(buf[8:16], physStart)
	binary.LittleEndian.PutUint64(buf[16:24], 0)
	binary.LittleEndian.PutUint64(buf[24:32], pages)
	binary.LittleEndian.PutUint64(buf[32:40], 0)
	_ = stride
}

func TestMemoryMapAt(t *testing.T) {
	const stride = 48 // larger than the 40-byte fixed descriptor, as real firmware often reports
	buf := make([]byte, stride*2)
	buildDescriptor(buf[0:], stride, 7, 0x100000, 16)
	buildDescriptor(buf[stride:], stride, 1, 0x200000, 32)

	mm := &MemoryMap{
		bufAddr:  uintptr(unsafe.Pointer(&buf[0])),
		descSize: uintptr(stride),
		count:    2,
	}

	if got := mm.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	d0 := mm.At(0)
	if d0.Type != 7 || d0.PhysicalStart != 0x100000 || d0.NumberOfPages != 16 {
		t.Fatalf("At(0) = %+v, unexpected", d0)
	}

	d1 := mm.At(1)
	if d1.Type != 1 || d1.PhysicalStart != 0x200000 || d1.NumberOfPages != 32 {
		t.Fatalf("At(1) = %+v, unexpected", d1)
	}
}
