package firmware

import (
	"unsafe"

	"efiboot/kernel"
)

// expectedDescriptorVersion is the only EFI_MEMORY_DESCRIPTOR layout version
// this package knows how to read. A firmware reporting anything else means
// the struct offsets below no longer describe what's in the buffer, so the
// map is rejected outright rather than misread.
const expectedDescriptorVersion = 1

// errBufferTooSmall is the EFI_BUFFER_TOO_SMALL status code, the only
// failure the initial zero-length probe call is ever expected to return.
const errBufferTooSmall = Status(statusErrorBit | 5)

// memoryMapProbeSlack is added to the size GetMemoryMap reports on the probe
// call before allocating the real buffer, since taking the pool allocation
// itself can grow the map by a descriptor or two.
const memoryMapProbeSlack = 128

var ErrDescriptorVersionMismatch = &kernel.Error{Module: "firmware", Message: "EFI memory descriptor version is not supported"}

// MemoryDescriptor is a decoded EFI_MEMORY_DESCRIPTOR entry.
type MemoryDescriptor struct {
	Type          uint32
	PhysicalStart uint64
	VirtualStart  uint64
	NumberOfPages uint64
	Attribute     uint64
}

// rawMemoryDescriptor mirrors the fixed-layout prefix of EFI_MEMORY_DESCRIPTOR
// that every descriptor version shares regardless of its reported stride.
type rawMemoryDescriptor struct {
	type_         uint32
	_pad          uint32
	physicalStart uint64
	virtualStart  uint64
	numberOfPages uint64
	attribute     uint64
}

// MemoryMap is the result of a GetMemoryMap query: a sequence of
// fixed-stride descriptors plus the map key ExitBootServices requires.
// Descriptors are read at descSize-byte strides rather than
// unsafe.Sizeof(rawMemoryDescriptor{}), since the firmware is free to report
// a larger stride for forward-compatible fields this package doesn't know
// about.
type MemoryMap struct {
	bufAddr  uintptr
	descSize uintptr
	count    int
	MapKey   uintptr
}

// Len returns the number of descriptors in the map.
func (m *MemoryMap) Len() int {
	return m.count
}

// Start returns the physical address of the map's backing buffer.
func (m *MemoryMap) Start() uintptr {
	return m.bufAddr
}

// DescriptorSize returns the byte stride between successive descriptors.
func (m *MemoryMap) DescriptorSize() uintptr {
	return m.descSize
}

// Length returns the total size in bytes of the map's descriptors
// (DescriptorSize times Len), which can be less than the size of the pool
// buffer allocated to hold them.
func (m *MemoryMap) Length() uintptr {
	return m.descSize * uintptr(m.count)
}

// At returns the i'th descriptor.
func (m *MemoryMap) At(i int) MemoryDescriptor {
	raw := (*rawMemoryDescriptor)(unsafe.Pointer(m.bufAddr + uintptr(i)*m.descSize))
	return MemoryDescriptor{
		Type:          raw.type_,
		PhysicalStart: raw.physicalStart,
		VirtualStart:  raw.virtualStart,
		NumberOfPages: raw.numberOfPages,
		Attribute:     raw.attribute,
	}
}

// GetMemoryMap queries the firmware's current memory map using the
// mandatory two-phase pattern: a zero-length probe to discover the required
// buffer size, followed by a real query into a buffer sized generously
// enough to absorb the allocation the probe's own pool request might cause.
// No allocation may occur between a successful real query and the matching
// ExitBootServices call, since any allocation can change the map key.
func GetMemoryMap() (*MemoryMap, error) {
	var (
		size         uintptr
		mapKey       uintptr
		descSize     uintptr
		descVersion  uint32
	)

	probeStatus := Status(call(bs().getMemoryMap,
		uintptr(unsafe.Pointer(&size)),
		0,
		uintptr(unsafe.Pointer(&mapKey)),
		uintptr(unsafe.Pointer(&descSize)),
		uintptr(unsafe.Pointer(&descVersion)),
	))
	if probeStatus != errBufferTooSmall {
		if err := probeStatus.Err("get_memory_map(probe)"); err != nil {
			return nil, err
		}
	}

	bufSize := size + memoryMapProbeSlack
	bufAddr, err := AllocatePool(int(bufSize))
	if err != nil {
		return nil, err
	}

	status := Status(call(bs().getMemoryMap,
		uintptr(unsafe.Pointer(&bufSize)),
		bufAddr,
		uintptr(unsafe.Pointer(&mapKey)),
		uintptr(unsafe.Pointer(&descSize)),
		uintptr(unsafe.Pointer(&descVersion)),
	))
	if err := status.Err("get_memory_map"); err != nil {
		return nil, err
	}
	if descVersion != expectedDescriptorVersion {
		return nil, ErrDescriptorVersionMismatch
	}

	return &MemoryMap{
		bufAddr:  bufAddr,
		descSize: descSize,
		count:    int(bufSize / descSize),
		MapKey:   mapKey,
	}, nil
}
