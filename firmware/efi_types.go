// Package firmware wraps the subset of the UEFI boot-services interface
// this bootloader needs: pool and page allocation, file I/O on the volume
// it was loaded from, the memory map query, ExitBootServices, and the
// graphics-output protocol lookup. Everything else about the firmware
// environment is out of scope and is never modeled here.
package firmware

import "github.com/google/uuid"

// Status is a raw EFI_STATUS value. The high bit set indicates failure;
// the remaining bits are an implementation-defined error code.
type Status uint64

const statusErrorBit = Status(1) << 63

// Err returns a non-nil error if s indicates a firmware failure.
func (s Status) Err(op string) error {
	if s&statusErrorBit == 0 {
		return nil
	}
	return &statusError{op: op, code: s}
}

type statusError struct {
	op   string
	code Status
}

func (e *statusError) Error() string {
	return "firmware: " + e.op + " failed with status 0x" + hex16(uint64(e.code))
}

func hex16(v uint64) string {
	const digits = "0123456789abcdef"
	buf := [16]byte{}
	for i := 15; i >= 0; i-- {
		buf[i] = digits[v&0xf]
		v >>= 4
	}
	return string(buf[:])
}

// Handle is an opaque EFI_HANDLE.
type Handle uintptr

// guidBytes renders id in the little-endian-mixed wire layout UEFI uses for
// EFI_GUID, which differs from the big-endian RFC 4122 layout uuid.UUID
// stores its fields in: the first three fields are byte-swapped.
func guidBytes(id uuid.UUID) [16]byte {
	var g [16]byte
	g[0], g[1], g[2], g[3] = id[3], id[2], id[1], id[0]
	g[4], g[5] = id[5], id[4]
	g[6], g[7] = id[7], id[6]
	copy(g[8:], id[8:])
	return g
}

// Protocol GUIDs for the services this package consumes, expressed as
// uuid.UUID values and converted to wire form on demand via guidBytes.
var (
	loadedImageProtocolGUID      = uuid.MustParse("5b1b31a1-9562-11d2-8e3f-00a0c969723b")
	simpleFileSystemProtocolGUID = uuid.MustParse("964e5b22-6459-11d2-8e39-00a0c969723b")
	fileInfoGUID                 = uuid.MustParse("09576e92-6d3f-11d2-8e39-00a0c969723b")
	graphicsOutputProtocolGUID   = uuid.MustParse("9042a9de-23dc-4a38-96fb-7aded080516a")
)
