// Package handoff performs the final, irreversible step of the boot: it
// populates the boot-info record the kernel expects, takes the memory-map
// snapshot ExitBootServices requires, exits boot services, and transfers
// control to the kernel entry point.
package handoff

// bootInfoMagic is the value the kernel entry point must see as its first
// argument before it is safe to dereference the second.
const bootInfoMagic = 0xFEDCBA9876543210

// noGraphicsMode is the EfiGopModes sentinel the kernel recognizes as "no
// graphics-output protocol was found".
const noGraphicsMode = 0

// BootInfo is the plain-data record handed to the kernel at entry. Field
// order and widths are part of the kernel ABI and must not be reordered
// without a matching kernel-side change.
type BootInfo struct {
	EfiMmapStart    uintptr
	EfiMmapLength   uint64
	EfiMmapDescSize uint64
	RamdiskStart    uintptr
	RamdiskLength   uint64
	EfiSystemTable  uintptr
	EfiGopModes     uintptr
}
