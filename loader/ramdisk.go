package loader

import "efiboot/firmware"

// Ramdisk describes the opaque blob loaded alongside the kernel. The
// bootloader never interprets its contents; it only reserves the physical
// range and hands the pair through to the kernel as-is.
type Ramdisk struct {
	Start  uintptr
	Length int64
}

// LoadRamdisk reads f's entire contents into a contiguous run of fresh
// physical pages. The ramdisk is not mapped into the kernel's virtual
// address space by this loader; the kernel resolves it itself through the
// firmware identity map using the physical range reported here.
func LoadRamdisk(f *firmware.File) (Ramdisk, error) {
	addr, size, err := readWholeFile(f)
	if err != nil {
		return Ramdisk{}, err
	}
	return Ramdisk{Start: addr, Length: size}, nil
}
