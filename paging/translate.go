package paging

import (
	"efiboot/kernel"
	"efiboot/kernel/mem"
)

// ErrNotMapped is returned by Translate when virtAddr has no mapping.
var ErrNotMapped = &kernel.Error{Module: "paging", Message: "virtual address is not mapped"}

// Translate walks the tree rooted at rootPhysAddr and returns the physical
// address virtAddr currently resolves to, along with whether every ancestor
// entry down to the leaf has the present flag set. It performs no
// allocation and never panics; it exists so tests (and diagnostics) can
// verify the effect of a Map call without reaching into package internals.
func Translate(rootPhysAddr, virtAddr uintptr) (uintptr, *kernel.Error) {
	var (
		leaf    *entry
		present = true
	)

	walk(rootPhysAddr, virtAddr, func(level uint8, _ uintptr, pte *entry) bool {
		if !pte.HasFlags(FlagPresent) {
			present = false
			return false
		}
		if level == pageLevels-1 {
			leaf = pte
		}
		return true
	})

	if !present || leaf == nil {
		return 0, ErrNotMapped
	}

	offset := virtAddr & ((1 << pageLevelShifts[pageLevels-1]) - 1)
	return leaf.Frame().Address() + offset, nil
}

// PageOffset returns the offset within the 4 KiB page specified by virtAddr.
func PageOffset(virtAddr uintptr) uintptr {
	return virtAddr & uintptr(mem.PageSize-1)
}
