// +build amd64

package paging

const (
	// pageLevels is the number of levels in the amd64 page-table tree
	// (PML4, PDPT, PD, PT).
	pageLevels = 4

	// ptePhysPageMask extracts the physical frame address (bits 12-51)
	// stored in a page table entry.
	ptePhysPageMask = uintptr(0x000ffffffffff000)

	// HigherHalfMin is the lowest virtual address considered part of the
	// higher half. Addresses below this value are rejected by Map.
	HigherHalfMin = uintptr(0xffff800000000000)
)

var (
	// pageLevelBits holds the number of virtual-address bits consumed by
	// each page level; amd64 uses 9 bits (512 entries) per level.
	pageLevelBits = [pageLevels]uint8{9, 9, 9, 9}

	// pageLevelShifts holds the bit offset of each level's index field
	// within a virtual address: PML4 at 39, PDPT at 30, PD at 21, PT at 12.
	pageLevelShifts = [pageLevels]uint8{39, 30, 21, 12}
)
