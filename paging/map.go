package paging

import (
	"efiboot/kernel"
	"efiboot/kernel/mem"
	"efiboot/kernel/mem/pmm"
)

var (
	// ErrUnalignedAddress is returned when either Map argument is not page-aligned.
	ErrUnalignedAddress = &kernel.Error{Module: "paging", Message: "physical or virtual address is not page-aligned"}
	// ErrLowerHalfTarget is returned when virtAddr falls below the higher half.
	ErrLowerHalfTarget = &kernel.Error{Module: "paging", Message: "virtual address is not in the higher half"}
	// ErrDoubleMap is returned when the leaf entry for virtAddr is already present.
	ErrDoubleMap = &kernel.Error{Module: "paging", Message: "virtual address is already mapped"}
)

// FrameAllocatorFn allocates a single physical frame; the builder calls it
// whenever a mapping requires an interior table that does not exist yet.
type FrameAllocatorFn func() (pmm.Frame, *kernel.Error)

// Builder augments the page-table tree rooted at an already-active
// translation root (read once via cpu.ActivePDT) with higher-half mappings.
// It never touches the lower half of the root table, so the firmware's
// identity map continues to resolve for the bootloader's own code and data
// until ExitBootServices is called.
type Builder struct {
	rootPhysAddr uintptr
	allocFrame   FrameAllocatorFn
}

// NewBuilder returns a Builder rooted at rootPhysAddr, using allocFrame to
// obtain physical frames for interior tables it needs to create.
func NewBuilder(rootPhysAddr uintptr, allocFrame FrameAllocatorFn) *Builder {
	return &Builder{rootPhysAddr: rootPhysAddr, allocFrame: allocFrame}
}

// PrepareRoot zeroes the upper half of the root table (entries 256..511,
// i.e. the higher-half half of the PML4) so every subsequent Map call starts
// from a clean slate. The lower half, and therefore the firmware's identity
// map, is left untouched.
func (b *Builder) PrepareRoot() {
	const halfEntries = 256
	for i := halfEntries; i < 512; i++ {
		entryAddr := b.rootPhysAddr + uintptr(i<<3)
		*(*entry)(entryPtrFn(entryAddr)) = 0
	}
}

// Map installs a single 4 KiB mapping from physPage to virtAddr. Both must
// be page-aligned and virtAddr must fall in the higher half; either
// violation, an allocation failure while creating an interior table, or an
// attempt to overwrite an already-present leaf entry is reported as an
// error. Every caller in this codebase treats a non-nil return as fatal and
// hands it straight to kfmt.Panic, but Map itself stays a pure function of
// its inputs so it can be exercised directly by tests.
func (b *Builder) Map(physPage pmm.Frame, virtAddr uintptr) *kernel.Error {
	if physPage.Address()&uintptr(mem.PageSize-1) != 0 || virtAddr&uintptr(mem.PageSize-1) != 0 {
		return ErrUnalignedAddress
	}
	if virtAddr < HigherHalfMin {
		return ErrLowerHalfTarget
	}

	var mapErr *kernel.Error
	walk(b.rootPhysAddr, virtAddr, func(level uint8, _ uintptr, pte *entry) bool {
		if level == pageLevels-1 {
			if pte.HasFlags(FlagPresent) {
				mapErr = ErrDoubleMap
				return false
			}
			*pte = 0
			pte.SetFrame(physPage)
			pte.SetFlags(FlagPresent)
			return true
		}

		if !pte.HasFlags(FlagPresent) {
			frame, err := b.allocFrame()
			if err != nil {
				mapErr = err
				return false
			}

			kernel.Memset(frame.Address(), 0, uintptr(mem.PageSize))

			*pte = 0
			pte.SetFrame(frame)
			pte.SetFlags(FlagPresent)
		}

		return true
	})

	return mapErr
}
