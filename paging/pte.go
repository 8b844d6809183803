package paging

import (
	"efiboot/kernel/mem"
	"efiboot/kernel/mem/pmm"
)

// EntryFlag describes a flag that can be applied to a page table entry.
type EntryFlag uintptr

// FlagPresent is set when the frame referenced by an entry is valid. It is
// the only flag this package ever sets; writable, executable and
// user-accessible bits are left for the kernel to apply after handoff.
const FlagPresent EntryFlag = 1

// entry describes a single 64-bit page table entry: a physical frame
// address in its mid bits plus a present flag.
type entry uintptr

// HasFlags returns true if all the input flags are set on this entry.
func (pte entry) HasFlags(flags EntryFlag) bool {
	return (uintptr(pte) & uintptr(flags)) == uintptr(flags)
}

// SetFlags sets the input flags on this entry.
func (pte *entry) SetFlags(flags EntryFlag) {
	*pte = (entry)(uintptr(*pte) | uintptr(flags))
}

// Frame returns the physical frame this entry points to.
func (pte entry) Frame() pmm.Frame {
	return pmm.Frame((uintptr(pte) & ptePhysPageMask) >> mem.PageShift)
}

// SetFrame updates the entry to point at the given physical frame, leaving
// its flag bits untouched.
func (pte *entry) SetFrame(frame pmm.Frame) {
	*pte = (entry)((uintptr(*pte) &^ ptePhysPageMask) | frame.Address())
}
