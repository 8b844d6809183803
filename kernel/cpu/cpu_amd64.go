// Package cpu exposes the handful of amd64 instructions the loader needs
// directly: reading the active page-table root and halting the processor.
// Both are declared here without bodies; their implementations live in
// cpu_amd64.s.
package cpu

// Halt stops instruction execution. Used by the panic handler to enter the
// idle loop once a diagnostic has been printed.
func Halt()

// ActivePDT returns the physical address of the currently active page table,
// i.e. the value of CR3 with its flag bits masked off. The paging builder
// uses this as the root of the tree it augments with higher-half mappings.
func ActivePDT() uintptr
