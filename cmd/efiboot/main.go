// Command efiboot is the UEFI application entry shim. It is deliberately
// thin: every real decision about how the kernel gets loaded and handed
// control lives in the loader and handoff packages, which this command
// only wires together in the order the firmware contract requires.
package main

import (
	"efiboot/firmware"
	"efiboot/graphics"
	"efiboot/handoff"
	"efiboot/kernel"
	"efiboot/kernel/kfmt"
	"efiboot/kernel/mem"
	"efiboot/kernel/mem/pmm"
	"efiboot/loader"
)

var errEntryReturned = &kernel.Error{Module: "efiboot", Message: "entry point returned"}

// kernelPath and ramdiskPath are the fixed locations this bootloader opens
// on the volume it was itself loaded from.
var (
	kernelPath  = firmware.UTF16FromString(`uefi-boot\kernel.elf64`)
	ramdiskPath = firmware.UTF16FromString(`uefi-boot\init.rd`)
)

// imageHandle and systemTablePtr are populated by the architecture-specific
// entry stub before main is called, the same way gopher-os's own rt0 code
// populates the multiboot info pointer ahead of calling into Go. That stub
// is part of the out-of-scope top-level entry shim and lives outside this
// package.
var (
	imageHandle    firmware.Handle
	systemTablePtr uintptr
)

// main is not expected to return. If it does, the entry stub halts the CPU.
//
//go:noinline
func main() {
	firmware.Init(systemTablePtr)
	kfmt.SetOutputSink(firmware.ConsoleWriter{})

	kernelFile, err := openBootFile(kernelPath)
	if err != nil {
		kfmt.Panic(err)
	}
	ramdiskFile, err := openBootFile(ramdiskPath)
	if err != nil {
		kfmt.Panic(err)
	}

	mode, haveGraphics := graphics.Locate()

	entry, err := loader.LoadKernel(kernelFile, allocPageFrame)
	if err != nil {
		kfmt.Panic(err)
	}

	ramdisk, err := loader.LoadRamdisk(ramdiskFile)
	if err != nil {
		kfmt.Panic(err)
	}

	handoff.Run(imageHandle, ramdisk, entry, haveGraphics, mode.InfoPtr)

	// handoff.Run never returns under normal operation.
	kfmt.Panic(errEntryReturned)
}

// openBootFile resolves the volume this image was loaded from and opens
// path read-only from its root directory.
func openBootFile(path []uint16) (*firmware.File, error) {
	root, err := firmware.OpenRootVolume(imageHandle)
	if err != nil {
		return nil, err
	}
	return root.Open(path)
}

// allocPageFrame allocates a single fresh physical page for the paging
// builder's interior page tables.
func allocPageFrame() (pmm.Frame, *kernel.Error) {
	addr, err := firmware.AllocatePages(1)
	if err != nil {
		return pmm.InvalidFrame, &kernel.Error{Module: "efiboot", Message: err.Error()}
	}
	return pmm.Frame(addr >> mem.PageShift), nil
}
