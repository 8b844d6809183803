package handoff

import (
	"unsafe"

	"efiboot/firmware"
	"efiboot/kernel"
	"efiboot/kernel/kfmt"
	"efiboot/loader"

	"github.com/dustin/go-humanize"
)

// Run populates the boot-info record, takes the final memory-map snapshot,
// exits boot services, and transfers control to kernelEntry. It never
// returns under normal operation.
//
// Between the memory-map query and ExitBootServices, nothing may allocate:
// any intervening allocation invalidates the map key ExitBootServices
// checks, and the exit call would fail. This function performs no
// allocation of its own in that window; the boot-info pool buffer and the
// ramdisk diagnostic string are allocated first, and GetMemoryMap allocates
// its map buffer before its real query. In particular, no diagnostic is
// printed in that window either: humanize.Bytes builds its string with
// fmt.Sprintf, which allocates, so the memory-map size is never logged here
// the way the ramdisk size is logged above the snapshot.
func Run(imageHandle firmware.Handle, ramdisk loader.Ramdisk, kernelEntry uint64, haveGraphics bool, gopInfoPtr uintptr) {
	biAddr, err := firmware.AllocatePool(int(unsafe.Sizeof(BootInfo{})))
	if err != nil {
		kfmt.Panic(err)
	}
	bi := (*BootInfo)(unsafe.Pointer(biAddr))

	bi.RamdiskStart = ramdisk.Start
	bi.RamdiskLength = uint64(ramdisk.Length)
	bi.EfiSystemTable = firmware.SystemTablePhysAddr()
	if haveGraphics {
		bi.EfiGopModes = gopInfoPtr
	} else {
		bi.EfiGopModes = noGraphicsMode
	}

	kfmt.Printf("handoff: ramdisk is %s at 0x%x\n", humanize.Bytes(uint64(ramdisk.Length)), ramdisk.Start)

	mm, err := firmware.GetMemoryMap()
	if err != nil {
		kfmt.Panic(err)
	}

	bi.EfiMmapStart = mm.Start()
	bi.EfiMmapLength = uint64(mm.Length())
	bi.EfiMmapDescSize = uint64(mm.DescriptorSize())

	if err := firmware.ExitBootServices(imageHandle, mm.MapKey); err != nil {
		kfmt.Panic(err)
	}

	callKernelEntry(uintptr(kernelEntry), bootInfoMagic, biAddr)

	kfmt.Panic(&kernel.Error{Module: "handoff", Message: "kernel entry point returned"})
}
