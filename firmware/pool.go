package firmware

import "unsafe"

// efiLoaderData is the EFI_MEMORY_TYPE this bootloader tags every
// allocation it makes with; it marks memory as belonging to the loaded
// image rather than to the firmware itself.
const efiLoaderData = 2

// allocateAnyPages is the EFI_ALLOCATE_TYPE requesting an allocation
// anywhere in the available address space.
const allocateAnyPages = 0

// AllocatePool reserves size bytes of firmware pool memory and returns its
// address.
func AllocatePool(size int) (uintptr, error) {
	var ptr uintptr
	status := Status(call(bs().allocatePool, efiLoaderData, uintptr(size), uintptr(unsafe.Pointer(&ptr))))
	if err := status.Err("allocate_pool"); err != nil {
		return 0, err
	}
	return ptr, nil
}

// FreePool releases a buffer previously returned by AllocatePool.
func FreePool(ptr uintptr) error {
	status := Status(call(bs().freePool, ptr))
	return status.Err("free_pool")
}

// AllocatePages reserves n contiguous 4 KiB physical pages anywhere in the
// available address space and returns the physical address of the first
// page.
func AllocatePages(n int) (uintptr, error) {
	var phys uintptr
	status := Status(call(bs().allocatePages, allocateAnyPages, efiLoaderData, uintptr(n), uintptr(unsafe.Pointer(&phys))))
	if err := status.Err("allocate_pages"); err != nil {
		return 0, err
	}
	return phys, nil
}

// SetMem sets size bytes starting at addr to value using the firmware's
// byte-set primitive; used to zero the BSS tail of LOAD segments.
func SetMem(addr uintptr, size int, value byte) {
	call(bs().setMem, addr, uintptr(size), uintptr(value))
}
