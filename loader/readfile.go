// Package loader drives the ELF-64 reader and the paging builder to place a
// kernel image into a fresh higher-half address space, and loads the
// ramdisk blob the kernel expects to find alongside it.
package loader

import (
	"efiboot/firmware"
	"efiboot/kernel"
	"efiboot/kernel/mem"
)

var (
	ErrEmptyFile = &kernel.Error{Module: "loader", Message: "file is empty"}
	ErrShortRead = &kernel.Error{Module: "loader", Message: "firmware read returned fewer bytes than requested"}
)

// pagesFor returns the number of 4 KiB pages allocated for a byte range of
// the given size. The trailing +1 is an intentional over-allocation that
// guarantees the last partial page is covered; it is preserved exactly
// rather than corrected to a plain ceiling division, since kernel segment
// loading depends on file and total page counts using the same rounding
// (see the mapping logic in kernel.go).
func pagesFor(size int64) int {
	return int((size+int64(mem.PageSize)-1)/int64(mem.PageSize)) + 1
}

// readWholeFile queries f's size, allocates enough fresh physical pages to
// hold it, and reads the entire file into them starting at the first page.
// It is shared by the kernel and ramdisk loaders, which otherwise perform
// an identical size-then-read sequence.
func readWholeFile(f *firmware.File) (addr uintptr, size int64, err error) {
	size, err = f.Size()
	if err != nil {
		return 0, 0, err
	}
	if size == 0 {
		return 0, 0, ErrEmptyFile
	}

	pages := pagesFor(size)
	addr, err = firmware.AllocatePages(pages)
	if err != nil {
		return 0, 0, err
	}

	if err := f.SetPosition(0); err != nil {
		return 0, 0, err
	}

	n, err := f.ReadAt(addr, int(size))
	if err != nil {
		return 0, 0, err
	}
	if int64(n) != size {
		return 0, 0, ErrShortRead
	}

	return addr, size, nil
}
