package loader

import (
	"efiboot/elf64"
	"efiboot/firmware"
	"efiboot/kernel"
	"efiboot/kernel/cpu"
	"efiboot/kernel/mem"
	"efiboot/kernel/mem/pmm"
	"efiboot/paging"
)

var (
	ErrUnsupportedABI      = &kernel.Error{Module: "loader", Message: "kernel image targets an unsupported ABI"}
	ErrUnsupportedFileType = &kernel.Error{Module: "loader", Message: "kernel image is not a plain executable"}
	ErrNotLocallyValid     = &kernel.Error{Module: "loader", Message: "kernel image does not match this machine's encoding or architecture"}
	ErrUnalignedSegment    = &kernel.Error{Module: "loader", Message: "LOAD segment offset or virtual address is not page-aligned"}
	ErrSegmentOutOfBounds  = &kernel.Error{Module: "loader", Message: "LOAD segment extends past the end of the file"}
)

// LoadKernel reads f, validates it as a 64-bit ELF executable matching this
// machine, and materializes every LOAD segment into a fresh higher-half
// address space rooted at the currently active page table. It returns the
// image's entry point, to be called only after ExitBootServices.
func LoadKernel(f *firmware.File, allocFrame paging.FrameAllocatorFn) (uint64, error) {
	fileAddr, fileSize, err := readWholeFile(f)
	if err != nil {
		return 0, err
	}

	img, elfErr := elf64.FromSlice(kernel.ByteView(fileAddr, uintptr(fileSize)))
	if elfErr != nil {
		return 0, elfErr
	}
	if !img.IsValidLocally() {
		return 0, ErrNotLocallyValid
	}
	if !img.ABI().IsNone() || img.ABIVersion() != 0 {
		return 0, ErrUnsupportedABI
	}
	if !img.FileType().IsExecutable() {
		return 0, ErrUnsupportedFileType
	}

	builder := paging.NewBuilder(cpu.ActivePDT(), allocFrame)
	builder.PrepareRoot()

	headers, hdrErr := img.ProgramHeaders()
	if hdrErr != nil {
		return 0, hdrErr
	}

	for {
		ph, ok := headers.Next()
		if !ok {
			break
		}
		if !ph.Type.IsLoad() {
			continue
		}
		if err := loadSegment(fileAddr, img, ph, builder); err != nil {
			return 0, err
		}
	}

	return img.Entry(), nil
}

// loadSegment fuses a LOAD segment's file-backed pages with freshly
// allocated, zero-filled BSS tail pages, preserving the loader's
// ⌈n/4096⌉+1 rounding on both the file- and total-page counts (see
// pagesFor). File-backed pages take the segment's first filePages virtual
// pages and tail pages the ones after them, so the two never overlap; but
// because of the +1 the segment maps one virtual page past the end of its
// memsz extent. When the next LOAD segment starts on that page, Map's
// double-map check fails the later segment.
func loadSegment(fileBase uintptr, img elf64.Image, ph elf64.ProgramHeader, builder *paging.Builder) error {
	pageSize := uintptr(mem.PageSize)
	if ph.Offset%uint64(pageSize) != 0 || ph.Vaddr%uint64(pageSize) != 0 {
		return ErrUnalignedSegment
	}
	if !img.Contains(ph) {
		return ErrSegmentOutOfBounds
	}

	filePages := pagesFor(int64(ph.Filesz))
	totalPages := pagesFor(int64(ph.Memsz))
	allocPages := totalPages - filePages

	for i := 0; i < filePages; i++ {
		phys := fileBase + uintptr(ph.Offset) + uintptr(i)*pageSize
		virt := uintptr(ph.Vaddr) + uintptr(i)*pageSize
		if err := builder.Map(pmm.Frame(phys>>mem.PageShift), virt); err != nil {
			return err
		}
	}

	if allocPages > 0 {
		tailPhys, err := firmware.AllocatePages(allocPages)
		if err != nil {
			return err
		}
		for i := 0; i < allocPages; i++ {
			phys := tailPhys + uintptr(i)*pageSize
			virt := uintptr(ph.Vaddr) + uintptr(filePages+i)*pageSize
			if err := builder.Map(pmm.Frame(phys>>mem.PageShift), virt); err != nil {
				return err
			}
		}
	}

	if bssLen := ph.Memsz - ph.Filesz; bssLen > 0 {
		firmware.SetMem(uintptr(ph.Vaddr)+uintptr(ph.Filesz), int(bssLen), 0)
	}

	return nil
}
