package elf64

import "unsafe"

const programHeaderSize = 56

// rawProgramHeader mirrors the on-disk layout of an ELF-64 program header
// table entry exactly.
type rawProgramHeader struct {
	type_  uint32
	flags  uint32
	offset uint64
	vaddr  uint64
	paddr  uint64
	filesz uint64
	memsz  uint64
	align  uint64
}

// ProgramHeader is a decoded program header table entry. filesz and memsz
// obey filesz <= memsz; the gap [filesz, memsz) is the segment's BSS tail,
// zero-filled at load time.
type ProgramHeader struct {
	Type   PHType
	Offset uint64
	Vaddr  uint64
	Paddr  uint64
	Filesz uint64
	Memsz  uint64
	Align  uint64
}

// ProgramHeaderIter is a finite, non-restartable iteration over an image's
// program header table, yielded in file order.
type ProgramHeaderIter struct {
	raw     []byte
	entries int
	next    int
}

// ProgramHeaders returns an iterator over img's program header table, or an
// ErrSliceTooSmall if the backing slice does not fully contain the table.
func (img Image) ProgramHeaders() (ProgramHeaderIter, error) {
	h := img.header()
	required := int(h.phoff) + int(h.phnum)*int(h.phentsize)
	if len(img.raw) < required {
		return ProgramHeaderIter{}, &ErrSliceTooSmall{Need: required}
	}

	return ProgramHeaderIter{
		raw:     img.raw[h.phoff:],
		entries: int(h.phnum),
	}, nil
}

// Next returns the next program header in file order, or ok == false once
// every entry has been yielded.
func (it *ProgramHeaderIter) Next() (ProgramHeader, bool) {
	if it.next >= it.entries {
		return ProgramHeader{}, false
	}

	offset := it.next * programHeaderSize
	raw := (*rawProgramHeader)(unsafe.Pointer(&it.raw[offset]))
	it.next++

	return ProgramHeader{
		Type:   phTypeFromUint32(raw.type_),
		Offset: raw.offset,
		Vaddr:  raw.vaddr,
		Paddr:  raw.paddr,
		Filesz: raw.filesz,
		Memsz:  raw.memsz,
		Align:  raw.align,
	}, true
}

// Remaining reports how many entries Next has not yet yielded.
func (it *ProgramHeaderIter) Remaining() int {
	return it.entries - it.next
}
