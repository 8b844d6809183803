package elf64

import (
	"encoding/binary"
	"fmt"
	"testing"
)

// buildHeader returns a minimal valid ELF-64 header for an executable
// targeting x86_64, with room for n program header entries immediately
// following the header.
func buildHeader(n int) []byte {
	buf := make([]byte, headerSize+n*programHeaderSize)
	copy(buf[0:4], []byte{0x7f, 0x45, 0x4c, 0x46})
	buf[4] = 2 // EI_CLASS = ELFCLASS64
	buf[5] = 1 // EI_DATA = little endian
	buf[6] = 1 // EI_VERSION
	buf[7] = 0 // EI_OSABI = none
	le := binary.LittleEndian
	le.PutUint16(buf[16:18], 2)      // e_type = ET_EXEC
	le.PutUint16(buf[18:20], 0x3e)   // e_machine = EM_X86_64
	le.PutUint32(buf[20:24], 1)      // e_version
	le.PutUint64(buf[24:32], 0x1000) // e_entry
	le.PutUint64(buf[32:40], headerSize)
	le.PutUint16(buf[54:56], programHeaderSize) // e_phentsize
	le.PutUint16(buf[56:58], uint16(n))          // e_phnum
	return buf
}

func TestFromSliceTooSmall(t *testing.T) {
	// S1: a 63-byte input slice fails with SliceTooSmall(64).
	_, err := FromSlice(make([]byte, 63))
	tooSmall, ok := err.(*ErrSliceTooSmall)
	if !ok {
		t.Fatalf("expected *ErrSliceTooSmall; got %T (%v)", err, err)
	}
	if tooSmall.Need != headerSize {
		t.Errorf("expected Need == %d; got %d", headerSize, tooSmall.Need)
	}
}

func TestFromSliceNotElf(t *testing.T) {
	// S2: a slice beginning with zero bytes of adequate length fails with NotElf.
	buf := buildHeader(0)
	buf[0], buf[1], buf[2], buf[3] = 0, 0, 0, 0
	if _, err := FromSlice(buf); err != ErrNotElf {
		t.Errorf("expected ErrNotElf; got %v", err)
	}
}

func TestFromSliceNotElf64(t *testing.T) {
	// S3: a valid header with class byte 1 fails with NotElf64.
	buf := buildHeader(0)
	buf[4] = 1
	if _, err := FromSlice(buf); err != ErrNotElf64 {
		t.Errorf("expected ErrNotElf64; got %v", err)
	}
}

func TestFromSliceInvalidVersion(t *testing.T) {
	// S4: a valid header with identification version 0 fails with InvalidVersion.
	buf := buildHeader(0)
	buf[6] = 0
	if _, err := FromSlice(buf); err != ErrInvalidVersion {
		t.Errorf("expected ErrInvalidVersion; got %v", err)
	}
}

func TestFromSliceValid(t *testing.T) {
	buf := buildHeader(0)
	img, err := FromSlice(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !img.IsValidLocally() {
		t.Error("expected image to be valid on this architecture")
	}
	if !img.FileType().IsExecutable() {
		t.Error("expected file type to be Executable")
	}
	if !img.ABI().IsNone() {
		t.Errorf("expected ABI None; got %v", img.ABI())
	}
	if img.ABIVersion() != 0 {
		t.Errorf("expected ABI version 0; got %d", img.ABIVersion())
	}

	// Invariant 6: repeated accessor calls return identical values.
	for i := 0; i < 3; i++ {
		if img.Entry() != 0x1000 {
			t.Errorf("call %d: expected entry 0x1000; got 0x%x", i, img.Entry())
		}
	}
}

func TestProgramHeadersCount(t *testing.T) {
	const n = 3
	buf := buildHeader(n)
	le := binary.LittleEndian
	for i := 0; i < n; i++ {
		off := headerSize + i*programHeaderSize
		le.PutUint32(buf[off:off+4], 1) // PT_LOAD
		le.PutUint64(buf[off+8:off+16], uint64(i*0x1000))
		le.PutUint64(buf[off+16:off+24], 0xffff_8000_0000_0000+uint64(i*0x1000))
	}

	img, err := FromSlice(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	it, err := img.ProgramHeaders()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := 0
	for {
		ph, ok := it.Next()
		if !ok {
			break
		}
		if !ph.Type.IsLoad() {
			t.Errorf("entry %d: expected PT_LOAD", count)
		}
		count++
	}

	if count != n {
		t.Errorf("expected %d program headers; got %d", n, count)
	}
	if _, ok := it.Next(); ok {
		t.Error("expected iterator to be exhausted")
	}
}

func TestProgramHeadersSliceTooSmall(t *testing.T) {
	buf := buildHeader(2)
	img, err := FromSlice(buf[:headerSize+programHeaderSize]) // truncate one entry short
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = img.ProgramHeaders()
	if _, ok := err.(*ErrSliceTooSmall); !ok {
		t.Fatalf("expected *ErrSliceTooSmall; got %v", err)
	}
}

func TestContains(t *testing.T) {
	buf := buildHeader(0)
	img, err := FromSlice(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	specs := []struct {
		ph  ProgramHeader
		exp bool
	}{
		{ProgramHeader{Offset: 0, Filesz: uint64(len(buf))}, true},
		{ProgramHeader{Offset: 0, Filesz: uint64(len(buf)) + 1}, false},
		{ProgramHeader{Offset: uint64(len(buf)), Filesz: 0}, true},
	}

	for specIndex, spec := range specs {
		t.Run(fmt.Sprint(specIndex), func(t *testing.T) {
			if got := img.Contains(spec.ph); got != spec.exp {
				t.Errorf("expected Contains == %t; got %t", spec.exp, got)
			}
		})
	}
}
