package loader

import (
	"testing"

	"efiboot/elf64"
	"efiboot/kernel/mem"
)

func TestPagesFor(t *testing.T) {
	specs := []struct {
		name string
		size int64
		want int
	}{
		{name: "zero", size: 0, want: 1},
		{name: "exactly one page", size: int64(mem.PageSize), want: 2},
		{name: "one byte into a second page", size: int64(mem.PageSize) + 1, want: 3},
		{name: "less than one page", size: 100, want: 2},
	}

	for _, spec := range specs {
		t.Run(spec.name, func(t *testing.T) {
			if got := pagesFor(spec.size); got != spec.want {
				t.Fatalf("pagesFor(%d) = %d, want %d", spec.size, got, spec.want)
			}
		})
	}
}

func TestLoadSegmentRejectsBadInput(t *testing.T) {
	img := elf64.Image{}

	specs := []struct {
		name    string
		ph      elf64.ProgramHeader
		wantErr error
	}{
		{
			name:    "unaligned offset",
			ph:      elf64.ProgramHeader{Offset: 1, Vaddr: 0xffff800000000000},
			wantErr: ErrUnalignedSegment,
		},
		{
			name:    "unaligned vaddr",
			ph:      elf64.ProgramHeader{Offset: 0, Vaddr: 1},
			wantErr: ErrUnalignedSegment,
		},
		{
			name:    "segment past end of file",
			ph:      elf64.ProgramHeader{Offset: 0, Vaddr: 0xffff800000000000, Filesz: 0x10000},
			wantErr: ErrSegmentOutOfBounds,
		},
	}

	for _, spec := range specs {
		t.Run(spec.name, func(t *testing.T) {
			err := loadSegment(0, img, spec.ph, nil)
			if err != spec.wantErr {
				t.Fatalf("loadSegment() = %v, want %v", err, spec.wantErr)
			}
		})
	}
}
