package firmware

import (
	"testing"

	"github.com/google/uuid"
)

func TestStatusErr(t *testing.T) {
	specs := []struct {
		name    string
		status  Status
		wantErr bool
	}{
		{name: "success", status: 0, wantErr: false},
		{name: "success with non-zero low bits", status: 0x1234, wantErr: false},
		{name: "error bit set", status: statusErrorBit | 5, wantErr: true},
	}

	for _, spec := range specs {
		t.Run(spec.name, func(t *testing.T) {
			err := spec.status.Err("some_op")
			if spec.wantErr && err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !spec.wantErr && err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
		})
	}
}

func TestGuidBytes(t *testing.T) {
	// EFI_GLOBAL_VARIABLE's well-known GUID, {8BE4DF61-93CA-11D2-AA0D-00E098032B8C},
	// has a widely published wire-format encoding this test cross-checks
	// against.
	id := uuid.MustParse("8be4df61-93ca-11d2-aa0d-00e098032b8c")
	want := [16]byte{0x61, 0xdf, 0xe4, 0x8b, 0xca, 0x93, 0xd2, 0x11, 0xaa, 0x0d, 0x00, 0xe0, 0x98, 0x03, 0x2b, 0x8c}

	got := guidBytes(id)
	if got != want {
		t.Fatalf("guidBytes() = %x, want %x", got, want)
	}
}

func TestUTF16FromString(t *testing.T) {
	got := UTF16FromString("ab")
	want := []uint16{'a', 'b', 0}
	if len(got) != len(want) {
		t.Fatalf("len(UTF16FromString(\"ab\")) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("UTF16FromString(\"ab\")[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
