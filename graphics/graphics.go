// Package graphics locates the firmware's active graphics mode, if any, and
// logs its resolution. It deliberately does not interpret the mode beyond
// that: the framebuffer geometry is handed to the kernel as an opaque
// record in the boot-info structure, and what to do with it is the
// kernel's business, not the loader's.
package graphics

import (
	"efiboot/firmware"
	"efiboot/kernel/kfmt"
)

// Mode describes the firmware's active graphics mode at the time the
// loader queried it.
type Mode struct {
	Width             uint32
	Height            uint32
	PixelFormat       uint32
	PixelsPerScanLine uint32
	FrameBufferBase   uint64
	FrameBufferSize   uintptr
	InfoPtr           uintptr
}

// Locate looks up the graphics output protocol and returns its current
// mode. Unlike every other failure in this codebase, an absent GOP is not
// fatal: some platforms (serial-only boards, certain virtual machines)
// never expose one, and the kernel is equipped to continue without a
// framebuffer. Locate logs either outcome and returns ok=false rather than
// panicking when the protocol can't be found.
func Locate() (mode Mode, ok bool) {
	info, found := firmware.LocateGraphicsOutputProtocol()
	if !found {
		kfmt.Printf("graphics: no graphics output protocol found, continuing without a framebuffer\n")
		return Mode{}, false
	}

	kfmt.Printf("graphics: mode is %dx%d\n", info.Width, info.Height)
	return Mode{
		Width:             info.Width,
		Height:            info.Height,
		PixelFormat:       info.PixelFormat,
		PixelsPerScanLine: info.PixelsPerScanLine,
		FrameBufferBase:   info.FrameBufferBase,
		FrameBufferSize:   info.FrameBufferSize,
		InfoPtr:           info.InfoPtr,
	}, true
}
