package firmware

import "unsafe"

// graphicsOutputProtocol mirrors EFI_GRAPHICS_OUTPUT_PROTOCOL; only Mode is
// read, QueryMode/SetMode/Blt are never called by this bootloader.
type graphicsOutputProtocol struct {
	_queryMode uintptr
	_setMode   uintptr
	_blt       uintptr
	mode       *graphicsOutputProtocolMode
}

// graphicsOutputProtocolMode mirrors EFI_GRAPHICS_OUTPUT_PROTOCOL_MODE.
type graphicsOutputProtocolMode struct {
	maxMode          uint32
	currentMode      uint32
	info             *graphicsOutputModeInformation
	sizeOfInfo       uintptr
	frameBufferBase  uint64
	frameBufferSize  uintptr
}

// graphicsOutputModeInformation mirrors
// EFI_GRAPHICS_OUTPUT_MODE_INFORMATION.
type graphicsOutputModeInformation struct {
	version              uint32
	horizontalResolution uint32
	verticalResolution   uint32
	pixelFormat          uint32
	pixelInformation     [4]uint32
	pixelsPerScanLine    uint32
}

// GOPInfo describes the graphics mode the firmware had active when the
// loader ran. InfoPtr is the firmware's own EFI_GRAPHICS_OUTPUT_MODE_INFORMATION
// pointer, passed through to the kernel opaquely in the boot-info record;
// this package never interprets it beyond the fields decoded here.
type GOPInfo struct {
	Width             uint32
	Height            uint32
	PixelFormat       uint32
	PixelsPerScanLine uint32
	FrameBufferBase   uint64
	FrameBufferSize   uintptr
	InfoPtr           uintptr
}

// LocateGraphicsOutputProtocol looks up the graphics output protocol and
// reports its current mode. Not every platform exposes GOP (it is absent on
// some virtual machines and serial-only boards), so a false return is a
// routine condition, not a fatal one; callers should log and continue
// without a framebuffer rather than abort the boot.
func LocateGraphicsOutputProtocol() (GOPInfo, bool) {
	guid := guidBytes(graphicsOutputProtocolGUID)
	var protoPtr uintptr
	status := Status(call(bs().locateProtocol,
		uintptr(unsafe.Pointer(&guid[0])),
		0,
		uintptr(unsafe.Pointer(&protoPtr)),
	))
	if status.Err("locate_protocol(gop)") != nil {
		return GOPInfo{}, false
	}

	gop := (*graphicsOutputProtocol)(unsafe.Pointer(protoPtr))
	mode := gop.mode
	info := mode.info
	return GOPInfo{
		Width:             info.horizontalResolution,
		Height:            info.verticalResolution,
		PixelFormat:       info.pixelFormat,
		PixelsPerScanLine: info.pixelsPerScanLine,
		FrameBufferBase:   mode.frameBufferBase,
		FrameBufferSize:   mode.frameBufferSize,
		InfoPtr:           uintptr(unsafe.Pointer(info)),
	}, true
}
