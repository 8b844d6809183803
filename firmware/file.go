package firmware

import (
	"encoding/binary"
	"unicode/utf16"
	"unsafe"
)

// byHandleProtocol is the EFI_OPEN_PROTOCOL_BY_HANDLE_PROTOCOL attribute
// value; it is the only OpenProtocol attribute this package ever uses.
const byHandleProtocol = 0x1

// fileModeRead is the EFI_FILE_MODE_READ open mode.
const fileModeRead = 0x1

// loadedImageProtocol mirrors the fields of EFI_LOADED_IMAGE_PROTOCOL this
// package reads; everything past DeviceHandle is unused padding.
type loadedImageProtocol struct {
	revision        uint32
	parentHandle    uintptr
	systemTable     uintptr
	deviceHandle    uintptr
	filePath        uintptr
	reserved        uintptr
	loadOptionsSize uint32
	loadOptions     uintptr
	imageBase       uintptr
	imageSize       uint64
	imageCodeType   uint32
	imageDataType   uint32
	unload          uintptr
}

// simpleFileSystemProtocol mirrors EFI_SIMPLE_FILE_SYSTEM_PROTOCOL.
type simpleFileSystemProtocol struct {
	revision   uint64
	openVolume uintptr
}

// fileProtocol mirrors the fields of EFI_FILE_PROTOCOL this package calls,
// in their real table order; Delete, Write and GetPosition are unused
// placeholders, and everything past GetInfo is grouped into a padding tail.
type fileProtocol struct {
	revision    uint64
	open        uintptr
	close       uintptr
	_delete     uintptr
	read        uintptr
	_write      uintptr
	_getPosition uintptr
	setPosition uintptr
	getInfo     uintptr
	_rest       [3]uintptr
}

// File is an open handle on the volume the bootloader was loaded from.
type File struct {
	proto *fileProtocol
}

// UTF16FromString converts a path into a NUL-terminated UTF-16 string, the
// form every firmware file-path argument expects.
func UTF16FromString(s string) []uint16 {
	encoded := utf16.Encode([]rune(s))
	return append(encoded, 0)
}

// OpenRootVolume resolves the simple file system the loader's own image was
// read from and opens its root directory. This is the standard UEFI
// boot-loader idiom for finding "the volume I was booted from" without the
// loader needing to know any device path itself.
func OpenRootVolume(imageHandle Handle) (*File, error) {
	li, err := openLoadedImageProtocol(imageHandle)
	if err != nil {
		return nil, err
	}

	sfs, err := openSimpleFileSystemProtocol(imageHandle, Handle(li.deviceHandle))
	if err != nil {
		return nil, err
	}

	var rootPtr uintptr
	status := Status(call(sfs.openVolume, uintptr(unsafe.Pointer(sfs)), uintptr(unsafe.Pointer(&rootPtr))))
	if err := status.Err("open_volume"); err != nil {
		return nil, err
	}
	return &File{proto: (*fileProtocol)(unsafe.Pointer(rootPtr))}, nil
}

func openLoadedImageProtocol(imageHandle Handle) (*loadedImageProtocol, error) {
	guid := guidBytes(loadedImageProtocolGUID)
	var liPtr uintptr
	status := Status(call(bs().openProtocol,
		uintptr(imageHandle),
		uintptr(unsafe.Pointer(&guid[0])),
		uintptr(unsafe.Pointer(&liPtr)),
		uintptr(imageHandle),
		0,
		byHandleProtocol,
	))
	if err := status.Err("open_protocol(loaded_image)"); err != nil {
		return nil, err
	}
	return (*loadedImageProtocol)(unsafe.Pointer(liPtr)), nil
}

func openSimpleFileSystemProtocol(imageHandle, deviceHandle Handle) (*simpleFileSystemProtocol, error) {
	guid := guidBytes(simpleFileSystemProtocolGUID)
	var sfsPtr uintptr
	status := Status(call(bs().openProtocol,
		uintptr(deviceHandle),
		uintptr(unsafe.Pointer(&guid[0])),
		uintptr(unsafe.Pointer(&sfsPtr)),
		uintptr(imageHandle),
		0,
		byHandleProtocol,
	))
	if err := status.Err("open_protocol(simple_file_system)"); err != nil {
		return nil, err
	}
	return (*simpleFileSystemProtocol)(unsafe.Pointer(sfsPtr)), nil
}

// Open opens path, a NUL-terminated UTF-16 string relative to f, for
// reading.
func (f *File) Open(path []uint16) (*File, error) {
	var childPtr uintptr
	status := Status(call(f.proto.open,
		uintptr(unsafe.Pointer(f.proto)),
		uintptr(unsafe.Pointer(&childPtr)),
		uintptr(unsafe.Pointer(&path[0])),
		fileModeRead,
		0,
	))
	if err := status.Err("file.open"); err != nil {
		return nil, err
	}
	return &File{proto: (*fileProtocol)(unsafe.Pointer(childPtr))}, nil
}

// Close releases f.
func (f *File) Close() error {
	status := Status(call(f.proto.close, uintptr(unsafe.Pointer(f.proto))))
	return status.Err("file.close")
}

// fileInfoScratchSize is the fixed scratch buffer size used for file-info
// queries; large enough for EFI_FILE_INFO's fixed fields plus the short,
// known file names this bootloader ever opens.
const fileInfoScratchSize = 256

// fileInfoFileSizeOffset is the byte offset of EFI_FILE_INFO.FileSize.
const fileInfoFileSizeOffset = 8

// Size returns f's size in bytes by querying its EFI_FILE_INFO record into a
// fixed-size scratch buffer allocated from firmware pool memory and freed
// again once the query returns, per the allocate-then-free pattern spec.md
// §4.3 step 1 describes for this call.
func (f *File) Size() (int64, error) {
	scratchAddr, err := AllocatePool(fileInfoScratchSize)
	if err != nil {
		return 0, err
	}
	defer FreePool(scratchAddr)

	size := uintptr(fileInfoScratchSize)
	guid := guidBytes(fileInfoGUID)
	status := Status(call(f.proto.getInfo,
		uintptr(unsafe.Pointer(f.proto)),
		uintptr(unsafe.Pointer(&guid[0])),
		uintptr(unsafe.Pointer(&size)),
		scratchAddr,
	))
	if err := status.Err("file.get_info"); err != nil {
		return 0, err
	}

	scratch := (*[fileInfoScratchSize]byte)(unsafe.Pointer(scratchAddr))
	return int64(binary.LittleEndian.Uint64(scratch[fileInfoFileSizeOffset:])), nil
}

// SetPosition seeks f to the given byte offset.
func (f *File) SetPosition(offset uint64) error {
	status := Status(call(f.proto.setPosition, uintptr(unsafe.Pointer(f.proto)), uintptr(offset)))
	return status.Err("file.set_position")
}

// ReadAt reads up to size bytes from f's current position into the buffer
// starting at dst, and returns the number of bytes actually read.
func (f *File) ReadAt(dst uintptr, size int) (int, error) {
	n := uintptr(size)
	status := Status(call(f.proto.read, uintptr(unsafe.Pointer(f.proto)), uintptr(unsafe.Pointer(&n)), dst))
	if err := status.Err("file.read"); err != nil {
		return 0, err
	}
	return int(n), nil
}
