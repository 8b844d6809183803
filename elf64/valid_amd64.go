// +build amd64

package elf64

// isValidLocally reports whether img's encoding and machine type match the
// host architecture this binary was compiled for.
func isValidLocally(img Image) bool {
	return img.Data() == DataLittleEndian && img.Machine().IsX86_64()
}
