// +build !amd64

package elf64

// isValidLocally conservatively returns false on every architecture other
// than the one this package was built to run a bootloader on.
func isValidLocally(img Image) bool {
	return false
}
