package firmware

// ExitBootServices terminates boot services and hands exclusive ownership
// of the machine to the loaded image. mapKey must be the key returned by
// the most recent GetMemoryMap call with no intervening allocation; any
// allocation invalidates the key and this call fails with
// EFI_INVALID_PARAMETER. The failure is returned as an error; this function
// does not re-query the map or retry.
func ExitBootServices(imageHandle Handle, mapKey uintptr) error {
	status := Status(call(bs().exitBootServices, uintptr(imageHandle), mapKey))
	return status.Err("exit_boot_services")
}
