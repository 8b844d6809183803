package firmware

// callMSABI invokes a firmware function pointer using the Microsoft x64
// calling convention UEFI mandates on every platform regardless of the host
// OS ABI, packing up to six pointer-width arguments into the registers and
// shadow-space stack slots the convention requires. Unused trailing
// arguments must be passed as 0. The implementation lives in abi_amd64.s.
func callMSABI(fn uintptr, a1, a2, a3, a4, a5, a6 uintptr) uintptr

// callFn adapts the variadic capability-interface call sites in this
// package to callMSABI's fixed arity. It is a variable, rather than a plain
// function, so tests can substitute a fake that simulates firmware
// responses without needing real boot services to call into.
var callFn = func(fn uintptr, args ...uintptr) uintptr {
	var a [6]uintptr
	copy(a[:], args)
	return callMSABI(fn, a[0], a[1], a[2], a[3], a[4], a[5])
}

func call(fn uintptr, args ...uintptr) uintptr {
	return callFn(fn, args...)
}
