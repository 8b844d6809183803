package handoff

// callKernelEntry invokes the kernel's entry point using the System V
// x86-64 calling convention (magic in RDI, the boot-info physical address
// in RSI) rather than Go's own internal calling convention, since the
// kernel image was compiled expecting a plain C entry signature
// `void entry(uint64_t magic, void *boot_info)`. The implementation lives
// in entry_amd64.s. A well-behaved kernel never returns; if it does,
// execution resumes in Go code immediately after the call.
func callKernelEntry(entry uintptr, magic uint64, bootInfoAddr uintptr)
