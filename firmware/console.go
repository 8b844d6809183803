package firmware

import "unsafe"

// ConsoleWriter is an io.Writer over the firmware's text console. It is the
// sink kfmt.SetOutputSink is pointed at once the system table is known.
// UEFI's console requires CRLF line endings; a bare '\n' would render
// without a carriage return on real hardware, so every '\n' byte is
// followed by an extra '\r'.
type ConsoleWriter struct{}

// Write implements io.Writer. Each byte is marshaled into a 2-code-unit
// UTF-16 string (the character plus a trailing NUL) and handed to
// OutputString one character at a time, matching the firmware's narrow
// Char16 interface.
func (ConsoleWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		outputChar(uint16(b))
		if b == '\n' {
			outputChar(uint16('\r'))
		}
	}
	return len(p), nil
}

func outputChar(c uint16) {
	buf := [2]uint16{c, 0}
	call(bs_conOutOutputString(), uintptr(unsafe.Pointer(st.conOut)), uintptr(unsafe.Pointer(&buf[0])))
}

func bs_conOutOutputString() uintptr {
	return st.conOut.outputString
}
