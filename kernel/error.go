package kernel

// Error describes a fatal condition detected by a loader component. Every
// component that can fail returns one of these instead of a bare error
// string so the panic handler can tag the offending module in its output.
type Error struct {
	Module  string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return "[" + e.Module + "] " + e.Message
}
