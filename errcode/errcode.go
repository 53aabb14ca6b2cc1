package errcode

// Code is a stable, wire-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	InvalidParams Code = "invalid_params"
	UnknownPin    Code = "unknown_pin"
	PinInUse      Code = "pin_in_use"
	Timeout       Code = "timeout"

	// Document decode failures, reported verbatim in {"error": ...} replies.
	EmptyInput      Code = "empty_input"
	IncompleteInput Code = "incomplete_input"
	InvalidInput    Code = "invalid_input"
	NoMemory        Code = "no_memory"
	TooDeep         Code = "too_deep"

	// Host side: the device answered with an error reply.
	DeviceError Code = "device_error"

	Error Code = "error" // generic fallback
)

// E keeps context and a cause next to a Code.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// IsDecode reports whether err is one of the document decode failures.
func IsDecode(err error) bool {
	switch Of(err) {
	case EmptyInput, IncompleteInput, InvalidInput, NoMemory, TooDeep:
		return true
	}
	return false
}

// Resync reports whether the reader should drop the rest of the current
// line after err. Incomplete input has nothing left to drop.
func Resync(err error) bool {
	switch Of(err) {
	case InvalidInput, NoMemory, TooDeep:
		return true
	}
	return false
}
