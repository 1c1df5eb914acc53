package pattern

import "errors"

var (
	// ErrInvalidArgument reports a zero LED count at construction or an engine/sink length mismatch
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfMemory reports a pixel buffer request above MaxLEDs
	ErrOutOfMemory = errors.New("out of memory")
)
