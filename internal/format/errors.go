package format

import "errors"

var (
	// ErrTypeNotFound indicates a type name that is not registered.
	ErrTypeNotFound = errors.New("format: type not found")
	// ErrDuplicateType indicates a second registration under an existing name.
	ErrDuplicateType = errors.New("format: duplicate type")
	// ErrInvalidLayout indicates a struct layout that cannot describe memory
	// (negative offsets, fields past the declared size, incomplete members).
	ErrInvalidLayout = errors.New("format: invalid layout")
	// ErrUnknownArch indicates an unrecognised architecture name.
	ErrUnknownArch = errors.New("format: unknown architecture")
)
