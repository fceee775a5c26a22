package plist

import (
	"fmt"

	"github.com/signadot/plist-format/go-plist/native"
)

// Error is the closed set of failure kinds reported by this package.
// Values match the status codes of the native store.
type Error int32

const (
	Success       = Error(native.Success)
	ErrInvalidArg = Error(native.ErrInvalidArg)
	ErrFormat     = Error(native.ErrFormat)
	ErrParse      = Error(native.ErrParse)
	ErrNoMem      = Error(native.ErrNoMem)
	ErrUnknown    = Error(native.ErrUnknown)
)

func (e Error) Error() string {
	return "plist: " + native.Status(e).String()
}

// ErrNotFound is returned when an array index or dictionary key names no
// element. It matches ErrInvalidArg under errors.Is.
var ErrNotFound = fmt.Errorf("%w: no such item", ErrInvalidArg)

// FromStatus maps a native status code to an error, nil for success.
// Unrecognised codes map to ErrUnknown.
func FromStatus(st native.Status) error {
	switch st {
	case native.Success:
		return nil
	case native.ErrInvalidArg, native.ErrFormat, native.ErrParse, native.ErrNoMem:
		return Error(st)
	}
	return ErrUnknown
}

func statusErr(op string, st native.Status) error {
	err := FromStatus(st)
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
