package dolx

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedHeader   = errors.New("malformed DOL header")
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrNoFileBacking     = errors.New("address has no file backing")
)

// HeaderError describes why a header was rejected. Section is -1 when the
// failure is not tied to a single descriptor.
type HeaderError struct {
	Section int
	Reason  string
}

func (e *HeaderError) Error() string {
	if e.Section < 0 {
		return fmt.Sprintf("%v: %s", ErrMalformedHeader, e.Reason)
	}
	return fmt.Sprintf("%v: section %d: %s", ErrMalformedHeader, e.Section, e.Reason)
}

func (e *HeaderError) Unwrap() error { return ErrMalformedHeader }

// AddressError is returned by the resolver. Err is ErrAddressOutOfRange or ErrNoFileBacking.
type AddressError struct {
	Addr uint32
	Err  error
}

func (e *AddressError) Error() string { return fmt.Sprintf("0x%08x: %v", e.Addr, e.Err) }

func (e *AddressError) Unwrap() error { return e.Err }
