package memory

import (
	"github.com/ezrec/s16vm/translate"
)

var f = translate.From

// ErrOutOfBounds is returned when an access would touch memory past
// the end of the address space.
type ErrOutOfBounds uint32

func (err ErrOutOfBounds) Error() string {
	return f("memory out of bounds at 0x%04x", uint32(err))
}

// Is matches any ErrOutOfBounds, regardless of address.
func (err ErrOutOfBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrOutOfBounds)
	return
}
