package emulator

import (
	"errors"

	"github.com/ezrec/bbvm/translate"
)

var f = translate.From

var (
	ErrSubrangeSyntax = errors.New(f("subrange must be two addresses: lo hi"))
	ErrSubrangeOrder  = errors.New(f("subrange low address is above the high address"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int // Source line, if the image was assembled.
	Pc     uint16
	Ticks  int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("line %d: pc %05d: tick %d: %v", err.LineNo, err.Pc, err.Ticks, err.Err)
	}
	return f("pc %05d: tick %d: %v", err.Pc, err.Ticks, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
