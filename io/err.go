package io

import (
	"errors"

	"github.com/ezrec/bbvm/translate"
)

var f = translate.From

var (
	// Device errors
	ErrDeviceMissing = errors.New(f("no device for trap code"))
)

// ErrCodePoint is a payload word that is not a valid Unicode code point.
type ErrCodePoint struct {
	Addr  uint16
	Value uint16
}

func (err *ErrCodePoint) Error() string {
	return f("invalid code point 0x%04x at %v", err.Value, err.Addr)
}
