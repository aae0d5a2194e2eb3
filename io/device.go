// Package io provides the trap devices for the Breadboard VM.
//
// A program requests a device service by writing a trap code to the trap
// cell. The Monitor routes the request to the Device attached to that code;
// the Console device prints the null-terminated string in the trap payload.
package io

import (
	"iter"

	"github.com/ezrec/bbvm/ram"
)

// Device defines the interface for all trap devices.
type Device interface {
	// Rewind resets the device to its initial state.
	Rewind()
	// Service performs the device action, reading the payload from
	// memory starting at the payload address.
	Service(payload uint16, mem ram.Reader) error
	// Defines returns the assembler defines of the device.
	Defines() iter.Seq2[string, string]
}

// Payload returns an iterator over the words of a null-terminated payload,
// stopping at the first zero word or the end of memory.
func Payload(payload uint16, mem ram.Reader) iter.Seq2[uint16, uint16] {
	return func(yield func(addr uint16, value uint16) bool) {
		for addr := int(payload & ram.ADDRESS_MASK); addr < ram.RAM_SIZE; addr++ {
			value := mem.Read(uint16(addr))
			if value == 0 {
				return
			}
			if !yield(uint16(addr), value) {
				return
			}
		}
	}
}
