package io

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"unicode/utf8"

	"github.com/ezrec/bbvm/ram"
)

const (
	TRAP_PRINT = 1 // Trap code: print the payload string.
)

// Console prints null-terminated strings of code points to an io.Writer.
type Console struct {
	Output io.Writer // Destination of printed text; nil discards.

	Printed int // Code points printed since rewind.
}

var _ Device = (*Console)(nil)

// Defines returns an iter of defines for the device.
func (cn *Console) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"TRAP_PRINT": fmt.Sprintf("%d", TRAP_PRINT),
	})
}

// Rewind clears the statistics counter.
func (cn *Console) Rewind() {
	cn.Printed = 0
}

// Service prints the string starting at payload. An invalid code point ends
// the string early; the text before it is still printed.
func (cn *Console) Service(payload uint16, mem ram.Reader) (err error) {
	var text []byte
	for addr, value := range Payload(payload, mem) {
		r := rune(value)
		if !utf8.ValidRune(r) {
			err = &ErrCodePoint{Addr: addr, Value: value}
			break
		}
		text = utf8.AppendRune(text, r)
		cn.Printed++
	}

	if len(text) == 0 || cn.Output == nil {
		return
	}

	_, werr := cn.Output.Write(text)
	if err == nil {
		err = werr
	}

	return
}
