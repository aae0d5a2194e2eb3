package emulator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ezrec/bbvm/ram"
)

// View selects the machine snapshots written to the emulator output.
type View struct {
	Short    bool // Pc, decoded code and registers after each step.
	Verbose  bool // As Short, plus all of memory after each step.
	Subrange bool // Memory [Lo, Hi] after each step.
	Final    bool // Result and all of memory at termination.

	Lo, Hi uint16 // Subrange bounds, inclusive.
}

// Stepping returns true if any per-step snapshot is enabled.
func (view View) Stepping() bool {
	return view.Short || view.Verbose || view.Subrange
}

// ParseSubrange parses a "lo hi" address pair into the view subrange.
func (view *View) ParseSubrange(text string) (err error) {
	words := strings.Fields(text)
	if len(words) != 2 {
		return ErrSubrangeSyntax
	}

	var addr [2]uint16
	for n, word := range words {
		var value uint64
		value, err = strconv.ParseUint(word, 0, 16)
		if err != nil || value >= ram.RAM_SIZE {
			return fmt.Errorf("%w: %q", ErrSubrangeSyntax, word)
		}
		addr[n] = uint16(value)
	}

	if addr[0] > addr[1] {
		return ErrSubrangeOrder
	}

	view.Subrange = true
	view.Lo, view.Hi = addr[0], addr[1]

	return
}
