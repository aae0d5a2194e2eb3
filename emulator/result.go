package emulator

import (
	"fmt"

	"github.com/ezrec/bbvm/cpu"
)

// Result is the final state of a run.
type Result struct {
	Registers [8]uint16
	Pc        uint16
	Ticks     int    // Instructions executed.
	Limit     int    // Instruction ceiling of the run.
	Halted    bool   // Stopped by the halt instruction.
	Return    uint16 // Value of the result cell.
}

// LimitReached returns true if the run was stopped by the instruction ceiling.
func (res Result) LimitReached() bool {
	return !res.Halted && res.Ticks >= res.Limit
}

// Status describes how the run terminated.
func (res Result) Status() string {
	switch {
	case res.Halted:
		return f("halted")
	case res.LimitReached():
		return f("instruction limit reached")
	default:
		return f("stopped")
	}
}

func (res Result) String() (text string) {
	text += fmt.Sprintf("% 6s: %s\n", "status", res.Status())
	text += fmt.Sprintf("% 6s: %05d\n", "pc", res.Pc)
	text += fmt.Sprintf("% 6s: %d/%d\n", "ticks", res.Ticks, res.Limit)
	for n, val := range res.Registers {
		text += fmt.Sprintf("% 6s: 0x%04x %5d\n", cpu.CodeReg(n).String(), val, val)
	}
	text += fmt.Sprintf("% 6s: 0x%04x %5d\n", "return", res.Return, res.Return)

	return
}
