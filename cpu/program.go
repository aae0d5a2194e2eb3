package cpu

import (
	"iter"
)

// Opcode represents a line of assembled source with the words it generated.
type Opcode struct {
	LineNo    int
	Ip        int
	Words     []string
	Data      []uint16
	LinkLabel string // Label to link into Data[LinkIndex].
	LinkIndex int
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the source line that generated the word at ip.
func (prog *Program) Debug(ip uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(ip) >= op.Ip && int(ip) < op.Ip+len(op.Data) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(ip) - op.Ip,
			}
			break
		}
	}

	return
}

// Binary returns the program image.
func (prog *Program) Binary() (image []uint16) {
	for _, word := range prog.Image() {
		image = append(image, word)
	}

	return
}

// Image iterates over the address and value of every word in the program.
func (prog *Program) Image() iter.Seq2[uint16, uint16] {
	return func(yield func(ip uint16, word uint16) bool) {
		for _, op := range prog.Opcodes {
			ip := uint16(op.Ip)
			for n, word := range op.Data {
				if !yield(ip+uint16(n), word) {
					return
				}
			}
		}
	}
}
