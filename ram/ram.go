// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package ram implements the word addressed main memory of the Breadboard VM.
//
// Memory is 32768 16-bit words. Every address is reduced modulo the memory
// size before use, so no access can ever be out of range.
package ram

import (
	"fmt"
	"io"
	"iter"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/bbvm/internal"
)

const (
	RAM_SIZE     = 1 << 15      // Number of words of memory.
	ADDRESS_MASK = RAM_SIZE - 1 // Mask applied to every address.
)

// Reader is read-only access to memory.
type Reader interface {
	Read(addr uint16) (value uint16)
}

// Memory is read-write access to memory.
type Memory interface {
	Reader
	Write(addr uint16, value uint16)
}

// Ram is the main memory simulation.
type Ram struct {
	Verbose bool // If set, logs every write.

	Cell   [RAM_SIZE]uint16 // Memory cells.
	Writes int              // Writes since the last reset.
}

var _ Memory = (*Ram)(nil)

// NewRam creates a new, zeroed, memory.
func NewRam() (r *Ram) {
	r = &Ram{}
	return
}

// Reset zeros all of memory.
func (r *Ram) Reset() {
	clear(r.Cell[:])
	r.Writes = 0
}

// Read a word of memory.
func (r *Ram) Read(addr uint16) (value uint16) {
	return r.Cell[addr&ADDRESS_MASK]
}

// Write a word of memory.
func (r *Ram) Write(addr uint16, value uint16) {
	addr &= ADDRESS_MASK
	if r.Verbose {
		logrus.WithFields(logrus.Fields{
			"addr":  addr,
			"prior": r.Cell[addr],
			"value": value,
		}).Debug("ram write")
	}
	r.Cell[addr] = value
	r.Writes++
}

// Load copies a program image into memory starting at address 0.
// An image longer than memory wraps onto itself.
func (r *Ram) Load(image []uint16) {
	for n, word := range image {
		r.Cell[n&ADDRESS_MASK] = word
	}
}

// Range iterates over the inclusive address range [lo, hi].
func (r *Ram) Range(lo, hi uint16) iter.Seq2[uint16, uint16] {
	return func(yield func(addr uint16, value uint16) bool) {
		lo &= ADDRESS_MASK
		hi &= ADDRESS_MASK
		for addr := int(lo); addr <= int(hi); addr++ {
			if !yield(uint16(addr), r.Cell[addr]) {
				return
			}
		}
	}
}

// Dump writes the inclusive address range [lo, hi] to w, one cell per line.
// Runs of two or more zero cells are collapsed into a single line.
func (r *Ram) Dump(w io.Writer, lo, hi uint16) (err error) {
	for run := range internal.IterRuns(r.Range(lo, hi)) {
		if run.Value == 0 && run.Count > 1 {
			_, err = fmt.Fprintf(w, "%05d-%05d: 0 (x%d)\n", run.First, run.Last, run.Count)
			if err != nil {
				return
			}
			continue
		}
		for addr := int(run.First); addr <= int(run.Last); addr++ {
			_, err = fmt.Fprintf(w, "%05d: %5d 0x%04x\n", addr, run.Value, run.Value)
			if err != nil {
				return
			}
		}
	}

	return
}
