// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs program images on the Breadboard VM.
package emulator

import (
	"errors"
	"fmt"
	stdio "io"
	"iter"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/bbvm/cpu"
	"github.com/ezrec/bbvm/internal"
	"github.com/ezrec/bbvm/io"
	"github.com/ezrec/bbvm/ram"
)

// Emulator state. CPU + trap monitor + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Assembled listing of the image, may be nil.
	Image    []uint16     // Program image loaded at reset.

	Monitor io.Monitor // Trap dispatcher.
	Console io.Console // Print device, attached to TRAP_PRINT.

	View   View         // Snapshot selection.
	Output stdio.Writer // Destination of the views; nil discards.
}

// NewEmulator creates a new emulator.
func NewEmulator(config cpu.Config) (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(config),
	}

	emu.Monitor.Attach(io.TRAP_PRINT, &emu.Console)
	emu.Cpu.Trap = &emu.Monitor

	return
}

// Defines returns an iterator over all of the defines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Cpu.Config.Defines(),
		emu.Console.Defines(),
	)
}

// Assemble sets the program and image from a listing.
func (emu *Emulator) Assemble(prog *cpu.Program) {
	emu.Program = prog
	emu.Image = prog.Binary()
}

// Reset the machine, and load the image.
func (emu *Emulator) Reset() (err error) {
	if len(emu.Image) > ram.RAM_SIZE {
		return fmt.Errorf("%w: %d words", cpu.ErrImageTooLarge, len(emu.Image))
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Monitor.Verbose = emu.Verbose

	emu.Cpu.Reset()
	emu.Cpu.Load(emu.Image)
	emu.Monitor.Rewind()

	return
}

// LineNo returns the source line of the code at the program counter.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Code returns the code at the program counter.
func (emu *Emulator) Code() cpu.Code {
	return cpu.Decode(emu.Cpu.Ram, emu.Cpu.Pc)
}

// Tick performs a single step of the emulator, and writes the step views.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Monitor.Verbose = emu.Verbose

	if emu.Cpu.Done() {
		done = true
		return
	}

	pc := emu.Cpu.Pc
	code := emu.Code()
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Ticks: emu.Cpu.Ticks, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	done = emu.Cpu.Done()
	if err != nil {
		return
	}

	err = emu.viewStep(pc, code)

	return
}

// Result returns the current machine state as a run result.
func (emu *Emulator) Result() Result {
	return Result{
		Registers: emu.Cpu.Register,
		Pc:        emu.Cpu.Pc,
		Ticks:     emu.Cpu.Ticks,
		Limit:     emu.Cpu.Config.MaxInstructions,
		Halted:    emu.Cpu.Halted,
		Return:    emu.Cpu.Ram.Read(emu.Cpu.Config.ResultAddress),
	}
}

// Run steps the emulator until the machine halts, faults or reaches the
// instruction ceiling.
func (emu *Emulator) Run() (result Result, err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			break
		}
	}

	result = emu.Result()

	if emu.Verbose {
		logrus.WithFields(logrus.Fields{
			"pc":     result.Pc,
			"ticks":  result.Ticks,
			"halted": result.Halted,
			"traps":  emu.Cpu.Traps,
		}).Debug("emulator done")
	}

	if emu.View.Final {
		err = errors.Join(err, emu.viewFinal(result))
	}

	return
}

func (emu *Emulator) output() stdio.Writer {
	if emu.Output == nil {
		return stdio.Discard
	}
	return emu.Output
}

func (emu *Emulator) viewStep(pc uint16, code cpu.Code) (err error) {
	view := &emu.View
	if !view.Stepping() {
		return
	}

	w := emu.output()

	if view.Short || view.Verbose {
		_, err = fmt.Fprintf(w, "%05d: %v\n%v", pc, code, emu.Cpu.String())
		if err != nil {
			return
		}
	}

	if view.Verbose {
		err = emu.Cpu.Ram.Dump(w, 0, ram.RAM_SIZE-1)
		if err != nil {
			return
		}
	}

	if view.Subrange {
		err = emu.Cpu.Ram.Dump(w, view.Lo, view.Hi)
	}

	return
}

func (emu *Emulator) viewFinal(result Result) (err error) {
	w := emu.output()

	_, err = fmt.Fprint(w, result.String())
	if err != nil {
		return
	}

	err = emu.Cpu.Ram.Dump(w, 0, ram.RAM_SIZE-1)

	return
}
