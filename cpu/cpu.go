// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/bbvm/ram"
)

// TrapHandler services a trap request left in the trap cell.
type TrapHandler interface {
	// Trap is called with the non-zero trap code, the address of the
	// first payload word, and a read-only view of memory.
	Trap(code uint16, payload uint16, mem ram.Reader)
}

// TrapFunc adapts a function to a TrapHandler.
type TrapFunc func(code uint16, payload uint16, mem ram.Reader)

func (tf TrapFunc) Trap(code uint16, payload uint16, mem ram.Reader) {
	tf(code, payload, mem)
}

// Cpu is the simulation context for the Breadboard VM processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Config Config      // Machine configuration.
	Ram    *ram.Ram    // Reference to the main memory.
	Trap   TrapHandler // Trap request handler, may be nil.

	Pc       uint16     // Program counter.
	Register [8]uint16  // Register bank.
	Halted   bool       // Set by the halt instruction.
	Ticks    int        // Instructions started since reset.
	Traps    int        // Trap requests serviced since reset.
	Fault    *ErrOpcode // Set by an undefined opcode.
}

// NewCpu creates a new CPU with its own memory.
func NewCpu(config Config) (cpu *Cpu) {
	cpu = &Cpu{
		Config: config,
		Ram:    ram.NewRam(),
	}

	return
}

// Reset the CPU state.
// - Clears the registers and memory.
// - Zeros the program counter and statistics counters.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		logrus.Debug("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Ram.Reset()
	cpu.Pc = 0
	cpu.Halted = false
	cpu.Ticks = 0
	cpu.Traps = 0
	cpu.Fault = nil
}

// Load a program image into memory at address 0.
func (cpu *Cpu) Load(image []uint16) {
	cpu.Ram.Load(image)
}

// Done returns true when no further instructions will execute.
func (cpu *Cpu) Done() bool {
	return cpu.Halted || cpu.Fault != nil || cpu.LimitReached()
}

// LimitReached returns true when the run was stopped by the instruction ceiling.
func (cpu *Cpu) LimitReached() bool {
	return !cpu.Halted && cpu.Ticks >= cpu.Config.MaxInstructions
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %05d\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %d/%d\n", "ticks", cpu.Ticks, cpu.Config.MaxInstructions)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: 0x%04x %5d\n", CodeReg(n).String(), val, val)
	}

	return
}

// Tick executes a single fetch, decode, execute and trap cycle.
func (cpu *Cpu) Tick() (err error) {
	switch {
	case cpu.Fault != nil:
		return cpu.Fault
	case cpu.Halted:
		return ErrHalted
	case cpu.LimitReached():
		return ErrLimit
	}

	cpu.Ticks++

	pc := cpu.Pc
	code := Decode(cpu.Ram, pc)

	if cpu.Verbose {
		logrus.WithFields(logrus.Fields{
			"pc":    pc,
			"code":  code.String(),
			"ticks": cpu.Ticks,
		}).Debug("cpu step")
	}

	err = cpu.Execute(code)
	if err != nil {
		cpu.Pc = pc
		cpu.Fault = &ErrOpcode{Code: code, Pc: pc, Completed: cpu.Ticks - 1}
		if cpu.Verbose {
			logrus.WithFields(logrus.Fields{
				"pc":     pc,
				"opcode": uint16(code.Op()),
			}).Error("cpu fault")
		}
		return cpu.Fault
	}

	cpu.serviceTrap()

	return
}

// Run executes instructions until halted, faulted, or the ceiling is reached.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Done() {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction.
// The program counter is advanced past the instruction word before
// dispatch; operations that consume the immediate advance it once more,
// unless they have loaded the program counter themselves.
func (cpu *Cpu) Execute(code Code) (err error) {
	op, a, b, d, imm := code.Decode()
	if !op.Valid() {
		return ErrOpcodeInvalid
	}

	reg := &cpu.Register
	mem := cpu.Ram

	cpu.Pc = (cpu.Pc + 1) & ram.ADDRESS_MASK

	jumped := false
	jump := func(target uint16) {
		cpu.Pc = target & ram.ADDRESS_MASK
		jumped = true
	}

	switch op {
	case OP_HALT:
		cpu.Halted = true
	case OP_MV:
		reg[d] = reg[a]
	case OP_LI:
		reg[d] = imm
	case OP_LDRAW:
		reg[d] = mem.Read(imm)
	case OP_LDIND:
		reg[d] = mem.Read(reg[a])
	case OP_LDIO:
		reg[d] = mem.Read(reg[a] + imm)
	case OP_STIO:
		mem.Write(reg[a]+imm, reg[b])
	case OP_ADD:
		reg[d] = reg[a] + reg[b]
	case OP_SUB:
		reg[d] = reg[a] - reg[b]
	case OP_NEG:
		reg[d] = -reg[a]
	case OP_XOR:
		reg[d] = reg[a] ^ reg[b]
	case OP_NAND:
		reg[d] = ^(reg[a] & reg[b])
	case OP_AND:
		reg[d] = reg[a] & reg[b]
	case OP_OR:
		reg[d] = reg[a] | reg[b]
	case OP_NOT:
		reg[d] = ^reg[a]
	case OP_J:
		jump(reg[a])
	case OP_JNZ:
		if reg[a] != 0 {
			jump(imm)
		}
	case OP_JIMM:
		jump(imm)
	case OP_ADDI:
		reg[d] = reg[a] + imm
	case OP_ST:
		mem.Write(reg[a], reg[b])
	default:
		return ErrOpcodeInvalid
	}

	if !jumped && op.Words() == 2 {
		cpu.Pc = (cpu.Pc + 1) & ram.ADDRESS_MASK
	}

	return
}

// serviceTrap passes a pending trap request to the handler,
// then clears the trap cell.
func (cpu *Cpu) serviceTrap() {
	addr := cpu.Config.TrapAddress
	code := cpu.Ram.Read(addr)
	if code == 0 {
		return
	}

	if cpu.Verbose {
		logrus.WithFields(logrus.Fields{
			"code":    code,
			"payload": cpu.Config.PayloadAddress,
		}).Debug("cpu trap")
	}

	if cpu.Trap != nil {
		cpu.Trap.Trap(code, cpu.Config.PayloadAddress, cpu.Ram)
	}

	cpu.Ram.Write(addr, 0)
	cpu.Traps++
}
