package cpu

import (
	"fmt"
	"strings"

	"github.com/ezrec/bbvm/ram"
)

// CodeOp is an instruction operation code.
type CodeOp int

const (
	OP_HALT  = CodeOp(0x00) // halt
	OP_MV    = CodeOp(0x01) // mv
	OP_LI    = CodeOp(0x02) // li
	OP_LDRAW = CodeOp(0x03) // ldraw
	OP_LDIND = CodeOp(0x04) // ldind
	OP_LDIO  = CodeOp(0x05) // ldio
	OP_STIO  = CodeOp(0x06) // stio
	OP_ADD   = CodeOp(0x07) // add
	OP_SUB   = CodeOp(0x08) // sub
	OP_NEG   = CodeOp(0x09) // neg
	OP_XOR   = CodeOp(0x0a) // xor
	OP_NAND  = CodeOp(0x0b) // nand
	OP_AND   = CodeOp(0x0c) // and
	OP_OR    = CodeOp(0x0d) // or
	OP_NOT   = CodeOp(0x0e) // not
	OP_J     = CodeOp(0x0f) // j
	OP_JNZ   = CodeOp(0x10) // jnz
	OP_JIMM  = CodeOp(0x11) // jimm
	OP_ADDI  = CodeOp(0x12) // addi
	OP_ST    = CodeOp(0x13) // st

	OP_COUNT = 0x14 // Number of defined operation codes.
)

// CodeReg is a register index, r0 through r7.
type CodeReg int

func (reg CodeReg) String() string {
	return fmt.Sprintf("r%d", int(reg))
}

// CodeOperand is an operand slot in the assembly syntax of an instruction.
//
//go:generate go tool stringer -linecomment -type=CodeOperand
type CodeOperand int

const (
	OPERAND_DEST = CodeOperand(iota) // dest
	OPERAND_SRCA                     // srcA
	OPERAND_SRCB                     // srcB
	OPERAND_IMM                      // imm
)

// codeInfo is the per-operation metadata.
type codeInfo struct {
	Mnemonic string
	Words    int           // Words consumed by the instruction, including the immediate.
	Operands []CodeOperand // Assembly operand order.
}

var (
	_a   = []CodeOperand{OPERAND_SRCA}
	_i   = []CodeOperand{OPERAND_IMM}
	_da  = []CodeOperand{OPERAND_DEST, OPERAND_SRCA}
	_di  = []CodeOperand{OPERAND_DEST, OPERAND_IMM}
	_ai  = []CodeOperand{OPERAND_SRCA, OPERAND_IMM}
	_ab  = []CodeOperand{OPERAND_SRCA, OPERAND_SRCB}
	_dab = []CodeOperand{OPERAND_DEST, OPERAND_SRCA, OPERAND_SRCB}
	_dai = []CodeOperand{OPERAND_DEST, OPERAND_SRCA, OPERAND_IMM}
	_aib = []CodeOperand{OPERAND_SRCA, OPERAND_IMM, OPERAND_SRCB}
)

var codeTable = [OP_COUNT]codeInfo{
	OP_HALT:  {"halt", 1, nil},
	OP_MV:    {"mv", 1, _da},
	OP_LI:    {"li", 2, _di},
	OP_LDRAW: {"ldraw", 2, _di},
	OP_LDIND: {"ldind", 1, _da},
	OP_LDIO:  {"ldio", 2, _dai},
	OP_STIO:  {"stio", 2, _aib},
	OP_ADD:   {"add", 1, _dab},
	OP_SUB:   {"sub", 1, _dab},
	OP_NEG:   {"neg", 1, _da},
	OP_XOR:   {"xor", 1, _dab},
	OP_NAND:  {"nand", 1, _dab},
	OP_AND:   {"and", 1, _dab},
	OP_OR:    {"or", 1, _dab},
	OP_NOT:   {"not", 1, _da},
	OP_J:     {"j", 1, _a},
	OP_JNZ:   {"jnz", 2, _ai},
	OP_JIMM:  {"jimm", 2, _i},
	OP_ADDI:  {"addi", 2, _dai},
	OP_ST:    {"st", 1, _ab},
}

// opMap maps mnemonics to operation codes.
var opMap = func() (ops map[string]CodeOp) {
	ops = make(map[string]CodeOp, OP_COUNT)
	for op, info := range codeTable {
		ops[info.Mnemonic] = CodeOp(op)
	}
	ops["nop"] = OP_HALT
	return
}()

// Valid returns true if the operation code is defined.
func (op CodeOp) Valid() bool {
	return op >= 0 && op < OP_COUNT
}

// Words returns the number of memory words used by the operation,
// or 0 for an undefined operation.
func (op CodeOp) Words() int {
	if !op.Valid() {
		return 0
	}
	return codeTable[op].Words
}

func (op CodeOp) String() string {
	if !op.Valid() {
		return fmt.Sprintf("CodeOp(0x%02x)", int(op))
	}
	return codeTable[op].Mnemonic
}

// Code is a single instruction word along with the word that follows it.
type Code struct {
	Word      uint16
	Immediate uint16
}

// MakeCode creates an instruction.
func MakeCode(op CodeOp, srcA, srcB, dest CodeReg, imm uint16) Code {
	word := (uint16(op)&0x7f)<<9 | (uint16(srcA)&7)<<6 | (uint16(srcB)&7)<<3 | (uint16(dest)&7)<<0
	return Code{Word: word, Immediate: imm}
}

// Decode fetches the instruction at pc, and the word after it.
// The immediate is always fetched, whether or not the operation uses it.
func Decode(mem ram.Reader, pc uint16) Code {
	return Code{
		Word:      mem.Read(pc),
		Immediate: mem.Read(pc + 1),
	}
}

// Op returns the operation code from the instruction word.
func (code Code) Op() CodeOp {
	return CodeOp((code.Word >> 9) & 0x7f)
}

// Decode returns all of the fields of the instruction.
func (code Code) Decode() (op CodeOp, srcA, srcB, dest CodeReg, imm uint16) {
	word := code.Word
	op = CodeOp((word >> 9) & 0x7f)
	srcA = CodeReg((word >> 6) & 0x7)
	srcB = CodeReg((word >> 3) & 0x7)
	dest = CodeReg((word >> 0) & 0x7)
	imm = code.Immediate
	return
}

// Binary returns the memory words used by the instruction.
func (code Code) Binary() []uint16 {
	if code.Op().Words() == 2 {
		return []uint16{code.Word, code.Immediate}
	}
	return []uint16{code.Word}
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	op, srcA, srcB, dest, imm := code.Decode()
	if !op.Valid() {
		return fmt.Sprintf(".word 0x%04x", code.Word)
	}

	info := codeTable[op]
	args := make([]string, 0, len(info.Operands))
	for _, operand := range info.Operands {
		switch operand {
		case OPERAND_DEST:
			args = append(args, dest.String())
		case OPERAND_SRCA:
			args = append(args, srcA.String())
		case OPERAND_SRCB:
			args = append(args, srcB.String())
		case OPERAND_IMM:
			args = append(args, fmt.Sprintf("%d", imm))
		}
	}

	if len(args) == 0 {
		return info.Mnemonic
	}

	return info.Mnemonic + " " + strings.Join(args, ", ")
}
