package cpu

import (
	"errors"

	"github.com/ezrec/bbvm/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted        = errors.New(f("halted"))
	ErrLimit         = errors.New(f("instruction limit reached"))
	ErrOpcodeInvalid = errors.New(f("opcode invalid"))

	// Program image errors
	ErrImageRange    = errors.New(f("value out of range"))
	ErrImageTooLarge = errors.New(f("image larger than memory"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrOrgBackwards       = errors.New(f(".org before current address"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrOpcode is the fatal stop caused by an undefined opcode.
type ErrOpcode struct {
	Code      Code   // Instruction that failed to decode.
	Pc        uint16 // Address of the instruction.
	Completed int    // Instructions completed before this one.
}

func (eo *ErrOpcode) Error() string {
	return f("bad opcode 0x%02x at pc %v after %v instructions", uint16(eo.Code.Op()), eo.Pc, eo.Completed)
}

func (eo *ErrOpcode) Unwrap() error {
	return ErrOpcodeInvalid
}

// ErrImage indicates a malformed program image line.
type ErrImage struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrImage) Error() string {
	return f("incorrect file format on line %v '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %v '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseString string

func (err ErrParseString) Error() string {
	return f("%v is not a string", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
