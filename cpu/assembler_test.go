package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, asm *Assembler, program []string) (image []uint16) {
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(t, err)
	if err != nil {
		t.Fatal(err)
	}
	return prog.Binary()
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))
	assert.Equal("0", asm.Equate["LINENO"])
}

func TestAssemblerInstructions(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"li r1, 42",
		"  mv r2 r1  ; comment",
		"ldio r3, r2, 7",
		"stio r2, 7, r3",
		"add r4, r1, r2",
		"nop",
		"halt",
	}

	image := assemble(t, asm, program)
	expected := imageOf(
		MakeCode(OP_LI, 0, 0, 1, 42),
		MakeCode(OP_MV, 1, 0, 2, 0),
		MakeCode(OP_LDIO, 2, 0, 3, 7),
		MakeCode(OP_STIO, 2, 3, 0, 7),
		MakeCode(OP_ADD, 1, 2, 4, 0),
		MakeCode(OP_HALT, 0, 0, 0, 0),
		MakeCode(OP_HALT, 0, 0, 0, 0),
	)
	assert.Equal(expected, image)
	assert.Equal([]uint16{0x0401, 42}, image[:2])
}

func TestAssemblerValues(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("TRAP_ADDRESS", "2000")

	program := []string{
		".equ BASE 10",
		".equ COUNTER r3",
		"li r0, $(BASE * 2 + 1)",
		"li r1, 'A'",
		"li r2, '\\n'",
		"li COUNTER, TRAP_ADDRESS",
		"li r4, -1",
		"li r5, ~0x00ff",
		"li r6, 0b101",
		"li r7, $(LINENO)",
	}

	image := assemble(t, asm, program)
	expected := imageOf(
		MakeCode(OP_LI, 0, 0, 0, 21),
		MakeCode(OP_LI, 0, 0, 1, 65),
		MakeCode(OP_LI, 0, 0, 2, 10),
		MakeCode(OP_LI, 0, 0, 3, 2000),
		MakeCode(OP_LI, 0, 0, 4, 0xffff),
		MakeCode(OP_LI, 0, 0, 5, 0xff00),
		MakeCode(OP_LI, 0, 0, 6, 5),
		MakeCode(OP_LI, 0, 0, 7, 10),
	)
	assert.Equal(expected, image)
}

func TestAssemblerLabel(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"start: li r0, 3",
		"loop:",
		"addi r0, r0, $(-1)",
		"jnz r0, loop",
		"jimm end",
		".word 7 start",
		"end: halt",
	}

	image := assemble(t, asm, program)
	expected := imageOf(
		MakeCode(OP_LI, 0, 0, 0, 3),
		MakeCode(OP_ADDI, 0, 0, 0, 0xffff),
		MakeCode(OP_JNZ, 0, 0, 0, 2),
		MakeCode(OP_JIMM, 0, 0, 0, 10),
	)
	expected = append(expected, 7, 0, 0x0000)
	assert.Equal(expected, image)

	assert.Equal(0, asm.Label["start"])
	assert.Equal(2, asm.Label["loop"])
	assert.Equal(10, asm.Label["end"])

	cpu := NewCpu(DefaultConfig())
	cpu.Load(image)
	assert.NoError(cpu.Run())
	assert.True(cpu.Halted)
	assert.Equal(uint16(0), cpu.Register[0])
	// li, 3 x (addi, jnz), jimm, halt
	assert.Equal(9, cpu.Ticks)
}

func TestAssemblerData(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"jimm main",
		".org 4",
		`msg: .string "a;b, c" ; comment`,
		`.string ""`,
		".org $(msg + 10)",
		"main: halt",
	}

	image := assemble(t, asm, program)
	expected := []uint16{
		0x2200, 14, 0, 0,
		'a', ';', 'b', ',', ' ', 'c', 0,
		0,
		0, 0,
		0x0000,
	}
	assert.Equal(expected, image)
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".macro SET2 ra, rb, v",
		"li ra, v",
		"li rb, v",
		".endm",
		".macro SPIN",
		"@top: jimm @top",
		".endm",
		"SET2 r1, r2, 7",
		"SPIN",
		"SPIN",
	}

	image := assemble(t, asm, program)
	expected := imageOf(
		MakeCode(OP_LI, 0, 0, 1, 7),
		MakeCode(OP_LI, 0, 0, 2, 7),
		MakeCode(OP_JIMM, 0, 0, 0, 4),
		MakeCode(OP_JIMM, 0, 0, 0, 6),
	)
	assert.Equal(expected, image)

	// Macro arguments do not leak out of the macro.
	_, ok := asm.Equate["ra"]
	assert.False(ok)
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		lineno  int
		err     error
	}){
		{"instruction", []string{"halt", "bogus r1"}, 2, ErrInstructionInvalid},
		{"register", []string{"li r9, 1"}, 1, ErrRegisterInvalid},
		{"missing", []string{"li r1"}, 1, ErrOpcodeValueMissing},
		{"extra", []string{"mv r1, r2, r3"}, 1, ErrOpcodeExtraArgs},
		{"label_missing", []string{"halt", "jimm nowhere", "halt"}, 2, ErrLabelMissing("nowhere")},
		{"label_duplicate", []string{"a: halt", "a: halt"}, 2, ErrLabelDuplicate},
		{"word_labels", []string{".word a b", "a: b: halt"}, 1, ErrOpcodeExtraArgs},
		{"endm", []string{".endm"}, 1, ErrMacroLonelyEndm},
		{"macro_lonely", []string{".macro X", "halt"}, 2, ErrMacroLonely},
		{"macro_nesting", []string{".macro X", ".macro Y"}, 2, ErrMacroNesting},
		{"macro_duplicate", []string{".macro X", ".endm", ".macro X", ".endm"}, 3, ErrMacroDuplicate},
		{"macro_args", []string{".macro X a", ".endm", "X"}, 3, ErrMacroSyntax},
		{"macro_body", []string{".macro X", "li r8, 1", ".endm", "X"}, 4, ErrRegisterInvalid},
		{"org", []string{".org 5", ".org 2"}, 2, ErrOrgBackwards},
		{"org_syntax", []string{".org"}, 1, ErrOrgSyntax},
		{"equ", []string{".equ A"}, 1, ErrEquateSyntax},
		{"equ_duplicate", []string{".equ A 1", ".equ A 2"}, 2, ErrEquateDuplicate},
		{"number", []string{"li r1, 70000"}, 1, ErrParseNumber("70000")},
		{"string", []string{`.string "\q"`}, 1, ErrParseString(`"\q"`)},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.ErrorIs(err, entry.err, entry.name)

		var syn ErrSyntax
		if assert.True(errors.As(err, &syn), entry.name) {
			assert.Equal(entry.lineno, syn.LineNo, entry.name)
		}
	}

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("li r1, $(1 +)"))
	assert.Error(err)
}
