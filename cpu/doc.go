// Package cpu implements the processor and assembler for the Breadboard VM.
//
// The CPU consists of a 15-bit program counter (PC), eight 16-bit
// general-purpose registers (r0-r7) and a 32768 word main memory. Every
// instruction is a single packed word, optionally followed by a 16-bit
// immediate word. Memory address 2000 is the trap cell: when an instruction
// leaves a non-zero value there, the trap handler is invoked once and the
// cell is cleared.
//
// The assembler provides a small assembly language for the instruction set,
// supporting macros, labels, equates, and compile-time expression evaluation.
package cpu
