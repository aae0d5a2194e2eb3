package cpu

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/bbvm/ram"
)

const (
	DEFAULT_MAX_INSTRUCTIONS = 100_000 // Default instruction ceiling.

	TRAP_ADDRESS    = 2000 // Trap request cell.
	PAYLOAD_ADDRESS = 2001 // First word of the trap payload.
	RESULT_ADDRESS  = 2046 // Conventional return value slot.
)

// Config is the fixed configuration of a Cpu.
type Config struct {
	MaxInstructions int    // Instruction ceiling for a run.
	TrapAddress     uint16 // Address of the trap request cell.
	PayloadAddress  uint16 // Address of the first trap payload word.
	ResultAddress   uint16 // Address of the return value slot.
}

// DefaultConfig returns the standard machine configuration.
func DefaultConfig() Config {
	return Config{
		MaxInstructions: DEFAULT_MAX_INSTRUCTIONS,
		TrapAddress:     TRAP_ADDRESS,
		PayloadAddress:  PAYLOAD_ADDRESS,
		ResultAddress:   RESULT_ADDRESS,
	}
}

// Defines returns the assembler defines for the configuration.
func (config Config) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"RAM_SIZE":         fmt.Sprintf("%d", ram.RAM_SIZE),
		"TRAP_ADDRESS":     fmt.Sprintf("%d", config.TrapAddress),
		"PAYLOAD_ADDRESS":  fmt.Sprintf("%d", config.PayloadAddress),
		"RESULT_ADDRESS":   fmt.Sprintf("%d", config.ResultAddress),
		"MAX_INSTRUCTIONS": fmt.Sprintf("%d", config.MaxInstructions),
	})
}
