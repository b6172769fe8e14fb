// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/s16vm/memory"
)

const (
	STACK_TOP   = 0xfffe // Stack pointer after a program load.
	STACK_RESET = 0xffff // Stack pointer before any program is loaded.
)

var _cpu_defines = map[string]string{
	"STACK_TOP":     fmt.Sprintf("0x%x", STACK_TOP),
	"MEMORY_SIZE":   fmt.Sprintf("0x%x", memory.SIZE),
	"SEL_PC":        fmt.Sprintf("%d", SELECT_PC),
	"SEL_SP":        fmt.Sprintf("%d", SELECT_SP),
	"SEL_FLAGS":     fmt.Sprintf("%d", SELECT_FLAGS),
	"FLAG_ZERO":     fmt.Sprintf("0x%x", FLAG_ZERO),
	"FLAG_CARRY":    fmt.Sprintf("0x%x", FLAG_CARRY),
	"FLAG_NEGATIVE": fmt.Sprintf("0x%x", FLAG_NEGATIVE),
	"FLAG_OVERFLOW": fmt.Sprintf("0x%x", FLAG_OVERFLOW),
}

// Cpu is the simulation context of the s16 processor and its memory.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	// Set to make ori compute a bitwise AND, as older s16 cores do.
	QuirkOrImmediate bool

	Ticks int // Instructions executed since the last program load.

	regs   RegisterFile
	mem    memory.Memory
	halted bool

	// Fetches are permitted only from [programStart, programEnd).
	programStart uint16
	programEnd   uint16
}

// NewCpu creates a new CPU with empty memory and no program.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.regs.sp = STACK_RESET

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers, flags, and memory.
// - Removes the program bounds.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.regs.Reset()
	cpu.regs.sp = STACK_RESET
	cpu.mem.Reset()
	cpu.halted = false
	cpu.programStart = 0
	cpu.programEnd = 0
	cpu.Ticks = 0
}

// LoadProgram copies a program into memory at start, and prepares the CPU
// to execute it: the program bounds cover exactly the program bytes, pc is
// set to start, sp to STACK_TOP, and the CPU is no longer halted.
// Memory outside of the program is left as is.
func (cpu *Cpu) LoadProgram(program []byte, start uint16) (err error) {
	end := int(start) + len(program)
	if end > 0xffff {
		err = ErrProgramSize{Start: start, Size: len(program)}
		return
	}

	err = cpu.mem.Load(start, program)
	if err != nil {
		return
	}

	cpu.programStart = start
	cpu.programEnd = uint16(end)
	cpu.regs.pc = start
	cpu.regs.sp = STACK_TOP
	cpu.halted = false
	cpu.Ticks = 0

	if cpu.Verbose {
		log.Printf("cpu: load %d bytes at 0x%04x", len(program), start)
	}

	return
}

// checkBounds verifies the next fetch is inside of the program.
func (cpu *Cpu) checkBounds() (err error) {
	pc := cpu.regs.pc
	end := pc + 2
	if end < pc {
		end = 0xffff
	}

	if pc < cpu.programStart || end > cpu.programEnd {
		err = ErrProgramBounds{
			Pc:   pc,
			End:  end,
			Low:  cpu.programStart,
			High: cpu.programEnd,
		}
	}

	return
}

// Step fetches, decodes and executes a single instruction.
// It returns false, with no error, once the CPU has halted.
// Any error is fatal to the run; the CPU state is not rolled back.
func (cpu *Cpu) Step() (progress bool, err error) {
	if cpu.halted {
		return
	}

	err = cpu.checkBounds()
	if err != nil {
		return
	}

	// Fetch
	ip := cpu.regs.pc
	bits, err := cpu.mem.ReadWord(ip)
	if err != nil {
		return
	}
	cpu.regs.pc = ip + 2

	// Decode
	word := Word(bits)
	ins, err := DecodeInstruction(word)
	if err != nil {
		err = ErrInvalidInstruction{Word: word, Err: err}
		return
	}

	if cpu.Verbose {
		log.Printf("%04x: %v", ip, ins)
	}

	// Execute
	err = cpu.Execute(ins)
	if err != nil {
		return
	}

	cpu.Ticks++
	progress = true

	return
}

// Run steps the CPU until it halts or faults.
func (cpu *Cpu) Run() (err error) {
	for progress := true; progress; {
		progress, err = cpu.Step()
		if err != nil {
			return
		}
	}

	return
}
