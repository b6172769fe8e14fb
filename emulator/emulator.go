// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/s16vm/cpu"
	"github.com/ezrec/s16vm/internal"
)

const (
	ORIGIN = 0x10 // Default load address of a program.
)

var _emulator_defines = map[string]string{
	"ORIGIN": fmt.Sprintf("0x%x", ORIGIN),
}

// Emulator state. CPU + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	Origin   uint16       // Load address of the program.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
		Origin:  ORIGIN,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset clears the CPU and memory, and loads the program at the origin.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()

	err = emu.Cpu.LoadProgram(emu.Program.Binary(), emu.Origin)

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the current instruction word from the program listing.
func (emu *Emulator) Code() (code cpu.Word, ok bool) {
	for addr, word := range emu.Program.Codes() {
		if emu.Origin+addr == emu.Cpu.Pc() {
			code = word
			ok = true
			break
		}
	}

	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	pc := emu.Cpu.Pc()
	if pc < emu.Origin {
		return 0
	}

	dbg := emu.Program.Debug(pc - emu.Origin)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction of the emulator.
// done is set once the program has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	progress, err := emu.Cpu.Step()
	if err != nil {
		return
	}

	done = !progress || emu.Cpu.Halted()

	return
}

// Run ticks the emulator until the program halts.
// A positive limit bounds the number of ticks.
func (emu *Emulator) Run(limit int) (err error) {
	for n := 0; limit <= 0 || n < limit; n++ {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	err = ErrTickLimit
	return
}
