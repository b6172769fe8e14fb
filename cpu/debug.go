package cpu

import (
	"fmt"
	"strings"
)

// Registers returns a copy of the general registers. r0 is always zero.
func (cpu *Cpu) Registers() (regs [8]uint16) {
	for n := range regs {
		regs[n] = cpu.regs.Get(Register(n))
	}
	return
}

// Register returns the value of any register.
func (cpu *Cpu) Register(reg Register) uint16 {
	return cpu.regs.Get(reg)
}

// Pc returns the program counter.
func (cpu *Cpu) Pc() uint16 {
	return cpu.regs.pc
}

// Sp returns the stack pointer.
func (cpu *Cpu) Sp() uint16 {
	return cpu.regs.sp
}

// Flags returns the condition flags.
func (cpu *Cpu) Flags() Flags {
	return cpu.regs.flags
}

// Halted returns true once a halt instruction has executed.
func (cpu *Cpu) Halted() bool {
	return cpu.halted
}

// ProgramBounds returns the [start, end) interval of the loaded program.
func (cpu *Cpu) ProgramBounds() (start, end uint16) {
	return cpu.programStart, cpu.programEnd
}

// MemoryRange returns a copy of length bytes of memory from start, or nil if
// the range is not entirely addressable.
func (cpu *Cpu) MemoryRange(start uint16, length int) []byte {
	return cpu.mem.Range(start, length)
}

// MemoryWord returns the word at addr.
func (cpu *Cpu) MemoryWord(addr uint16) (uint16, error) {
	return cpu.mem.ReadWord(addr)
}

var dumpOrder = []Register{
	REG_R0, REG_R1, REG_R2, REG_R3, REG_R4, REG_R5, REG_R6, REG_R7,
	REG_PC, REG_SP, REG_FLAGS,
}

// DumpRegisters returns a table of all registers in hex, binary and decimal.
func (cpu *Cpu) DumpRegisters() string {
	var sb strings.Builder

	sb.WriteString("REG     | HEX    | BIN                | DEC\n")
	sb.WriteString("--------|--------|--------------------|----\n")
	for _, reg := range dumpOrder {
		val := cpu.regs.Get(reg)
		name := strings.ToUpper(reg.String())
		if reg == REG_FLAGS {
			fmt.Fprintf(&sb, "%-8s| 0x%04X | 0b%016b | %v\n", name, val, val, cpu.regs.flags)
		} else {
			fmt.Fprintf(&sb, "%-8s| 0x%04X | 0b%016b | %5d\n", name, val, val, val)
		}
	}

	return sb.String()
}

// DumpMemory returns a hex dump of memory, 16 bytes per line.
func (cpu *Cpu) DumpMemory(start uint16, length int) string {
	var sb strings.Builder

	data := cpu.mem.Range(start, length)
	for n, b := range data {
		if n%16 == 0 {
			fmt.Fprintf(&sb, "0x%04X: ", int(start)+n)
		}
		fmt.Fprintf(&sb, "0x%02X ", b)
		if n%16 == 15 {
			sb.WriteByte('\n')
		}
	}
	if len(data)%16 != 0 {
		sb.WriteByte('\n')
	}

	return sb.String()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() string {
	state := "running"
	if cpu.halted {
		state = "halted"
	}

	return fmt.Sprintf("%sprogram: [0x%04X, 0x%04X) %s ticks: %d\n",
		cpu.DumpRegisters(), cpu.programStart, cpu.programEnd, state, cpu.Ticks)
}
