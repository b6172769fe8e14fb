package cpu

import (
	"fmt"
)

// Register is a logical register of the CPU.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_R0    = Register(0)  // r0
	REG_R1    = Register(1)  // r1
	REG_R2    = Register(2)  // r2
	REG_R3    = Register(3)  // r3
	REG_R4    = Register(4)  // r4
	REG_R5    = Register(5)  // r5
	REG_R6    = Register(6)  // r6
	REG_R7    = Register(7)  // r7
	REG_PC    = Register(8)  // pc
	REG_SP    = Register(9)  // sp
	REG_FLAGS = Register(10) // flags
)

// Special register selectors, as encoded in the E-type move instructions.
const (
	SELECT_PC    = 0
	SELECT_SP    = 1
	SELECT_FLAGS = 2
)

// General returns true if the register is one of r0-r7.
func (reg Register) General() bool {
	return reg >= REG_R0 && reg <= REG_R7
}

// Special returns true if the register is one of pc, sp or flags.
func (reg Register) Special() bool {
	return reg >= REG_PC && reg <= REG_FLAGS
}

// Selector returns the special register selector of a special register.
func (reg Register) Selector() (sel uint8, err error) {
	if !reg.Special() {
		err = ErrInvalidSpecialRegister(reg)
		return
	}

	sel = uint8(reg - REG_PC)
	return
}

// RegisterFromIndex returns the general register r0-r7 numbered index.
func RegisterFromIndex(index uint8) (reg Register, err error) {
	if index > uint8(REG_R7) {
		err = ErrInvalidRegister(index)
		return
	}

	reg = Register(index)
	return
}

// SpecialFromSelector returns the special register for a selector value.
func SpecialFromSelector(sel uint8) (reg Register, err error) {
	if sel > SELECT_FLAGS {
		err = ErrInvalidSpecialRegister(sel)
		return
	}

	reg = REG_PC + Register(sel)
	return
}

// RegisterFile holds the general registers, the special registers, and the
// flags. Every register, general or special, is reached through Get and Set.
type RegisterFile struct {
	general [8]uint16
	pc      uint16
	sp      uint16
	flags   Flags
}

// Get returns the value of a register. r0 always reads as zero, and the
// flags register reads as its packed bit form. It panics on a Register
// outside of the declared REG_ constants.
func (rf *RegisterFile) Get(reg Register) (value uint16) {
	switch reg {
	case REG_R0:
		value = 0
	case REG_R1, REG_R2, REG_R3, REG_R4, REG_R5, REG_R6, REG_R7:
		value = rf.general[reg]
	case REG_PC:
		value = rf.pc
	case REG_SP:
		value = rf.sp
	case REG_FLAGS:
		value = rf.flags.Bits()
	default:
		panic(fmt.Sprintf("unknown register %d", int(reg)))
	}

	return
}

// Set writes a register. Writes to r0 are discarded. Writes to the flags
// register keep only the low 4 bits. It panics on a Register outside of
// the declared REG_ constants.
func (rf *RegisterFile) Set(reg Register, value uint16) {
	switch reg {
	case REG_R0:
		// hardwired zero
	case REG_R1, REG_R2, REG_R3, REG_R4, REG_R5, REG_R6, REG_R7:
		rf.general[reg] = value
	case REG_PC:
		rf.pc = value
	case REG_SP:
		rf.sp = value
	case REG_FLAGS:
		rf.flags.SetBits(value)
	default:
		panic(fmt.Sprintf("unknown register %d", int(reg)))
	}
}

// Reset zeros all registers and flags.
func (rf *RegisterFile) Reset() {
	*rf = RegisterFile{}
}
