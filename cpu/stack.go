package cpu

import (
	"github.com/ezrec/s16vm/memory"
)

// The stack grows down from STACK_TOP, one word per entry, and lives in
// main memory.

// push stores value at sp-2 and moves sp down one word.
func (cpu *Cpu) push(value uint16) (err error) {
	sp := cpu.regs.sp
	if sp < memory.WORD_SIZE {
		err = ErrStackOverflow
		return
	}

	sp -= memory.WORD_SIZE
	err = cpu.mem.WriteWord(sp, value)
	if err != nil {
		return
	}
	cpu.regs.sp = sp

	return
}

// pop loads the word at sp into reg and moves sp up one word.
func (cpu *Cpu) pop(reg Register) (err error) {
	sp := cpu.regs.sp
	if sp > STACK_TOP {
		err = ErrStackOverflow
		return
	}

	value, err := cpu.mem.ReadWord(sp)
	if err != nil {
		return
	}
	cpu.regs.Set(reg, value)
	cpu.regs.sp = sp + memory.WORD_SIZE

	return
}

// Depth returns the number of words on the stack below STACK_TOP.
func (cpu *Cpu) Depth() int {
	sp := cpu.regs.sp
	if sp > STACK_TOP {
		return 0
	}
	return int(STACK_TOP-sp) / memory.WORD_SIZE
}
