package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_PushPop(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	loadWords(t, cpu, 0xff00)
	assert.Equal(0, cpu.Depth())

	assert.NoError(cpu.push(0x1234))
	assert.Equal(uint16(0xfffc), cpu.Sp())
	assert.Equal(1, cpu.Depth())

	word, err := cpu.MemoryWord(0xfffc)
	assert.NoError(err)
	assert.Equal(uint16(0x1234), word)

	assert.NoError(cpu.push(0x5678))
	assert.Equal(uint16(0xfffa), cpu.Sp())
	assert.Equal(2, cpu.Depth())

	assert.NoError(cpu.pop(REG_R1))
	assert.Equal(uint16(0x5678), cpu.Register(REG_R1))
	assert.NoError(cpu.pop(REG_R2))
	assert.Equal(uint16(0x1234), cpu.Register(REG_R2))
	assert.Equal(uint16(STACK_TOP), cpu.Sp())
	assert.Equal(0, cpu.Depth())
}

func TestStack_Overflow(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	// Nothing loaded, so sp is above the top of the stack.
	assert.ErrorIs(cpu.pop(REG_R1), ErrStackOverflow)
	assert.Equal(uint16(STACK_RESET), cpu.Sp())

	cpu.regs.sp = 1
	assert.ErrorIs(cpu.push(0xbeef), ErrStackOverflow)
	assert.Equal(uint16(1), cpu.Sp())

	cpu.regs.sp = 2
	assert.NoError(cpu.push(0xbeef))
	assert.Equal(uint16(0), cpu.Sp())
	assert.Equal([]byte{0xef, 0xbe}, cpu.MemoryRange(0, 2))
	assert.ErrorIs(cpu.push(0xbeef), ErrStackOverflow)
}

func TestStack_PopTopWraps(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	loadWords(t, cpu, 0xff00)
	cpu.mem.SetByte(0xfffe, 0x34)
	cpu.mem.SetByte(0xffff, 0x12)

	// Popping the empty stack reads the top word and wraps sp.
	assert.NoError(cpu.pop(REG_R3))
	assert.Equal(uint16(0x1234), cpu.Register(REG_R3))
	assert.Equal(uint16(0), cpu.Sp())
}

func TestStack_Instructions(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	loadWords(t, cpu,
		0xf220,                            // movts sp, r0
		MakeWordR(1, 0, 1, 0, FUNCT_PUSH), // push r1
		0xff00,                            // halt
	)

	err := cpu.Run()
	assert.ErrorIs(err, ErrStackOverflow)
	assert.Equal(uint16(0), cpu.Sp())
	assert.Equal(1, cpu.Ticks)
}
