package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFile(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}

	rf.Set(REG_R0, 0x1234)
	assert.Equal(uint16(0), rf.Get(REG_R0))

	for n := REG_R1; n <= REG_R7; n++ {
		rf.Set(n, uint16(n)*0x1111)
	}
	for n := REG_R1; n <= REG_R7; n++ {
		assert.Equal(uint16(n)*0x1111, rf.Get(n), n.String())
	}

	rf.Set(REG_PC, 0x10)
	rf.Set(REG_SP, 0xfffe)
	assert.Equal(uint16(0x10), rf.Get(REG_PC))
	assert.Equal(uint16(0xfffe), rf.Get(REG_SP))

	rf.Reset()
	assert.Equal(RegisterFile{}, *rf)
}

func TestRegisterFileFlags(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}

	rf.Set(REG_FLAGS, 0xfff5)
	assert.Equal(uint16(0x5), rf.Get(REG_FLAGS))
	assert.Equal(Flags{Zero: true, Negative: true}, rf.flags)

	rf.Set(REG_FLAGS, FLAG_CARRY|FLAG_OVERFLOW)
	assert.Equal(Flags{Carry: true, Overflow: true}, rf.flags)
	assert.Equal(FLAG_CARRY|FLAG_OVERFLOW, rf.Get(REG_FLAGS))

	for bits := range uint16(0x10) {
		rf.Set(REG_FLAGS, bits)
		assert.Equal(bits, rf.Get(REG_FLAGS))
	}
}

func TestRegisterFromIndex(t *testing.T) {
	assert := assert.New(t)

	for n := range uint8(8) {
		reg, err := RegisterFromIndex(n)
		assert.NoError(err)
		assert.Equal(Register(n), reg)
		assert.True(reg.General())
		assert.False(reg.Special())
	}

	_, err := RegisterFromIndex(8)
	assert.Equal(ErrInvalidRegister(8), err)
}

func TestSpecialFromSelector(t *testing.T) {
	assert := assert.New(t)

	table := []Register{REG_PC, REG_SP, REG_FLAGS}
	for n, expected := range table {
		reg, err := SpecialFromSelector(uint8(n))
		assert.NoError(err)
		assert.Equal(expected, reg)
		assert.True(reg.Special())

		sel, err := reg.Selector()
		assert.NoError(err)
		assert.Equal(uint8(n), sel)
	}

	_, err := SpecialFromSelector(3)
	assert.Equal(ErrInvalidSpecialRegister(3), err)

	_, err = REG_R1.Selector()
	assert.ErrorIs(err, ErrInvalidSpecialRegister(0))
}

func TestFlagsString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("[Z:0 C:0 N:0 V:0]", Flags{}.String())
	assert.Equal("[Z:1 C:0 N:1 V:0]", Flags{Zero: true, Negative: true}.String())
	assert.Equal("[Z:0 C:1 N:0 V:1]", Flags{Carry: true, Overflow: true}.String())
}

func TestFlagsArithmetic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		a, b     uint16
		subtract bool
		result   uint16
		flags    Flags
	}){
		{"0x7fff+1", 0x7fff, 1, false, 0x8000, Flags{Negative: true, Overflow: true}},
		{"0xffff+1", 0xffff, 1, false, 0, Flags{Zero: true, Carry: true}},
		{"0x8000+0x8000", 0x8000, 0x8000, false, 0, Flags{Zero: true, Carry: true, Overflow: true}},
		{"1+2", 1, 2, false, 3, Flags{}},
		{"0-1", 0, 1, true, 0xffff, Flags{Negative: true, Carry: true}},
		{"5-5", 5, 5, true, 0, Flags{Zero: true}},
		{"0x8000-1", 0x8000, 1, true, 0x7fff, Flags{Overflow: true}},
		{"0x7fff-0xffff", 0x7fff, 0xffff, true, 0x8000, Flags{Negative: true, Carry: true, Overflow: true}},
	}

	for _, entry := range table {
		cpu := NewCpu()
		var result uint16
		if entry.subtract {
			result = cpu.sub(entry.a, entry.b)
		} else {
			result = cpu.add(entry.a, entry.b)
		}
		assert.Equal(entry.result, result, entry.name)
		assert.Equal(entry.flags, cpu.Flags(), entry.name)
	}
}

func TestFlagsLogical(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.regs.flags = Flags{Carry: true, Overflow: true}

	assert.Equal(uint16(0), cpu.logical(OP_AND, 0xf0f0, 0x0f0f))
	assert.Equal(Flags{Zero: true}, cpu.Flags())

	assert.Equal(uint16(0xffff), cpu.logical(OP_OR, 0xf0f0, 0x0f0f))
	assert.Equal(Flags{Negative: true}, cpu.Flags())

	assert.Equal(uint16(0x0ff0), cpu.logical(OP_XOR, 0xf0f0, 0xff00))
	assert.Equal(Flags{}, cpu.Flags())

	assert.Equal(uint16(0xffff), cpu.logical(OP_NOT, 0, 0x1234))
	assert.Equal(Flags{Negative: true}, cpu.Flags())
}

func TestFlagsShift(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		op     Op
		value  uint16
		amount uint16
		result uint16
		flags  Flags
	}){
		{"shl 0x8000 1", OP_SHL, 0x8000, 1, 0, Flags{Zero: true, Carry: true}},
		{"shl 1 15", OP_SHL, 1, 15, 0x8000, Flags{Negative: true}},
		{"shl 0x4000 1", OP_SHL, 0x4000, 1, 0x8000, Flags{Negative: true}},
		{"shl 3 0x11", OP_SHL, 3, 0x11, 6, Flags{}},
		{"shr 1 1", OP_SHR, 1, 1, 0, Flags{Zero: true, Carry: true}},
		{"shr 0x8000 15", OP_SHR, 0x8000, 15, 1, Flags{}},
		{"shr 0x0180 8", OP_SHR, 0x0180, 8, 1, Flags{Carry: true}},
	}

	for _, entry := range table {
		cpu := NewCpu()
		cpu.regs.flags = Flags{Overflow: true}
		cpu.shift(entry.op, REG_R1, entry.value, entry.amount)
		assert.Equal(entry.result, cpu.Register(REG_R1), entry.name)
		assert.Equal(entry.flags, cpu.Flags(), entry.name)
	}

	// A zero shift copies the value and keeps the flags.
	cpu := NewCpu()
	cpu.regs.flags = Flags{Carry: true, Overflow: true}
	cpu.shift(OP_SHL, REG_R2, 0x1234, 0x10)
	assert.Equal(uint16(0x1234), cpu.Register(REG_R2))
	assert.Equal(Flags{Carry: true, Overflow: true}, cpu.Flags())
}
