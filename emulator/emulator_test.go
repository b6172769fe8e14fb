package emulator

import (
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/s16vm/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.Equal(uint16(ORIGIN), emu.Origin)
	assert.NotNil(emu.Program)

	defines := maps.Collect(emu.Defines())
	assert.Equal("0x10", defines["ORIGIN"])
	assert.Equal("0xfffe", defines["STACK_TOP"])
}

func assemble(t *testing.T, emu *Emulator, program []string) (prog *cpu.Program) {
	asm := &cpu.Assembler{}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	emu.Program = prog

	err = emu.Reset()
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	return
}

func doRunSingle(emu *Emulator, program []string, t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, emu, program)

	for n, op := range prog.Opcodes {
		assert.Equal(op.LineNo, emu.LineNo())
		here := program[emu.LineNo()-1]
		for c := range len(op.Codes) {
			assert.Equal(emu.Origin+uint16(op.Addr+2*c), emu.Pc(), here)
			code, ok := emu.Code()
			assert.True(ok, here)
			assert.Equal(op.Codes[c], code, here)
			debug := emu.Program.Debug(emu.Pc() - emu.Origin)
			done, err := emu.Tick()
			if !assert.NoError(err, here) {
				t.Log(emu.Cpu.String())
				t.FailNow()
			}
			assert.Equal(debug.Codes[debug.Index], op.Codes[c])
			last := n == len(prog.Opcodes)-1 && c == len(op.Codes)-1
			assert.Equal(last, done, here)
		}
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorSingle(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRunSingle(emu, []string{
		"addi r1 5",
		"addi r2, 3",
		"add r3, r1, r2",
		"st r3 0x80",
		"ld r5, 0x80",
		"li r6 0x1234",
		"halt",
	}, t)

	assert.Equal(uint16(8), emu.Register(cpu.REG_R3))
	assert.Equal(uint16(8), emu.Register(cpu.REG_R5))
	assert.Equal(uint16(0x1234), emu.Register(cpu.REG_R6))
	assert.Equal(8, emu.Ticks())
	assert.True(emu.Halted())
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		regs    map[cpu.Register]uint16
	}){
		{"sum", []string{
			"    li r1 10",
			"loop:",
			"    add r2, r2, r1",
			"    addi r1, -1",
			"    jnz loop",
			"    st r2 0x80",
			"    ld r3 0x80",
			"    halt",
		}, map[cpu.Register]uint16{cpu.REG_R1: 0, cpu.REG_R2: 55, cpu.REG_R3: 55}},
		{"call", []string{
			"    addi r1 21",
			"    call double",
			"    halt",
			"double:",
			"    push r1",
			"    add r1, r1, r1",
			"    pop r2",
			"    ret",
		}, map[cpu.Register]uint16{cpu.REG_R1: 42, cpu.REG_R2: 21, cpu.REG_SP: cpu.STACK_TOP}},
		{"self", []string{
			"    ld r1 ORIGIN",
			"    halt",
		}, map[cpu.Register]uint16{cpu.REG_R1: 0x2210}},
		{"max", []string{
			".macro MAX rd ra rb",
			"    cmp ra rb",
			"    jgt @a",
			"    add rd r0 rb",
			"    jmp @done",
			"@a: add rd r0 ra",
			"@done:",
			".endm",
			"    addi r1 -3",
			"    addi r2 7",
			"    MAX r3 r1 r2",
			"    MAX r4 r2 r1",
			"    halt",
		}, map[cpu.Register]uint16{cpu.REG_R3: 7, cpu.REG_R4: 7}},
		{"special", []string{
			"    movfs r1 sp",
			"    addi r2 FLAG_CARRY",
			"    movts flags r2",
			"    movfs r3 flags",
			"    halt",
		}, map[cpu.Register]uint16{cpu.REG_R1: 0xfffe, cpu.REG_R3: 0x2, cpu.REG_FLAGS: 0x2}},
	}

	for _, entry := range table {
		emu := NewEmulator()
		assemble(t, emu, entry.program)

		err := emu.Run(1000)
		assert.NoError(err, entry.name)
		assert.True(emu.Halted(), entry.name)

		for reg, value := range entry.regs {
			assert.Equal(value, emu.Register(reg), "%v: %v", entry.name, reg)
		}
	}
}

func TestEmulatorOrigin(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Origin = 0x1000
	assemble(t, emu, []string{
		"addi r1 1",
		"halt",
	})

	start, end := emu.ProgramBounds()
	assert.Equal(uint16(0x1000), start)
	assert.Equal(uint16(0x1004), end)
	assert.Equal(1, emu.LineNo())

	assert.NoError(emu.Run(0))
	assert.Equal(uint16(1), emu.Register(cpu.REG_R1))
}

func TestEmulatorQuirk(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"addi r1 0x0f",
		"ori r1 0xf0",
		"halt",
	}

	emu := NewEmulator()
	assemble(t, emu, program)
	assert.NoError(emu.Run(0))
	assert.Equal(uint16(0xff), emu.Register(cpu.REG_R1))

	emu = NewEmulator()
	emu.QuirkOrImmediate = true
	assemble(t, emu, program)
	assert.NoError(emu.Run(0))
	assert.Equal(uint16(0), emu.Register(cpu.REG_R1))
}

func TestEmulatorErrRuntime(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		lineno  int
		err     error
	}){
		{"sysall", []string{"nop", "sysall", "halt"}, 2, cpu.ErrNotImplemented},
		{"bounds", []string{"addi r1 1"}, 0, cpu.ErrProgramBounds{}},
		{"invalid", []string{"nop", ".word 0xe000"}, 2, cpu.ErrInvalidJType(0)},
		{"stack", []string{"movts sp r0", "push r1", "halt"}, 2, cpu.ErrStackOverflow},
	}

	for _, entry := range table {
		emu := NewEmulator()
		assemble(t, emu, entry.program)

		err := emu.Run(100)
		assert.ErrorIs(err, entry.err, entry.name)

		var runtime *ErrRuntime
		if assert.True(errors.As(err, &runtime), entry.name) {
			assert.Equal(entry.lineno, runtime.LineNo, entry.name)
		}
	}
}

func TestEmulatorTickLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assemble(t, emu, []string{
		"loop: jmp loop",
	})

	err := emu.Run(100)
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(100, emu.Ticks())
	assert.False(emu.Halted())

	// Reset reloads the program.
	assert.NoError(emu.Reset())
	assert.Equal(0, emu.Ticks())
	assert.Equal(uint16(ORIGIN), emu.Pc())
}

func TestEmulatorOddBinary(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = cpu.ProgramFromBinary([]byte{0x01, 0x42, 0x00}) // addi r1, 1
	assert.NoError(emu.Reset())

	done, err := emu.Tick()
	assert.False(done)
	assert.NoError(err)
	assert.Equal(uint16(1), emu.Register(cpu.REG_R1))

	_, ok := emu.Code()
	assert.False(ok)

	// The trailing byte can not be fetched as a word.
	_, err = emu.Tick()
	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(cpu.ErrProgramBounds{Pc: 0x12, End: 0x14, Low: 0x10, High: 0x13}, runtime.Err)
	}
}
