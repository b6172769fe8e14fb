package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCpuRegisters(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	loadWords(t, cpu, 0x4205, 0x4403, 0xff00)
	assert.NoError(cpu.Run())

	assert.Equal([8]uint16{0, 5, 3, 0, 0, 0, 0, 0}, cpu.Registers())
	assert.Equal(uint16(0x16), cpu.Pc())
	assert.Equal(Flags{}, cpu.Flags())

	_, err := cpu.MemoryWord(0xffff)
	assert.Error(err)
	assert.Nil(cpu.MemoryRange(0xfff0, 0x11))
}

func TestCpuDumpRegisters(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	loadWords(t, cpu, 0x4205, 0xff00)
	assert.NoError(cpu.Run())

	lines := strings.Split(cpu.DumpRegisters(), "\n")
	assert.Equal(14, len(lines))
	assert.Equal("REG     | HEX    | BIN                | DEC", lines[0])
	assert.Equal("R0      | 0x0000 | 0b0000000000000000 |     0", lines[2])
	assert.Equal("R1      | 0x0005 | 0b0000000000000101 |     5", lines[3])
	assert.Equal("PC      | 0x0014 | 0b0000000000010100 |    20", lines[10])
	assert.Equal("SP      | 0xFFFE | 0b1111111111111110 | 65534", lines[11])
	assert.Equal("FLAGS   | 0x0000 | 0b0000000000000000 | [Z:0 C:0 N:0 V:0]", lines[12])
	assert.Equal("", lines[13])
}

func TestCpuDumpMemory(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	loadWords(t, cpu, 0x4205, 0xff00)

	assert.Equal("0x0010: 0x05 0x42 0x00 0xFF \n", cpu.DumpMemory(0x10, 4))

	dump := cpu.DumpMemory(0x00, 0x20)
	lines := strings.Split(dump, "\n")
	assert.Equal(3, len(lines))
	assert.True(strings.HasPrefix(lines[0], "0x0000: 0x00 "))
	assert.True(strings.HasPrefix(lines[1], "0x0010: 0x05 0x42 0x00 0xFF 0x00 "))

	assert.Equal("", cpu.DumpMemory(0xffff, 2))
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	loadWords(t, cpu, 0xff00)
	assert.True(strings.HasSuffix(cpu.String(), "program: [0x0010, 0x0012) running ticks: 0\n"))

	assert.NoError(cpu.Run())
	assert.True(strings.HasSuffix(cpu.String(), "program: [0x0010, 0x0012) halted ticks: 1\n"))
	assert.True(strings.HasPrefix(cpu.String(), cpu.DumpRegisters()))
}
