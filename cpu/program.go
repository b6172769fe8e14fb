package cpu

import (
	"encoding/binary"
	"iter"
	"slices"
)

// Opcode represents a line of assembled code with its source location and
// generated instruction words.
type Opcode struct {
	LineNo    int      // Source line number.
	Addr      int      // Byte offset from the start of the program.
	Words     []string // Source words.
	Codes     []Word   // Generated instruction words.
	LinkLabel string   // Label to link into the last jump word, if any.
}

// Program is an assembled program.
type Program struct {
	Opcodes []Opcode

	raw []byte // Exact image, when loaded from a binary.
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the opcode containing the word at byte offset addr.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(addr) >= op.Addr && int(addr) < op.Addr+2*len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  (int(addr) - op.Addr) / 2,
			}
			break
		}
	}

	return
}

// Size returns the program size in bytes.
func (prog *Program) Size() (size int) {
	if prog.raw != nil {
		return len(prog.raw)
	}
	for _, op := range prog.Opcodes {
		size += 2 * len(op.Codes)
	}
	return
}

// Binary returns the program as little-endian bytes.
func (prog *Program) Binary() (bins []byte) {
	if prog.raw != nil {
		return slices.Clone(prog.raw)
	}
	bins = make([]byte, 0, prog.Size())
	for _, code := range prog.Codes() {
		bins = binary.LittleEndian.AppendUint16(bins, uint16(code))
	}

	return
}

// Codes iterates over the words of the program by byte offset.
func (prog *Program) Codes() iter.Seq2[uint16, Word] {
	return func(yield func(addr uint16, code Word) bool) {
		for _, op := range prog.Opcodes {
			addr := uint16(op.Addr)
			for n, code := range op.Codes {
				if !yield(addr+uint16(2*n), code) {
					return
				}
			}
		}
	}
}

// ProgramFromBinary builds a program of raw words from little-endian bytes.
// A trailing odd byte is not listed as a word, but is kept in the binary.
func ProgramFromBinary(data []byte) (prog *Program) {
	prog = &Program{
		raw: slices.Clone(data),
	}
	for addr := 0; addr+1 < len(data); addr += 2 {
		prog.Opcodes = append(prog.Opcodes, Opcode{
			Addr:  addr,
			Codes: []Word{Word(binary.LittleEndian.Uint16(data[addr:]))},
		})
	}

	return
}
