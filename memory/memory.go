// Package memory implements the 64KB byte-addressable store of the s16 machine.
//
// Words are little-endian: the low byte lives at the lower address.
package memory

import (
	"encoding/binary"
)

const (
	SIZE      = 0x10000 // Bytes of addressable memory.
	WORD_SIZE = 2       // Bytes per word.
)

// Memory is the flat 64KB address space.
type Memory struct {
	data [SIZE]byte
}

// GetByte returns the byte at addr.
func (mem *Memory) GetByte(addr uint16) byte {
	return mem.data[addr]
}

// SetByte stores a byte at addr. Every 16-bit address is valid.
func (mem *Memory) SetByte(addr uint16, value byte) {
	mem.data[addr] = value
}

// wordBounds checks that a full word starting at addr is addressable.
func wordBounds(addr uint16) (err error) {
	if int(addr)+WORD_SIZE > SIZE {
		err = ErrOutOfBounds(addr)
	}
	return
}

// ReadWord reads the little-endian word at addr.
// Address 0xffff cannot begin a word.
func (mem *Memory) ReadWord(addr uint16) (value uint16, err error) {
	err = wordBounds(addr)
	if err != nil {
		return
	}

	value = binary.LittleEndian.Uint16(mem.data[addr:])
	return
}

// WriteWord writes value as a little-endian word at addr.
// Address 0xffff cannot begin a word.
func (mem *Memory) WriteWord(addr uint16, value uint16) (err error) {
	err = wordBounds(addr)
	if err != nil {
		return
	}

	binary.LittleEndian.PutUint16(mem.data[addr:], value)
	return
}

// Range returns a copy of length bytes starting at start.
// If the range does not fit in the address space, nil is returned; partial
// data is never returned.
func (mem *Memory) Range(start uint16, length int) (data []byte) {
	if length < 0 || int(start)+length > SIZE {
		return
	}

	data = make([]byte, length)
	copy(data, mem.data[int(start):int(start)+length])
	return
}

// Load copies data into memory starting at start. Nothing is written if the
// data does not fit.
func (mem *Memory) Load(start uint16, data []byte) (err error) {
	if int(start)+len(data) > SIZE {
		err = ErrOutOfBounds(uint32(start) + uint32(len(data)))
		return
	}

	copy(mem.data[start:], data)
	return
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem.data[:])
}
