package cpu

import (
	"fmt"
)

// WordClass is the layout of an instruction word.
type WordClass int

//go:generate go tool stringer -linecomment -type=WordClass
const (
	WORD_R = WordClass(0) // R
	WORD_I = WordClass(1) // I
	WORD_J = WordClass(2) // J
	WORD_E = WordClass(3) // E
)

// Opcode ranges of each word class. The ranges cover every opcode nibble.
const (
	OPCODE_R_LAST = 0x1 // R-type: 0x0 - 0x1
	OPCODE_I_LAST = 0x8 // I-type: 0x2 - 0x8
	OPCODE_J_LAST = 0xe // J-type: 0x9 - 0xe
	OPCODE_E      = 0xf // E-type: 0xf
)

// Field positions.
const (
	OPCODE_SHIFT  = 12
	RD_SHIFT      = 9
	RS_SHIFT      = 6
	RT_SHIFT      = 3
	SUBCODE_SHIFT = 8
	E_RS_SHIFT    = 5
	E_RT_SHIFT    = 2

	REG_MASK     = 0x7
	FUNCT_MASK   = 0x7
	IMM_MASK     = 0x1ff
	OFFSET_MASK  = 0xfff
	OFFSET_SIGN  = 0x800
	SUBCODE_MASK = 0xf

	OFFSET_MIN = -0x800
	OFFSET_MAX = 0x7ff
)

// Word is a single 16-bit instruction word.
type Word uint16

// SignExtend12 converts a 12-bit two's complement value to an int16.
func SignExtend12(value uint16) int16 {
	value &= OFFSET_MASK
	if (value & OFFSET_SIGN) != 0 {
		value |= ^uint16(OFFSET_MASK)
	}
	return int16(value)
}

// MakeWordR encodes a register-register word.
func MakeWordR(opcode, rd, rs, rt, funct uint8) Word {
	return Word((uint16(opcode&0xf) << OPCODE_SHIFT) |
		(uint16(rd&REG_MASK) << RD_SHIFT) |
		(uint16(rs&REG_MASK) << RS_SHIFT) |
		(uint16(rt&REG_MASK) << RT_SHIFT) |
		uint16(funct&FUNCT_MASK))
}

// MakeWordI encodes an immediate word.
func MakeWordI(opcode, rt uint8, imm uint16) Word {
	return Word((uint16(opcode&0xf) << OPCODE_SHIFT) |
		(uint16(rt&REG_MASK) << RD_SHIFT) |
		(imm & IMM_MASK))
}

// MakeWordJ encodes a jump word. Only the low 12 bits of offset are kept.
func MakeWordJ(opcode uint8, offset int16) Word {
	return Word((uint16(opcode&0xf) << OPCODE_SHIFT) |
		(uint16(offset) & OFFSET_MASK))
}

// MakeWordE encodes an extended word.
func MakeWordE(subcode, rs, rt uint8) Word {
	return Word((uint16(OPCODE_E) << OPCODE_SHIFT) |
		(uint16(subcode&SUBCODE_MASK) << SUBCODE_SHIFT) |
		(uint16(rs&REG_MASK) << E_RS_SHIFT) |
		(uint16(rt&REG_MASK) << E_RT_SHIFT))
}

// Opcode returns the opcode nibble.
func (w Word) Opcode() uint8 {
	return uint8(w >> OPCODE_SHIFT)
}

// Class returns the layout of the word.
func (w Word) Class() WordClass {
	switch op := w.Opcode(); {
	case op <= OPCODE_R_LAST:
		return WORD_R
	case op <= OPCODE_I_LAST:
		return WORD_I
	case op <= OPCODE_J_LAST:
		return WORD_J
	default:
		return WORD_E
	}
}

// RDecode decodes the fields of an R-type word.
func (w Word) RDecode() (opcode, rd, rs, rt, funct uint8) {
	word := uint16(w)
	opcode = w.Opcode()
	rd = uint8((word >> RD_SHIFT) & REG_MASK)
	rs = uint8((word >> RS_SHIFT) & REG_MASK)
	rt = uint8((word >> RT_SHIFT) & REG_MASK)
	funct = uint8(word & FUNCT_MASK)
	return
}

// IDecode decodes the fields of an I-type word.
func (w Word) IDecode() (opcode, rt uint8, imm uint16) {
	word := uint16(w)
	opcode = w.Opcode()
	rt = uint8((word >> RD_SHIFT) & REG_MASK)
	imm = word & IMM_MASK
	return
}

// JDecode decodes the fields of a J-type word, sign extending the offset.
func (w Word) JDecode() (opcode uint8, offset int16) {
	opcode = w.Opcode()
	offset = SignExtend12(uint16(w))
	return
}

// EDecode decodes the fields of an E-type word.
func (w Word) EDecode() (subcode, rs, rt uint8) {
	word := uint16(w)
	subcode = uint8((word >> SUBCODE_SHIFT) & SUBCODE_MASK)
	rs = uint8((word >> E_RS_SHIFT) & REG_MASK)
	rt = uint8((word >> E_RT_SHIFT) & REG_MASK)
	return
}

// Rd returns the destination register field of an R-type word.
func (w Word) Rd() (rd uint8, ok bool) {
	if w.Class() == WORD_R {
		_, rd, _, _, _ = w.RDecode()
		ok = true
	}
	return
}

// Rs returns the rs field of an R-type or E-type word.
func (w Word) Rs() (rs uint8, ok bool) {
	switch w.Class() {
	case WORD_R:
		_, _, rs, _, _ = w.RDecode()
		ok = true
	case WORD_E:
		_, rs, _ = w.EDecode()
		ok = true
	}
	return
}

// Rt returns the rt field of an R-type, I-type or E-type word.
func (w Word) Rt() (rt uint8, ok bool) {
	switch w.Class() {
	case WORD_R:
		_, _, _, rt, _ = w.RDecode()
		ok = true
	case WORD_I:
		_, rt, _ = w.IDecode()
		ok = true
	case WORD_E:
		_, _, rt = w.EDecode()
		ok = true
	}
	return
}

// Funct returns the function field of an R-type word.
func (w Word) Funct() (funct uint8, ok bool) {
	if w.Class() == WORD_R {
		_, _, _, _, funct = w.RDecode()
		ok = true
	}
	return
}

// Immediate returns the 9-bit immediate field of an I-type word.
func (w Word) Immediate() (imm uint16, ok bool) {
	if w.Class() == WORD_I {
		_, _, imm = w.IDecode()
		ok = true
	}
	return
}

// Offset returns the sign-extended offset of a J-type word.
func (w Word) Offset() (offset int16, ok bool) {
	if w.Class() == WORD_J {
		_, offset = w.JDecode()
		ok = true
	}
	return
}

// Subcode returns the subcode field of an E-type word.
func (w Word) Subcode() (subcode uint8, ok bool) {
	if w.Class() == WORD_E {
		subcode, _, _ = w.EDecode()
		ok = true
	}
	return
}

// String returns the word layout and its fields.
func (w Word) String() (out string) {
	switch w.Class() {
	case WORD_R:
		opcode, rd, rs, rt, funct := w.RDecode()
		out = fmt.Sprintf("R{op:%#x rd:%d rs:%d rt:%d funct:%#x}", opcode, rd, rs, rt, funct)
	case WORD_I:
		opcode, rt, imm := w.IDecode()
		out = fmt.Sprintf("I{op:%#x rt:%d imm:%#x}", opcode, rt, imm)
	case WORD_J:
		opcode, offset := w.JDecode()
		out = fmt.Sprintf("J{op:%#x offset:%d}", opcode, offset)
	case WORD_E:
		subcode, rs, rt := w.EDecode()
		out = fmt.Sprintf("E{sub:%#x rs:%d rt:%d}", subcode, rs, rt)
	}

	return
}
