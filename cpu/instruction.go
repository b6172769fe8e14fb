package cpu

import (
	"fmt"
)

// Op is an instruction operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD    = Op(0)  // add
	OP_SUB    = Op(1)  // sub
	OP_AND    = Op(2)  // and
	OP_OR     = Op(3)  // or
	OP_XOR    = Op(4)  // xor
	OP_NOT    = Op(5)  // not
	OP_SHL    = Op(6)  // shl
	OP_SHR    = Op(7)  // shr
	OP_LDI    = Op(8)  // ldi
	OP_STI    = Op(9)  // sti
	OP_CMP    = Op(10) // cmp
	OP_RET    = Op(11) // ret
	OP_PUSH   = Op(12) // push
	OP_POP    = Op(13) // pop
	OP_ADDI   = Op(14) // addi
	OP_ANDI   = Op(15) // andi
	OP_ORI    = Op(16) // ori
	OP_LUI    = Op(17) // lui
	OP_CMPI   = Op(18) // cmpi
	OP_LD     = Op(19) // ld
	OP_ST     = Op(20) // st
	OP_JUMP   = Op(21) // jump
	OP_MOVFS  = Op(22) // movfs
	OP_MOVTS  = Op(23) // movts
	OP_NOP    = Op(24) // nop
	OP_HALT   = Op(25) // halt
	OP_SYSALL = Op(26) // sysall
)

// JumpKind is the condition of a jump instruction.
type JumpKind int

//go:generate go tool stringer -linecomment -type=JumpKind
const (
	JUMP_CALL     = JumpKind(0) // call
	JUMP_ALWAYS   = JumpKind(1) // jmp
	JUMP_ZERO     = JumpKind(2) // jz
	JUMP_NOT_ZERO = JumpKind(3) // jnz
	JUMP_GREATER  = JumpKind(4) // jgt
)

// R-type opcodes and function codes.
const (
	OPCODE_ALU   = 0x0
	FUNCT_ADD    = 0x0
	FUNCT_SUB    = 0x1
	FUNCT_AND    = 0x2
	FUNCT_OR     = 0x3
	FUNCT_XOR    = 0x4
	FUNCT_NOT    = 0x5
	FUNCT_SHL    = 0x6
	FUNCT_SHR    = 0x7
	OPCODE_STACK = 0x1
	FUNCT_LDI    = 0x0
	FUNCT_STI    = 0x1
	FUNCT_CMP    = 0x2
	FUNCT_RET    = 0x3
	FUNCT_PUSH   = 0x4
	FUNCT_POP    = 0x5
)

// I-type opcodes.
const (
	OPCODE_LD   = 0x2
	OPCODE_ST   = 0x3
	OPCODE_ADDI = 0x4
	OPCODE_ANDI = 0x5
	OPCODE_ORI  = 0x6
	OPCODE_LUI  = 0x7
	OPCODE_CMPI = 0x8
)

// J-type opcodes.
const (
	OPCODE_CALL = 0x9
	OPCODE_JMP  = 0xa
	OPCODE_JZ   = 0xb
	OPCODE_JNZ  = 0xc
	OPCODE_JGT  = 0xd
)

// E-type subcodes.
const (
	SUBCODE_NOP    = 0x0
	SUBCODE_MOVFS  = 0x1
	SUBCODE_MOVTS  = 0x2
	SUBCODE_SYSALL = 0xe
	SUBCODE_HALT   = 0xf
)

// Instruction is a decoded instruction with validated operands.
//
// Operand use by operation:
//   - add, sub, and, or, xor, shl, shr: Rd, Rs, Rt
//   - not: Rd, Rt
//   - ldi, sti: Rd, Rs
//   - cmp: Rs, Rt
//   - push: Rs; pop: Rd
//   - addi, andi, ori, lui, cmpi, ld, st: Rt, Imm
//   - jump: Jump, Offset
//   - movfs, movts: Rt, Special
type Instruction struct {
	Op      Op
	Rd      Register
	Rs      Register
	Rt      Register
	Imm     uint8
	Jump    JumpKind
	Offset  int16
	Special Register
}

// SignedImm returns the immediate as a sign-extended 16-bit value.
func (ins Instruction) SignedImm() uint16 {
	return uint16(int16(int8(ins.Imm)))
}

// decodeRegs resolves the three R-type register fields.
func decodeRegs(rd, rs, rt uint8) (d, s, t Register, err error) {
	d, err = RegisterFromIndex(rd)
	if err != nil {
		return
	}
	s, err = RegisterFromIndex(rs)
	if err != nil {
		return
	}
	t, err = RegisterFromIndex(rt)
	return
}

// DecodeInstruction decodes a word into an instruction.
func DecodeInstruction(w Word) (ins Instruction, err error) {
	switch w.Class() {
	case WORD_R:
		opcode, rd, rs, rt, funct := w.RDecode()
		ins.Rd, ins.Rs, ins.Rt, err = decodeRegs(rd, rs, rt)
		if err != nil {
			return
		}
		switch {
		case opcode == OPCODE_ALU && funct == FUNCT_ADD:
			ins.Op = OP_ADD
		case opcode == OPCODE_ALU && funct == FUNCT_SUB:
			ins.Op = OP_SUB
		case opcode == OPCODE_ALU && funct == FUNCT_AND:
			ins.Op = OP_AND
		case opcode == OPCODE_ALU && funct == FUNCT_OR:
			ins.Op = OP_OR
		case opcode == OPCODE_ALU && funct == FUNCT_XOR:
			ins.Op = OP_XOR
		case opcode == OPCODE_ALU && funct == FUNCT_NOT:
			ins = Instruction{Op: OP_NOT, Rd: ins.Rd, Rt: ins.Rt}
		case opcode == OPCODE_ALU && funct == FUNCT_SHL:
			ins.Op = OP_SHL
		case opcode == OPCODE_ALU && funct == FUNCT_SHR:
			ins.Op = OP_SHR
		case opcode == OPCODE_STACK && funct == FUNCT_LDI:
			ins = Instruction{Op: OP_LDI, Rd: ins.Rd, Rs: ins.Rs}
		case opcode == OPCODE_STACK && funct == FUNCT_STI:
			ins = Instruction{Op: OP_STI, Rd: ins.Rd, Rs: ins.Rs}
		case opcode == OPCODE_STACK && funct == FUNCT_CMP:
			ins = Instruction{Op: OP_CMP, Rs: ins.Rs, Rt: ins.Rt}
		case opcode == OPCODE_STACK && funct == FUNCT_RET:
			ins = Instruction{Op: OP_RET}
		case opcode == OPCODE_STACK && funct == FUNCT_PUSH:
			ins = Instruction{Op: OP_PUSH, Rs: ins.Rs}
		case opcode == OPCODE_STACK && funct == FUNCT_POP:
			ins = Instruction{Op: OP_POP, Rd: ins.Rd}
		default:
			ins = Instruction{}
			err = ErrInvalidRType{Opcode: opcode, Funct: funct}
		}
	case WORD_I:
		opcode, rt, imm := w.IDecode()
		ins.Rt, err = RegisterFromIndex(rt)
		if err != nil {
			return
		}
		ins.Imm = uint8(imm)
		switch opcode {
		case OPCODE_LD:
			ins.Op = OP_LD
		case OPCODE_ST:
			ins.Op = OP_ST
		case OPCODE_ADDI:
			ins.Op = OP_ADDI
		case OPCODE_ANDI:
			ins.Op = OP_ANDI
		case OPCODE_ORI:
			ins.Op = OP_ORI
		case OPCODE_LUI:
			ins.Op = OP_LUI
		case OPCODE_CMPI:
			ins.Op = OP_CMPI
		default:
			ins = Instruction{}
			err = ErrInvalidIType(opcode)
		}
	case WORD_J:
		opcode, offset := w.JDecode()
		ins.Op = OP_JUMP
		ins.Offset = offset
		switch opcode {
		case OPCODE_CALL:
			ins.Jump = JUMP_CALL
		case OPCODE_JMP:
			ins.Jump = JUMP_ALWAYS
		case OPCODE_JZ:
			ins.Jump = JUMP_ZERO
		case OPCODE_JNZ:
			ins.Jump = JUMP_NOT_ZERO
		case OPCODE_JGT:
			ins.Jump = JUMP_GREATER
		default:
			ins = Instruction{}
			err = ErrInvalidJType(opcode)
		}
	case WORD_E:
		subcode, rs, rt := w.EDecode()
		switch subcode {
		case SUBCODE_NOP:
			ins.Op = OP_NOP
		case SUBCODE_SYSALL:
			ins.Op = OP_SYSALL
		case SUBCODE_HALT:
			ins.Op = OP_HALT
		case SUBCODE_MOVFS:
			// rs: destination register, rt: source selector
			ins.Op = OP_MOVFS
			ins.Rt, err = RegisterFromIndex(rs)
			if err == nil {
				ins.Special, err = SpecialFromSelector(rt)
			}
		case SUBCODE_MOVTS:
			// rs: destination selector, rt: source register
			ins.Op = OP_MOVTS
			ins.Rt, err = RegisterFromIndex(rt)
			if err == nil {
				ins.Special, err = SpecialFromSelector(rs)
			}
		default:
			err = ErrInvalidEType(subcode)
		}
		if err != nil {
			ins = Instruction{}
		}
	}

	return
}

// general returns the register index of a general register.
func general(reg Register) (index uint8, err error) {
	if !reg.General() {
		err = ErrInvalidRegister(reg)
		return
	}

	index = uint8(reg)
	return
}

// Encode encodes the instruction into its instruction word.
func (ins Instruction) Encode() (w Word, err error) {
	var rd, rs, rt uint8

	switch ins.Op {
	case OP_ADD, OP_SUB, OP_AND, OP_OR, OP_XOR, OP_NOT, OP_SHL, OP_SHR,
		OP_LDI, OP_STI, OP_CMP, OP_RET, OP_PUSH, OP_POP:
		if rd, err = general(ins.Rd); err != nil {
			return
		}
		if rs, err = general(ins.Rs); err != nil {
			return
		}
		if rt, err = general(ins.Rt); err != nil {
			return
		}
	case OP_ADDI, OP_ANDI, OP_ORI, OP_LUI, OP_CMPI, OP_LD, OP_ST, OP_MOVFS, OP_MOVTS:
		if rt, err = general(ins.Rt); err != nil {
			return
		}
	}

	rOp := func(opcode, funct uint8) Word { return MakeWordR(opcode, rd, rs, rt, funct) }
	iOp := func(opcode uint8) Word { return MakeWordI(opcode, rt, uint16(ins.Imm)) }

	switch ins.Op {
	case OP_ADD:
		w = rOp(OPCODE_ALU, FUNCT_ADD)
	case OP_SUB:
		w = rOp(OPCODE_ALU, FUNCT_SUB)
	case OP_AND:
		w = rOp(OPCODE_ALU, FUNCT_AND)
	case OP_OR:
		w = rOp(OPCODE_ALU, FUNCT_OR)
	case OP_XOR:
		w = rOp(OPCODE_ALU, FUNCT_XOR)
	case OP_NOT:
		w = rOp(OPCODE_ALU, FUNCT_NOT)
	case OP_SHL:
		w = rOp(OPCODE_ALU, FUNCT_SHL)
	case OP_SHR:
		w = rOp(OPCODE_ALU, FUNCT_SHR)
	case OP_LDI:
		w = rOp(OPCODE_STACK, FUNCT_LDI)
	case OP_STI:
		w = rOp(OPCODE_STACK, FUNCT_STI)
	case OP_CMP:
		w = rOp(OPCODE_STACK, FUNCT_CMP)
	case OP_RET:
		w = rOp(OPCODE_STACK, FUNCT_RET)
	case OP_PUSH:
		w = rOp(OPCODE_STACK, FUNCT_PUSH)
	case OP_POP:
		w = rOp(OPCODE_STACK, FUNCT_POP)
	case OP_LD:
		w = iOp(OPCODE_LD)
	case OP_ST:
		w = iOp(OPCODE_ST)
	case OP_ADDI:
		w = iOp(OPCODE_ADDI)
	case OP_ANDI:
		w = iOp(OPCODE_ANDI)
	case OP_ORI:
		w = iOp(OPCODE_ORI)
	case OP_LUI:
		w = iOp(OPCODE_LUI)
	case OP_CMPI:
		w = iOp(OPCODE_CMPI)
	case OP_JUMP:
		if ins.Offset < OFFSET_MIN || ins.Offset > OFFSET_MAX {
			err = ErrOffsetRange
			return
		}
		var opcode uint8
		switch ins.Jump {
		case JUMP_CALL:
			opcode = OPCODE_CALL
		case JUMP_ALWAYS:
			opcode = OPCODE_JMP
		case JUMP_ZERO:
			opcode = OPCODE_JZ
		case JUMP_NOT_ZERO:
			opcode = OPCODE_JNZ
		case JUMP_GREATER:
			opcode = OPCODE_JGT
		default:
			err = ErrInstructionInvalid
			return
		}
		w = MakeWordJ(opcode, ins.Offset)
	case OP_MOVFS:
		var sel uint8
		if sel, err = ins.Special.Selector(); err != nil {
			return
		}
		w = MakeWordE(SUBCODE_MOVFS, rt, sel)
	case OP_MOVTS:
		var sel uint8
		if sel, err = ins.Special.Selector(); err != nil {
			return
		}
		w = MakeWordE(SUBCODE_MOVTS, sel, rt)
	case OP_NOP:
		w = MakeWordE(SUBCODE_NOP, 0, 0)
	case OP_SYSALL:
		w = MakeWordE(SUBCODE_SYSALL, 0, 0)
	case OP_HALT:
		w = MakeWordE(SUBCODE_HALT, 0, 0)
	default:
		err = ErrInstructionInvalid
	}

	return
}

// String returns the assembly language form of the instruction.
func (ins Instruction) String() (out string) {
	switch ins.Op {
	case OP_ADD, OP_SUB, OP_AND, OP_OR, OP_XOR, OP_SHL, OP_SHR:
		out = fmt.Sprintf("%v %v, %v, %v", ins.Op, ins.Rd, ins.Rs, ins.Rt)
	case OP_NOT:
		out = fmt.Sprintf("%v %v, %v", ins.Op, ins.Rd, ins.Rt)
	case OP_LDI, OP_STI:
		out = fmt.Sprintf("%v %v, %v", ins.Op, ins.Rd, ins.Rs)
	case OP_CMP:
		out = fmt.Sprintf("%v %v, %v", ins.Op, ins.Rs, ins.Rt)
	case OP_PUSH:
		out = fmt.Sprintf("%v %v", ins.Op, ins.Rs)
	case OP_POP:
		out = fmt.Sprintf("%v %v", ins.Op, ins.Rd)
	case OP_ADDI, OP_CMPI:
		out = fmt.Sprintf("%v %v, %d", ins.Op, ins.Rt, int8(ins.Imm))
	case OP_ANDI, OP_ORI, OP_LUI:
		out = fmt.Sprintf("%v %v, 0x%02x", ins.Op, ins.Rt, ins.Imm)
	case OP_LD, OP_ST:
		out = fmt.Sprintf("%v %v, [0x%02x]", ins.Op, ins.Rt, ins.Imm)
	case OP_JUMP:
		out = fmt.Sprintf("%v %+d", ins.Jump, ins.Offset)
	case OP_MOVFS:
		out = fmt.Sprintf("%v %v, %v", ins.Op, ins.Rt, ins.Special)
	case OP_MOVTS:
		out = fmt.Sprintf("%v %v, %v", ins.Op, ins.Special, ins.Rt)
	default:
		out = ins.Op.String()
	}

	return
}
