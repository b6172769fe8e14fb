package cpu

// Execute executes a single decoded instruction. An Op outside of the
// instruction set returns ErrInstructionInvalid, and its registers must be
// ones the decoder can produce.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	regs := &cpu.regs

	switch ins.Op {
	case OP_ADD:
		regs.Set(ins.Rd, cpu.add(regs.Get(ins.Rs), regs.Get(ins.Rt)))
	case OP_SUB:
		regs.Set(ins.Rd, cpu.sub(regs.Get(ins.Rs), regs.Get(ins.Rt)))
	case OP_AND, OP_OR, OP_XOR:
		regs.Set(ins.Rd, cpu.logical(ins.Op, regs.Get(ins.Rs), regs.Get(ins.Rt)))
	case OP_NOT:
		// The operand is r0, not rt: the result is always 0xffff.
		regs.Set(ins.Rd, cpu.logical(OP_NOT, regs.Get(REG_R0), regs.Get(ins.Rt)))
	case OP_SHL, OP_SHR:
		cpu.shift(ins.Op, ins.Rd, regs.Get(ins.Rs), regs.Get(ins.Rt))
	case OP_LDI:
		// The address is the number of rs, not its contents.
		var value uint16
		value, err = cpu.mem.ReadWord(uint16(ins.Rs))
		if err != nil {
			return
		}
		regs.Set(ins.Rd, value)
	case OP_STI:
		err = cpu.mem.WriteWord(uint16(ins.Rs), regs.Get(ins.Rd))
	case OP_CMP:
		cpu.sub(regs.Get(ins.Rs), regs.Get(ins.Rt))
	case OP_RET:
		err = cpu.pop(REG_PC)
	case OP_PUSH:
		err = cpu.push(regs.Get(ins.Rs))
	case OP_POP:
		err = cpu.pop(ins.Rd)
	case OP_ADDI:
		regs.Set(ins.Rt, cpu.add(regs.Get(ins.Rt), ins.SignedImm()))
	case OP_ANDI:
		regs.Set(ins.Rt, cpu.logical(OP_AND, regs.Get(ins.Rt), uint16(ins.Imm)))
	case OP_ORI:
		op := OP_OR
		if cpu.QuirkOrImmediate {
			op = OP_AND
		}
		regs.Set(ins.Rt, cpu.logical(op, regs.Get(ins.Rt), uint16(ins.Imm)))
	case OP_LUI:
		regs.Set(ins.Rt, uint16(ins.Imm)<<8)
	case OP_CMPI:
		cpu.sub(regs.Get(ins.Rt), ins.SignedImm())
	case OP_LD:
		var value uint16
		value, err = cpu.mem.ReadWord(uint16(ins.Imm))
		if err != nil {
			return
		}
		regs.Set(ins.Rt, value)
	case OP_ST:
		err = cpu.mem.WriteWord(uint16(ins.Imm), regs.Get(ins.Rt))
	case OP_JUMP:
		err = cpu.jump(ins.Jump, ins.Offset)
	case OP_MOVFS:
		regs.Set(ins.Rt, regs.Get(ins.Special))
	case OP_MOVTS:
		regs.Set(ins.Special, regs.Get(ins.Rt))
	case OP_NOP:
		// nothing
	case OP_HALT:
		cpu.halted = true
	case OP_SYSALL:
		err = ErrNotImplemented
	default:
		err = ErrInstructionInvalid
	}

	return
}

// add returns a + b, updating all flags.
func (cpu *Cpu) add(a, b uint16) (result uint16) {
	sum := uint32(a) + uint32(b)
	result = uint16(sum)
	cpu.regs.flags.setArithmetic(a, b, result, sum > 0xffff, false)
	return
}

// sub returns a - b, updating all flags. Carry is the borrow.
func (cpu *Cpu) sub(a, b uint16) (result uint16) {
	result = a - b
	cpu.regs.flags.setArithmetic(a, b, result, a < b, true)
	return
}

// logical performs a bitwise operation, updating Z and N and clearing C and V.
func (cpu *Cpu) logical(op Op, a, b uint16) (result uint16) {
	switch op {
	case OP_AND:
		result = a & b
	case OP_OR:
		result = a | b
	case OP_XOR:
		result = a ^ b
	case OP_NOT:
		result = ^a
	}

	cpu.regs.flags.setLogical(result)
	return
}

// shift shifts value by the low 4 bits of amount into rd. A zero amount
// copies value into rd and leaves the flags untouched.
func (cpu *Cpu) shift(op Op, rd Register, value, amount uint16) {
	amount &= 0xf

	if amount == 0 {
		cpu.regs.Set(rd, value)
		return
	}

	var result uint16
	var out uint16
	switch op {
	case OP_SHL:
		result = value << amount
		out = (value >> (16 - amount)) & 1
	case OP_SHR:
		result = value >> amount
		out = (value >> (amount - 1)) & 1
	}

	cpu.regs.Set(rd, result)
	cpu.regs.flags.setShift(result, out == 1)
}

// jump moves pc by offset when the jump condition holds. Calls push the
// return address (the word after the call) first.
func (cpu *Cpu) jump(kind JumpKind, offset int16) (err error) {
	fl := cpu.regs.flags

	var taken bool
	switch kind {
	case JUMP_CALL:
		err = cpu.push(cpu.regs.pc)
		if err != nil {
			return
		}
		taken = true
	case JUMP_ALWAYS:
		taken = true
	case JUMP_ZERO:
		taken = fl.Zero
	case JUMP_NOT_ZERO:
		taken = !fl.Zero
	case JUMP_GREATER:
		taken = !fl.Zero && fl.Negative == fl.Overflow
	}

	if taken {
		cpu.regs.pc += uint16(offset)
	}

	return
}
