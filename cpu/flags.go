package cpu

import (
	"fmt"
)

// Packed flag register bits.
const (
	FLAG_ZERO     = uint16(1 << 0) // Z
	FLAG_CARRY    = uint16(1 << 1) // C
	FLAG_NEGATIVE = uint16(1 << 2) // N
	FLAG_OVERFLOW = uint16(1 << 3) // V
	FLAG_MASK     = FLAG_ZERO | FLAG_CARRY | FLAG_NEGATIVE | FLAG_OVERFLOW

	SIGN_BIT = uint16(0x8000)
)

// Flags are the condition flags of the CPU.
type Flags struct {
	Zero     bool
	Negative bool
	Carry    bool
	Overflow bool
}

func bit(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// Bits returns the packed form of the flags.
func (fl Flags) Bits() uint16 {
	return bit(fl.Zero)*FLAG_ZERO |
		bit(fl.Carry)*FLAG_CARRY |
		bit(fl.Negative)*FLAG_NEGATIVE |
		bit(fl.Overflow)*FLAG_OVERFLOW
}

// SetBits unpacks the low 4 bits of value into the flags.
func (fl *Flags) SetBits(value uint16) {
	fl.Zero = (value & FLAG_ZERO) != 0
	fl.Carry = (value & FLAG_CARRY) != 0
	fl.Negative = (value & FLAG_NEGATIVE) != 0
	fl.Overflow = (value & FLAG_OVERFLOW) != 0
}

// String returns the flags as [Z:z C:c N:n V:v].
func (fl Flags) String() string {
	return fmt.Sprintf("[Z:%d C:%d N:%d V:%d]", bit(fl.Zero), bit(fl.Carry), bit(fl.Negative), bit(fl.Overflow))
}

// overflow returns the signed overflow of a +/- b = result.
func overflow(a, b, result uint16, subtract bool) bool {
	a_sign := (a & SIGN_BIT) != 0
	b_sign := (b & SIGN_BIT) != 0
	r_sign := (result & SIGN_BIT) != 0

	if subtract {
		// positive - negative = negative, or negative - positive = positive
		return (!a_sign && b_sign && r_sign) || (a_sign && !b_sign && !r_sign)
	}

	// positive + positive = negative, or negative + negative = positive
	return (!a_sign && !b_sign && r_sign) || (a_sign && b_sign && !r_sign)
}

// setArithmetic updates all flags after an add, subtract or compare.
func (fl *Flags) setArithmetic(a, b, result uint16, carry bool, subtract bool) {
	fl.Zero = result == 0
	fl.Negative = (result & SIGN_BIT) != 0
	fl.Carry = carry
	fl.Overflow = overflow(a, b, result, subtract)
}

// setLogical updates the flags after a bitwise operation.
func (fl *Flags) setLogical(result uint16) {
	fl.Zero = result == 0
	fl.Negative = (result & SIGN_BIT) != 0
	fl.Carry = false
	fl.Overflow = false
}

// setShift updates the flags after a shift, with carry as the last bit
// shifted out.
func (fl *Flags) setShift(result uint16, carry bool) {
	fl.Zero = result == 0
	fl.Negative = (result & SIGN_BIT) != 0
	fl.Carry = carry
	fl.Overflow = false
}
