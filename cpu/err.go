package cpu

import (
	"errors"

	"github.com/ezrec/s16vm/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrStackOverflow  = errors.New(f("stack overflow"))
	ErrNotImplemented = errors.New(f("instruction not implemented"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrImmediateRange     = errors.New(f("immediate out of range"))
	ErrOffsetRange        = errors.New(f("jump offset out of range"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrInvalidRType is an R-type word with an unknown opcode/funct pair.
type ErrInvalidRType struct {
	Opcode uint8
	Funct  uint8
}

func (err ErrInvalidRType) Error() string {
	return f("invalid r-type OP=0x%X FUNCT=0x%X", err.Opcode, err.Funct)
}

func (err ErrInvalidRType) Is(target error) (ok bool) {
	_, ok = target.(ErrInvalidRType)
	return
}

// ErrInvalidIType is an I-type word with an unknown opcode.
type ErrInvalidIType uint8

func (err ErrInvalidIType) Error() string {
	return f("invalid i-type OP=0x%X", uint8(err))
}

func (err ErrInvalidIType) Is(target error) (ok bool) {
	_, ok = target.(ErrInvalidIType)
	return
}

// ErrInvalidJType is a J-type word with an unknown opcode.
type ErrInvalidJType uint8

func (err ErrInvalidJType) Error() string {
	return f("invalid j-type OP=0x%X", uint8(err))
}

func (err ErrInvalidJType) Is(target error) (ok bool) {
	_, ok = target.(ErrInvalidJType)
	return
}

// ErrInvalidEType is an E-type word with an unknown subcode.
type ErrInvalidEType uint8

func (err ErrInvalidEType) Error() string {
	return f("invalid e-type SUB=0x%X", uint8(err))
}

func (err ErrInvalidEType) Is(target error) (ok bool) {
	_, ok = target.(ErrInvalidEType)
	return
}

// ErrInvalidRegister is a general register index outside of r0-r7.
type ErrInvalidRegister uint8

func (err ErrInvalidRegister) Error() string {
	return f("register must be 0-7, given %v", uint8(err))
}

func (err ErrInvalidRegister) Is(target error) (ok bool) {
	_, ok = target.(ErrInvalidRegister)
	return
}

// ErrInvalidSpecialRegister is a special register selector outside of pc, sp, flags.
type ErrInvalidSpecialRegister uint8

func (err ErrInvalidSpecialRegister) Error() string {
	return f("special register must be 0-2, given %v", uint8(err))
}

func (err ErrInvalidSpecialRegister) Is(target error) (ok bool) {
	_, ok = target.(ErrInvalidSpecialRegister)
	return
}

// ErrInvalidInstruction is a fetched word that could not be decoded.
type ErrInvalidInstruction struct {
	Word Word
	Err  error
}

func (err ErrInvalidInstruction) Error() string {
	return f("invalid instruction 0x%04X: %v", uint16(err.Word), err.Err)
}

func (err ErrInvalidInstruction) Unwrap() error {
	return err.Err
}

// ErrProgramBounds is a fetch outside of the loaded program.
type ErrProgramBounds struct {
	Pc   uint16 // Address of the fetch.
	End  uint16 // End of the instruction, saturated at 0xffff.
	Low  uint16 // Start of the program.
	High uint16 // End of the program (exclusive).
}

func (err ErrProgramBounds) Error() string {
	return f("program bounds violation: pc 0x%04X..0x%04X outside [0x%04X, 0x%04X)", err.Pc, err.End, err.Low, err.High)
}

func (err ErrProgramBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrProgramBounds)
	return
}

// ErrProgramSize is a program that does not fit in memory at its load address.
type ErrProgramSize struct {
	Start uint16
	Size  int
}

func (err ErrProgramSize) Error() string {
	return f("program of %v bytes does not fit at 0x%04X", err.Size, err.Start)
}

func (err ErrProgramSize) Is(target error) (ok bool) {
	_, ok = target.(ErrProgramSize)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrRegisterName string

func (err ErrRegisterName) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrSpecialName string

func (err ErrSpecialName) Error() string {
	return f("'%v' is not a special register", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
