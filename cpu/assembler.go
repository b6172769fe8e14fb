// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass macro assembler for the s16 instruction set.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of jump labels to byte offsets.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	expansion int // Count of macro expansions, for local labels.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of general register names.
var regMap = map[string]Register{
	"r0": REG_R0,
	"r1": REG_R1,
	"r2": REG_R2,
	"r3": REG_R3,
	"r4": REG_R4,
	"r5": REG_R5,
	"r6": REG_R6,
	"r7": REG_R7,
}

// specialMap is a map of special register names.
var specialMap = map[string]Register{
	"pc":    REG_PC,
	"sp":    REG_SP,
	"flags": REG_FLAGS,
}

// rrrMap maps the three register ALU operations.
var rrrMap = map[string]Op{
	"add": OP_ADD,
	"sub": OP_SUB,
	"and": OP_AND,
	"or":  OP_OR,
	"xor": OP_XOR,
	"shl": OP_SHL,
	"shr": OP_SHR,
}

// immMap maps the register and immediate operations.
var immMap = map[string]Op{
	"addi": OP_ADDI,
	"andi": OP_ANDI,
	"ori":  OP_ORI,
	"lui":  OP_LUI,
	"cmpi": OP_CMPI,
	"ld":   OP_LD,
	"st":   OP_ST,
}

// jumpMap maps the jump operations.
var jumpMap = map[string]JumpKind{
	"call": JUMP_CALL,
	"jmp":  JUMP_ALWAYS,
	"jz":   JUMP_ZERO,
	"jnz":  JUMP_NOT_ZERO,
	"jgt":  JUMP_GREATER,
}

// bareMap maps the operations without operands.
var bareMap = map[string]Op{
	"ret":    OP_RET,
	"nop":    OP_NOP,
	"halt":   OP_HALT,
	"sysall": OP_SYSALL,
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}
	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}
	if len(word) > 1 && word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(word[1 : len(word)-1])
		return
	}
	value, err = strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if invert {
		value = ^value
	}

	return
}

// register returns the general register named by word.
func (asm *Assembler) register(word string) (reg Register, err error) {
	reg, ok := regMap[strings.ToLower(word)]
	if !ok {
		err = ErrRegisterName(word)
	}
	return
}

// special returns the special register named by word.
func (asm *Assembler) special(word string) (reg Register, err error) {
	reg, ok := specialMap[strings.ToLower(word)]
	if !ok {
		err = ErrSpecialName(word)
	}
	return
}

// imm8 returns an 8-bit immediate, accepting both signed and unsigned forms.
func (asm *Assembler) imm8(word string) (imm uint8, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if value < -0x80 || value > 0xff {
		err = ErrImmediateRange
		return
	}

	imm = uint8(value)
	return
}

// imm16 returns a 16-bit value, accepting both signed and unsigned forms.
func (asm *Assembler) imm16(word string) (imm uint16, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if value < -0x8000 || value > 0xffff {
		err = ErrImmediateRange
		return
	}

	imm = uint16(value)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int64
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// splitWords splits a line on whitespace and commas.
func splitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = splitWords(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		// '@' is unique to each expansion of the macro.
		asm.expansion++
		local := fmt.Sprintf("%v_%v_", name, asm.expansion)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentAddr gets the byte offset of the next generated word.
func (asm *Assembler) currentAddr() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Addr + 2*len(last.Codes)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.expansion = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, _cpu_defines)
	maps.Copy(asm.Equate, asm.predefine)

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		label := op.LinkLabel
		addr, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}
		err = op.link(addr)
		if err != nil {
			return
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// link sets the offset of the last jump word of the opcode to reach the
// byte offset addr.
func (op *Opcode) link(addr int) (err error) {
	if len(op.Codes) < 1 {
		err = ErrInstructionInvalid
		return
	}
	last := len(op.Codes) - 1
	linked := &op.Codes[last]

	// Offsets are relative to the word after the jump.
	offset := addr - (op.Addr + 2*(last+1))
	if offset < OFFSET_MIN || offset > OFFSET_MAX {
		err = ErrOffsetRange
		return
	}
	*linked = MakeWordJ(linked.Opcode(), int16(offset))

	return
}

// operands checks the operand count of an instruction.
func operands(args []string, count int) (err error) {
	switch {
	case len(args) < count:
		err = ErrOpcodeValueMissing
	case len(args) > count:
		err = ErrOpcodeExtraArgs
	}
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []Word
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if len(codes) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Addr: asm.currentAddr(), Words: initial_words, Codes: codes, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	emit := func(ins Instruction) (err error) {
		code, err := ins.Encode()
		if err != nil {
			return
		}
		codes = append(codes, code)
		return
	}

	mnemonic := strings.ToLower(words[0])
	args := words[1:]

	if op, ok := rrrMap[mnemonic]; ok {
		if err = operands(args, 3); err != nil {
			return
		}
		ins := Instruction{Op: op}
		if ins.Rd, err = asm.register(args[0]); err != nil {
			return
		}
		if ins.Rs, err = asm.register(args[1]); err != nil {
			return
		}
		if ins.Rt, err = asm.register(args[2]); err != nil {
			return
		}
		err = emit(ins)
		return
	}

	if op, ok := immMap[mnemonic]; ok {
		if err = operands(args, 2); err != nil {
			return
		}
		ins := Instruction{Op: op}
		if ins.Rt, err = asm.register(args[0]); err != nil {
			return
		}
		if ins.Imm, err = asm.imm8(args[1]); err != nil {
			return
		}
		err = emit(ins)
		return
	}

	if kind, ok := jumpMap[mnemonic]; ok {
		if err = operands(args, 1); err != nil {
			return
		}
		ins := Instruction{Op: OP_JUMP, Jump: kind}
		offset, perr := asm.valueOf(args[0])
		if perr == nil {
			if offset < OFFSET_MIN || offset > OFFSET_MAX {
				err = ErrOffsetRange
				return
			}
			ins.Offset = int16(offset)
		} else {
			// Linked after the whole program is parsed.
			label = args[0]
		}
		err = emit(ins)
		return
	}

	if op, ok := bareMap[mnemonic]; ok {
		if err = operands(args, 0); err != nil {
			return
		}
		err = emit(Instruction{Op: op})
		return
	}

	switch mnemonic {
	case "not":
		if err = operands(args, 2); err != nil {
			return
		}
		ins := Instruction{Op: OP_NOT}
		if ins.Rd, err = asm.register(args[0]); err != nil {
			return
		}
		if ins.Rt, err = asm.register(args[1]); err != nil {
			return
		}
		err = emit(ins)
	case "ldi", "sti":
		if err = operands(args, 2); err != nil {
			return
		}
		ins := Instruction{Op: OP_LDI}
		if mnemonic == "sti" {
			ins.Op = OP_STI
		}
		if ins.Rd, err = asm.register(args[0]); err != nil {
			return
		}
		if ins.Rs, err = asm.register(args[1]); err != nil {
			return
		}
		err = emit(ins)
	case "cmp":
		if err = operands(args, 2); err != nil {
			return
		}
		ins := Instruction{Op: OP_CMP}
		if ins.Rs, err = asm.register(args[0]); err != nil {
			return
		}
		if ins.Rt, err = asm.register(args[1]); err != nil {
			return
		}
		err = emit(ins)
	case "push":
		if err = operands(args, 1); err != nil {
			return
		}
		ins := Instruction{Op: OP_PUSH}
		if ins.Rs, err = asm.register(args[0]); err != nil {
			return
		}
		err = emit(ins)
	case "pop":
		if err = operands(args, 1); err != nil {
			return
		}
		ins := Instruction{Op: OP_POP}
		if ins.Rd, err = asm.register(args[0]); err != nil {
			return
		}
		err = emit(ins)
	case "movfs":
		// movfs rt special
		if err = operands(args, 2); err != nil {
			return
		}
		ins := Instruction{Op: OP_MOVFS}
		if ins.Rt, err = asm.register(args[0]); err != nil {
			return
		}
		if ins.Special, err = asm.special(args[1]); err != nil {
			return
		}
		err = emit(ins)
	case "movts":
		// movts special rt
		if err = operands(args, 2); err != nil {
			return
		}
		ins := Instruction{Op: OP_MOVTS}
		if ins.Special, err = asm.special(args[0]); err != nil {
			return
		}
		if ins.Rt, err = asm.register(args[1]); err != nil {
			return
		}
		err = emit(ins)
	case "li":
		// li rt VALUE => lui rt HI ; addi rt LO
		// The low byte is added sign extended, so the high byte is
		// rounded up when the low byte is negative.
		if err = operands(args, 2); err != nil {
			return
		}
		var rt Register
		if rt, err = asm.register(args[0]); err != nil {
			return
		}
		var value uint16
		if value, err = asm.imm16(args[1]); err != nil {
			return
		}
		lo := uint8(value)
		hi := uint8(value >> 8)
		if lo >= 0x80 {
			hi++
		}
		if err = emit(Instruction{Op: OP_LUI, Rt: rt, Imm: hi}); err != nil {
			return
		}
		err = emit(Instruction{Op: OP_ADDI, Rt: rt, Imm: lo})
	case ".word":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, arg := range args {
			var value uint16
			if value, err = asm.imm16(arg); err != nil {
				return
			}
			codes = append(codes, Word(value))
		}
	default:
		err = ErrInstructionInvalid
	}

	return
}
