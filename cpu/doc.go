// Package cpu implements the s16 processor, its instruction set, and an
// assembler for it.
//
// The CPU has eight 16-bit general-purpose registers (r0-r7, with r0 hardwired
// to zero), a program counter (pc), a stack pointer (sp), and a 4-bit flags
// register (Z, C, N, V). It executes 16-bit instruction words from a 64KB
// little-endian memory, one word per step, and refuses to fetch outside the
// bounds of the loaded program.
//
// Instruction words come in four layouts, selected by the top nibble:
//
//	R-type  opcode 0x0-0x1  | opcode:4 | rd:3 | rs:3 | rt:3 | funct:3 |
//	I-type  opcode 0x2-0x8  | opcode:4 | rt:3 | imm:9               |
//	J-type  opcode 0x9-0xE  | opcode:4 | offset:12                  |
//	E-type  opcode 0xF      | 0xF:4 | subcode:4 | rs:3 | rt:3 | -:2 |
//
// The assembler provides a small assembly language for the instruction set,
// supporting macros, labels, equates, and compile-time expression evaluation.
package cpu
