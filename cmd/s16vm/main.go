// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/s16vm/cpu"
	"github.com/ezrec/s16vm/emulator"
	"github.com/ezrec/s16vm/translate"
)

var f = translate.From

// memoryWindow parses a START:LENGTH memory window.
func memoryWindow(window string) (start uint16, length int, err error) {
	start_text, length_text, ok := strings.Cut(window, ":")
	if !ok {
		err = errors.New(f("memory window '%v' is not START:LENGTH", window))
		return
	}

	value, err := strconv.ParseUint(start_text, 0, 16)
	if err != nil {
		return
	}
	start = uint16(value)

	value, err = strconv.ParseUint(length_text, 0, 17)
	if err != nil {
		return
	}
	length = int(value)

	return
}

// disassemble returns the current instruction of the emulator.
func disassemble(emu *emulator.Emulator) string {
	code, err := emu.MemoryWord(emu.Pc())
	if err != nil {
		return err.Error()
	}

	ins, err := cpu.DecodeInstruction(cpu.Word(code))
	if err != nil {
		return err.Error()
	}

	return ins.String()
}

// stepper runs the emulator one keypress at a time on a raw terminal.
func stepper(emu *emulator.Emulator, limit int) (err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		err = errors.New(f("single step mode requires a terminal"))
		return
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer term.Restore(fd, state)

	// Raw mode does not translate newlines.
	crlf := func(text string) string {
		return strings.ReplaceAll(text, "\n", "\r\n")
	}

	fmt.Print("[space] step, [c] continue, [r] registers, [q] quit\r\n")

	key := make([]byte, 1)
	for {
		fmt.Printf("%04x: line %d: %v\r\n", emu.Pc(), emu.LineNo(), disassemble(emu))

		_, err = os.Stdin.Read(key)
		if err != nil {
			return
		}

		switch key[0] {
		case 'q', 3: // ^C
			return
		case 'r':
			fmt.Print(crlf(emu.Cpu.String()))
			continue
		case 'c':
			err = emu.Run(limit)
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}

func main() {
	var compile string
	var binary string
	var origin uint
	var write string
	var ticks int
	var dump bool
	var window string
	var quirk bool
	var step bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s16 file to compile")
	flag.StringVar(&binary, "b", "", "raw binary file to load")
	flag.UintVar(&origin, "o", emulator.ORIGIN, "program load address")
	flag.StringVar(&write, "w", "", "write the program binary to file, do not execute")
	flag.IntVar(&ticks, "t", 1_000_000, "tick limit, 0 for no limit")
	flag.BoolVar(&dump, "d", false, "dump the CPU state after execution")
	flag.StringVar(&window, "m", "", "dump a START:LENGTH memory window after execution")
	flag.BoolVar(&quirk, "q", false, "ori computes a bitwise and")
	flag.BoolVar(&step, "s", false, "single step mode")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if origin > 0xffff {
		log.Fatalf("%v: origin 0x%x out of range", os.Args[0], origin)
	}

	emu := emulator.NewEmulator()
	emu.Origin = uint16(origin)
	emu.Verbose = verbose
	emu.QuirkOrImmediate = quirk

	var prog *cpu.Program

	switch {
	case len(compile) != 0 && len(binary) != 0:
		log.Fatalf("%v: -c and -b are exclusive", os.Args[0])
	case len(compile) != 0:
		// Compile a new instruction stream.
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(binary) != 0:
		data, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		prog = cpu.ProgramFromBinary(data)
	default:
		flag.Usage()
		os.Exit(1)
	}

	if len(write) != 0 {
		err := os.WriteFile(write, prog.Binary(), 0o644)
		if err != nil {
			log.Fatalf("%v: %v", write, err)
		}
		return
	}

	emu.Program = prog
	err := emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if step {
		err = stepper(emu, ticks)
	} else {
		err = emu.Run(ticks)
	}

	if dump {
		fmt.Print(emu.Cpu.String())
	}

	if len(window) != 0 {
		start, length, werr := memoryWindow(window)
		if werr != nil {
			log.Fatalf("%v: %v", os.Args[0], werr)
		}
		fmt.Print(emu.DumpMemory(start, length))
	}

	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
