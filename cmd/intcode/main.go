// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
)

func main() {
	var compile string
	var program string
	var save bool
	var disassemble bool
	var input string
	var output string
	var ascii bool
	var dump bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".ic assembly file to compile")
	flag.StringVar(&program, "p", "", "program text file to run")
	flag.BoolVar(&save, "s", false, "Print the program text, do not execute")
	flag.BoolVar(&disassemble, "d", false, "Print the program disassembly, do not execute")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.BoolVar(&ascii, "a", false, "ASCII tapes")
	flag.BoolVar(&dump, "m", false, "Dump non-zero memory cells after the run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var prog cpu.Program
	var asm *cpu.Assembler

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm = &cpu.Assembler{Verbose: verbose}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(program) != 0:
		var err error
		prog, err = cpu.LoadProgram(program)
		if err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("%v: one of -c or -p is required", os.Args[0])
	}

	if save {
		fmt.Println(prog.String())
		return
	}

	if disassemble {
		for ip, line := range prog.Disassemble() {
			fmt.Printf("%6d: %v\n", ip, line)
		}
		return
	}

	emu := emulator.NewEmulator()
	defer emu.Close()
	emu.Program = prog
	emu.Verbose = verbose
	emu.Tape.Ascii = ascii

	if input == "-" {
		emu.Tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Play()
	if err != nil {
		if asm != nil {
			if line, _ := asm.Debug(emu.Processor.Ip); line != nil {
				log.Printf("%v: line %d: %v", compile, line.LineNo, line.Words)
			}
		}
		log.Fatal(err)
	}

	if verbose {
		log.Printf("%v", emu.Processor)
	}

	if dump {
		err = emu.Processor.Memory.Dump(os.Stderr)
		if err != nil {
			log.Fatal(err)
		}
	}
}
