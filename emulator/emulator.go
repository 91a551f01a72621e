// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs an intcode program against a tape, feeding the
// processor input on demand and writing each output as it is produced.
package emulator

import (
	"errors"
	"iter"
	"log"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

// Emulator state. Processor + tape IO channel.
type Emulator struct {
	Verbose        bool        // If set, enables verbose logging.
	*cpu.Processor             // Reference to the processor simulation.
	Program        cpu.Program // Currently running program.

	Tape io.Tape // Tape IO channel.

	next func() (int64, bool)
	stop func()
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Processor: cpu.NewProcessor(nil, nil),
	}

	return
}

// Close the emulator
func (emu *Emulator) Close() (err error) {
	if emu.stop != nil {
		emu.stop()
		emu.next = nil
		emu.stop = nil
	}

	return
}

// Reset the emulator, reloading the program into a fresh processor and
// rewinding the tape.
func (emu *Emulator) Reset() (err error) {
	emu.Close()

	emu.Processor = cpu.NewProcessor(emu.Program, nil)
	emu.Processor.Verbose = emu.Verbose

	emu.Tape.Rewind()
	emu.next, emu.stop = iter.Pull(emu.Tape.Receive())

	if emu.Verbose {
		log.Printf("emulator: reset, %d cells", len(emu.Program))
	}

	return
}

// Tick runs the processor until it produces an output, needs an input,
// or halts. done is set once the program has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Processor.Verbose = emu.Verbose

	ip := emu.Processor.Ip
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, Err: err}
		}
	}()

	state, err := emu.Processor.Run(cpu.PAUSE_ON_OUTPUT)
	if errors.Is(err, cpu.ErrInputExhausted) {
		// Re-supply from the tape, and resume at the input instruction.
		ip = emu.Processor.Ip
		value, ok := emu.next()
		if !ok {
			if emu.Tape.Err != nil {
				err = errors.Join(err, emu.Tape.Err)
			}
			return
		}
		if emu.Verbose {
			log.Printf("emulator: input %d", value)
		}
		emu.Processor.AddInput(value)
		err = nil
		return
	}
	if err != nil {
		ip = emu.Processor.Ip
		return
	}

	switch state {
	case cpu.HALTED:
		done = true
	case cpu.PAUSED:
		err = emu.Tape.Send(emu.Processor.Last(1)[0])
	}

	return
}

// Play runs the program until it halts, or fails.
func (emu *Emulator) Play() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
