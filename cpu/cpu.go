// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"log"
	"math"
	"slices"
)

// StopMode selects when Run returns control to the caller.
type StopMode int

//go:generate go tool stringer -linecomment -type=StopMode
const (
	RUN_TO_HALT     = StopMode(0) // halt
	PAUSE_ON_OUTPUT = StopMode(1) // output
)

// State is the reason Run returned.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	HALTED = State(0) // halted
	PAUSED = State(1) // paused
)

// Processor is the simulation context for a single intcode processor.
type Processor struct {
	Verbose bool // Set to enable verbose logging.

	Ip           int64  // Current instruction pointer.
	RelativeBase int64  // Base for relative-mode parameters.
	Memory       Memory // Program and data memory.

	Ticks int // Instructions executed.

	input      []int64
	inputIndex int
	output     []int64
}

// NewProcessor creates a processor with the program loaded at address 0,
// and an initial input queue.
func NewProcessor(program Program, inputs []int64) (cpu *Processor) {
	cpu = &Processor{
		input: slices.Clone(inputs),
	}
	cpu.Memory.Load(program)

	return
}

// AddInput appends values to the input queue.
func (cpu *Processor) AddInput(values ...int64) {
	cpu.input = append(cpu.input, values...)
}

// Pending returns the number of input values not yet consumed.
func (cpu *Processor) Pending() int {
	return len(cpu.input) - cpu.inputIndex
}

// Outputs returns every value produced so far, oldest first.
// The slice must not be modified.
func (cpu *Processor) Outputs() []int64 {
	return cpu.output
}

// Last returns the most recent n outputs, or all of them if fewer were produced.
func (cpu *Processor) Last(n int) []int64 {
	n = min(max(n, 0), len(cpu.output))
	return cpu.output[len(cpu.output)-n:]
}

// String returns the current processor state as a string.
func (cpu *Processor) String() (text string) {
	text += fmt.Sprintf("% 7s: %d\n", "ip", cpu.Ip)
	text += fmt.Sprintf("% 7s: %d\n", "rb", cpu.RelativeBase)
	text += fmt.Sprintf("% 7s: %d\n", "memory", cpu.Memory.Len())
	text += fmt.Sprintf("% 7s: %d/%d\n", "input", cpu.inputIndex, len(cpu.input))
	text += fmt.Sprintf("% 7s: %d\n", "output", len(cpu.output))
	text += fmt.Sprintf("% 7s: %d\n", "ticks", cpu.Ticks)

	ins, err := Decode(&cpu.Memory, cpu.Ip)
	if err == nil {
		text += fmt.Sprintf("% 7s: %v\n", "next", ins)
	} else {
		text += fmt.Sprintf("% 7s: %v\n", "next", err)
	}

	return
}

// Run executes instructions until the program halts, or, with
// PAUSE_ON_OUTPUT, until an output has been produced by this call.
//
// The state of the processor is preserved on return, so Run may be called
// again to resume. On error the instruction pointer is left at the failing
// instruction.
func (cpu *Processor) Run(mode StopMode) (state State, err error) {
	produced := len(cpu.output)

	for {
		if mode == PAUSE_ON_OUTPUT && len(cpu.output) > produced {
			state = PAUSED
			return
		}

		var halted bool
		halted, err = cpu.Tick()
		if err != nil {
			return
		}
		if halted {
			state = HALTED
			return
		}
	}
}

// Fetch decodes the instruction at the instruction pointer.
func (cpu *Processor) Fetch() (ins Instruction, err error) {
	ins, err = Decode(&cpu.Memory, cpu.Ip)
	if err != nil {
		err = errors.Join(ErrInstruction{Ip: cpu.Ip, Code: ins.Code}, err)
	}
	return
}

// Tick fetches and executes a single instruction. A halt instruction is not
// executed; halted is set instead, and the instruction pointer stays on it.
func (cpu *Processor) Tick() (halted bool, err error) {
	ins, err := cpu.Fetch()
	if err != nil {
		return
	}

	if ins.Opcode == OP_HALT {
		if cpu.Verbose {
			log.Printf("cpu: halt at %d", cpu.Ip)
		}
		halted = true
		return
	}

	err = cpu.Execute(ins)
	return
}

// Execute executes a single decoded instruction.
func (cpu *Processor) Execute(ins Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction{Ip: ins.Ip, Code: ins.Code}, err)
		}
	}()

	if cpu.Verbose {
		log.Printf("%04d: %v", ins.Ip, ins)
	}

	next_ip := ins.Ip + ins.Size()

	var a, b int64

	switch ins.Opcode {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		a, err = cpu.value(ins, 0)
		if err != nil {
			return
		}
		b, err = cpu.value(ins, 1)
		if err != nil {
			return
		}
		var result int64
		ok := true
		switch ins.Opcode {
		case OP_ADD:
			result, ok = add64(a, b)
		case OP_MUL:
			result, ok = mul64(a, b)
		case OP_LT:
			if a < b {
				result = 1
			}
		case OP_EQ:
			if a == b {
				result = 1
			}
		}
		if !ok {
			err = ErrOverflow{Opcode: ins.Opcode, A: a, B: b, Address: ins.Ip}
			return
		}
		err = cpu.store(ins, 2, result)
	case OP_IN:
		var addr int64
		addr, err = cpu.Address(ins, 0)
		if err != nil {
			return
		}
		if cpu.Pending() == 0 {
			err = ErrInputExhausted
			return
		}
		err = cpu.Memory.Write(addr, cpu.input[cpu.inputIndex])
		if err != nil {
			return
		}
		cpu.inputIndex++
	case OP_OUT:
		a, err = cpu.value(ins, 0)
		if err != nil {
			return
		}
		cpu.output = append(cpu.output, a)
		if cpu.Verbose {
			log.Printf("cpu: output %d", a)
		}
	case OP_JT, OP_JF:
		a, err = cpu.value(ins, 0)
		if err != nil {
			return
		}
		if (a != 0) == (ins.Opcode == OP_JT) {
			next_ip, err = cpu.value(ins, 1)
			if err != nil {
				return
			}
		}
	case OP_ARB:
		a, err = cpu.value(ins, 0)
		if err != nil {
			return
		}
		base, ok := add64(cpu.RelativeBase, a)
		if !ok {
			err = ErrOverflow{Opcode: ins.Opcode, A: cpu.RelativeBase, B: a, Address: ins.Ip}
			return
		}
		cpu.RelativeBase = base
	case OP_HALT:
		// Halting is decided by Run.
		return
	default:
		err = ErrUnknownOpcode{Value: int64(ins.Code), Address: ins.Ip}
		return
	}
	if err != nil {
		return
	}

	cpu.Ip = next_ip
	cpu.Ticks++

	return
}

// Address resolves the address referred to by parameter n of an instruction.
func (cpu *Processor) Address(ins Instruction, n int) (addr int64, err error) {
	switch ins.Modes[n] {
	case MODE_POSITION:
		addr = ins.Params[n]
	case MODE_RELATIVE:
		addr = ins.Params[n] + cpu.RelativeBase
	default:
		err = ErrInvalidWriteMode{Mode: ins.Modes[n], Address: ins.Ip}
		return
	}

	if addr < 0 {
		err = ErrNegativeAddress(addr)
	}

	return
}

// value gets the value of parameter n, according to its mode.
func (cpu *Processor) value(ins Instruction, n int) (value int64, err error) {
	if ins.Modes[n] == MODE_IMMEDIATE {
		value = ins.Params[n]
		return
	}

	addr, err := cpu.Address(ins, n)
	if err != nil {
		return
	}

	return cpu.Memory.Read(addr)
}

// store writes to the target of parameter n.
func (cpu *Processor) store(ins Instruction, n int, value int64) (err error) {
	addr, err := cpu.Address(ins, n)
	if err != nil {
		return
	}

	return cpu.Memory.Write(addr, value)
}

// add64 adds, reporting whether the sum fits in 64 bits.
func add64(a, b int64) (sum int64, ok bool) {
	sum = a + b
	ok = !((a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0))
	return
}

// mul64 multiplies, reporting whether the product fits in 64 bits.
func mul64(a, b int64) (product int64, ok bool) {
	product = a * b
	if a == 0 || b == 0 {
		ok = true
		return
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return
	}
	ok = product/b == a
	return
}
