package cpu

import (
	"fmt"
	"strings"
)

// Opcode is an instruction selector, the low two decimal digits of a code word.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADD  = Opcode(1)  // add
	OP_MUL  = Opcode(2)  // mul
	OP_IN   = Opcode(3)  // in
	OP_OUT  = Opcode(4)  // out
	OP_JT   = Opcode(5)  // jt
	OP_JF   = Opcode(6)  // jf
	OP_LT   = Opcode(7)  // lt
	OP_EQ   = Opcode(8)  // eq
	OP_ARB  = Opcode(9)  // arb
	OP_HALT = Opcode(99) // hlt
)

// Mode is a parameter addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_POSITION  = Mode(0) // position
	MODE_IMMEDIATE = Mode(1) // immediate
	MODE_RELATIVE  = Mode(2) // relative
)

// PARAM_LIMIT is the largest parameter count of any opcode.
const PARAM_LIMIT = 3

// opcodeInfo describes the parameters of an opcode.
type opcodeInfo struct {
	params int
	target int // Index of the write-target parameter, or -1.
}

var _opcode_info = map[Opcode]opcodeInfo{
	OP_ADD:  {3, 2},
	OP_MUL:  {3, 2},
	OP_IN:   {1, 0},
	OP_OUT:  {1, -1},
	OP_JT:   {2, -1},
	OP_JF:   {2, -1},
	OP_LT:   {3, 2},
	OP_EQ:   {3, 2},
	OP_ARB:  {1, -1},
	OP_HALT: {0, -1},
}

// Opcodes returns all defined opcodes, in numeric order.
func Opcodes() []Opcode {
	return []Opcode{OP_ADD, OP_MUL, OP_IN, OP_OUT, OP_JT, OP_JF, OP_LT, OP_EQ, OP_ARB, OP_HALT}
}

// Valid returns true if the opcode is defined.
func (op Opcode) Valid() bool {
	_, ok := _opcode_info[op]
	return ok
}

// Params returns the number of parameters taken by the opcode.
func (op Opcode) Params() int {
	return _opcode_info[op].params
}

// Target returns the index of the write-target parameter, if any.
func (op Opcode) Target() (index int, ok bool) {
	info, valid := _opcode_info[op]
	if !valid || info.target < 0 {
		return
	}

	return info.target, true
}

// Prefix returns the assembler operand prefix for the mode.
func (mode Mode) Prefix() string {
	switch mode {
	case MODE_IMMEDIATE:
		return "#"
	case MODE_RELATIVE:
		return "%"
	}
	return ""
}

// Code is a raw instruction word.
type Code int64

// MakeCode encodes an opcode and its parameter modes into a code word.
func MakeCode(op Opcode, modes ...Mode) Code {
	word := int64(op)
	scale := int64(100)
	for _, mode := range modes {
		word += int64(mode) * scale
		scale *= 10
	}
	return Code(word)
}

// Opcode returns the opcode selected by the word.
func (code Code) Opcode() Opcode {
	if code < 0 {
		return Opcode(-1)
	}
	return Opcode(code % 100)
}

// Mode returns the addressing mode of parameter n.
func (code Code) Mode(n int) Mode {
	word := int64(code) / 100
	for range n {
		word /= 10
	}
	return Mode(word % 10)
}

// Instruction is a decoded instruction with its raw parameters.
type Instruction struct {
	Ip     int64
	Code   Code
	Opcode Opcode
	Modes  [PARAM_LIMIT]Mode
	Params []int64
}

// Decode decodes the code word at ip, reading its parameters from mem.
func Decode(mem *Memory, ip int64) (ins Instruction, err error) {
	ins.Ip = ip

	word, err := mem.Read(ip)
	if err != nil {
		return
	}

	ins.Code = Code(word)
	op := ins.Code.Opcode()
	if !op.Valid() {
		err = ErrUnknownOpcode{Value: word, Address: ip}
		return
	}

	ins.Opcode = op
	ins.Params = make([]int64, op.Params())

	for n := range ins.Params {
		mode := ins.Code.Mode(n)
		switch mode {
		case MODE_POSITION, MODE_IMMEDIATE, MODE_RELATIVE:
		default:
			err = ErrUnknownMode{Mode: mode, Address: ip}
			return
		}
		ins.Modes[n] = mode
		ins.Params[n], err = mem.Read(ip + 1 + int64(n))
		if err != nil {
			return
		}
	}

	return
}

// Size returns the number of cells occupied by the instruction.
func (ins Instruction) Size() int64 {
	return int64(1 + len(ins.Params))
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() string {
	words := []string{ins.Opcode.String()}
	for n, param := range ins.Params {
		words = append(words, fmt.Sprintf("%v%d", ins.Modes[n].Prefix(), param))
	}
	return strings.Join(words, " ")
}
