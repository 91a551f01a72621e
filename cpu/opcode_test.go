package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_Decode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code  Code
		op    Opcode
		modes [PARAM_LIMIT]Mode
	}){
		{1, OP_ADD, [3]Mode{0, 0, 0}},
		{1002, OP_MUL, [3]Mode{0, 1, 0}},
		{21101, OP_ADD, [3]Mode{1, 1, 2}},
		{204, OP_OUT, [3]Mode{2, 0, 0}},
		{109, OP_ARB, [3]Mode{1, 0, 0}},
		{99, OP_HALT, [3]Mode{0, 0, 0}},
	}

	for _, entry := range table {
		assert.Equal(entry.op, entry.code.Opcode(), entry.code)
		for n, mode := range entry.modes {
			assert.Equal(mode, entry.code.Mode(n), entry.code)
		}
		assert.Equal(entry.code, MakeCode(entry.op, entry.modes[:entry.op.Params()]...))
	}
}

func TestOpcode_String(t *testing.T) {
	assert := assert.New(t)

	names := []string{"add", "mul", "in", "out", "jt", "jf", "lt", "eq", "arb", "hlt"}
	for n, op := range Opcodes() {
		assert.Equal(names[n], op.String())
	}
	assert.Equal("Opcode(42)", Opcode(42).String())
	assert.Equal("relative", MODE_RELATIVE.String())
	assert.Equal("output", PAUSE_ON_OUTPUT.String())
	assert.Equal("paused", PAUSED.String())
}

func TestOpcode_Params(t *testing.T) {
	assert := assert.New(t)

	params := map[Opcode]int{
		OP_ADD: 3, OP_MUL: 3, OP_IN: 1, OP_OUT: 1, OP_JT: 2,
		OP_JF: 2, OP_LT: 3, OP_EQ: 3, OP_ARB: 1, OP_HALT: 0,
	}
	for _, op := range Opcodes() {
		assert.True(op.Valid())
		assert.Equal(params[op], op.Params(), op)
	}

	for _, op := range []Opcode{OP_ADD, OP_MUL, OP_LT, OP_EQ} {
		n, ok := op.Target()
		assert.True(ok)
		assert.Equal(2, n)
	}
	n, ok := OP_IN.Target()
	assert.True(ok)
	assert.Equal(0, n)
	_, ok = OP_OUT.Target()
	assert.False(ok)
}

// Every defined opcode must be handled by Execute, and every other value
// in the opcode range must be rejected by Decode.
func TestOpcode_Exhaustive(t *testing.T) {
	assert := assert.New(t)

	defined := map[Opcode]bool{}
	for _, op := range Opcodes() {
		defined[op] = true

		prog := Program{int64(MakeCode(op)), 0, 0, 0}
		cpu := NewProcessor(prog, []int64{1})
		ins, err := cpu.Fetch()
		assert.NoError(err, op)

		err = cpu.Execute(ins)
		assert.NoError(err, op)
		var unknown ErrUnknownOpcode
		assert.False(errors.As(err, &unknown), op)
	}

	for op := range Opcode(100) {
		if defined[op] {
			continue
		}
		assert.False(op.Valid(), op)
		_, err := Decode(&Memory{Dense: []int64{int64(op)}}, 0)
		assert.Equal(ErrUnknownOpcode{Value: int64(op), Address: 0}, err, op)
	}
}

func TestInstruction_String(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Load(Program{21101, 7, -8, 5, 99})

	ins, err := Decode(mem, 0)
	assert.NoError(err)
	assert.Equal("add #7 #-8 %5", ins.String())
	assert.Equal(int64(4), ins.Size())
	assert.True(ins.Exact())

	ins, err = Decode(mem, 4)
	assert.NoError(err)
	assert.Equal("hlt", ins.String())
}
