package io

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_ReceiveDecimal(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("1,-2, 3\n\n 1125899906842624\t5,,6")}

	values := slices.Collect(tape.Receive())
	assert.Equal([]int64{1, -2, 3, 1125899906842624, 5, 6}, values)
	assert.NoError(tape.Err)
}

func TestTape_ReceiveResume(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("10 20 30")}

	var first []int64
	for value := range tape.Receive() {
		first = append(first, value)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal([]int64{10, 20}, first)

	rest := slices.Collect(tape.Receive())
	assert.Equal([]int64{30}, rest)
}

func TestTape_ReceiveBad(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("1 two 3")}

	values := slices.Collect(tape.Receive())
	assert.Equal([]int64{1}, values)
	assert.Equal(ErrTapeValue("two"), tape.Err)

	tape.Rewind()
	assert.NoError(tape.Err)
}

func TestTape_ReceiveAscii(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("Hi\n"), Ascii: true}

	values := slices.Collect(tape.Receive())
	assert.Equal([]int64{'H', 'i', '\n'}, values)
}

func TestTape_ReceiveNil(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}
	assert.Empty(slices.Collect(tape.Receive()))
}

func TestTape_Send(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	tape := &Tape{Output: out}

	assert.NoError(tape.Send(42))
	assert.NoError(tape.Send(-7))
	assert.Equal("42\n-7\n", out.String())
}

func TestTape_SendAscii(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	tape := &Tape{Output: out, Ascii: true}

	for _, c := range "ok\n" {
		assert.NoError(tape.Send(int64(c)))
	}
	assert.NoError(tape.Send(19349))
	assert.Equal("ok\n19349\n", out.String())
}

func TestTape_SendClosed(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}
	assert.Equal(ErrChannelClosed, tape.Send(1))
}
