package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"unicode"
)

// Tape provides sequential I/O of processor values over byte streams.
// It wraps an io.Reader for input and io.Writer for output.
//
// In decimal mode input values are separated by commas or whitespace, and
// each output value is written on its own line. In ASCII mode every input
// byte is one value, and outputs in the ASCII range are written as bytes;
// anything else is written as a decimal line.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Ascii  bool

	Err error // First input error, other than io.EOF.

	reader *bufio.Reader
	source io.Reader
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape; it drops any buffered input.
func (tc *Tape) Rewind() {
	tc.reader = nil
	tc.source = nil
	tc.Err = nil
}

func (tc *Tape) input() *bufio.Reader {
	if tc.reader == nil || tc.source != tc.Input {
		tc.reader = bufio.NewReader(tc.Input)
		tc.source = tc.Input
	}
	return tc.reader
}

// Receive returns an iterator that yields values from the input stream,
// reading as needed. Iteration ends at end of input, or at the first
// malformed value, which is recorded in Err.
func (tc *Tape) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		if tc.Input == nil {
			return
		}
		in := tc.input()
		for {
			var value int64
			var err error
			if tc.Ascii {
				var b byte
				b, err = in.ReadByte()
				value = int64(b)
			} else {
				value, err = tc.readDecimal(in)
			}
			if err != nil {
				if err != io.EOF {
					tc.Err = err
				}
				return
			}
			if !yield(value) {
				return
			}
		}
	}
}

// readDecimal reads the next separated decimal value.
func (tc *Tape) readDecimal(in *bufio.Reader) (value int64, err error) {
	var word []rune
	for {
		var r rune
		r, _, err = in.ReadRune()
		if err == io.EOF && len(word) > 0 {
			err = nil
			break
		}
		if err != nil {
			return
		}
		if r == ',' || unicode.IsSpace(r) {
			if len(word) == 0 {
				continue
			}
			break
		}
		word = append(word, r)
	}

	value, err = strconv.ParseInt(string(word), 10, 64)
	if err != nil {
		err = ErrTapeValue(string(word))
	}
	return
}

// Send writes a value to the output stream.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	if tc.Ascii && value >= 0 && value < 0x80 {
		_, err = tc.Output.Write([]byte{byte(value)})
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	return
}
