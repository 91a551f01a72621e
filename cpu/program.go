package cpu

import (
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Program is the initial memory image of a processor.
type Program []int64

// ParseProgram reads comma separated signed decimal integers.
func ParseProgram(input io.Reader) (prog Program, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	text := strings.TrimSpace(string(data))
	if len(text) == 0 {
		err = ErrProgramEmpty
		return
	}

	for n, word := range strings.Split(text, ",") {
		word = strings.TrimSpace(word)
		var value int64
		value, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			err = errors.Wrapf(ErrParseNumber(word), "cell %d", n)
			return
		}
		prog = append(prog, value)
	}

	return
}

// LoadProgram reads a program from the text file fileName.
func LoadProgram(fileName string) (prog Program, err error) {
	inf, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "LoadProgram")
	}
	defer inf.Close()

	prog, err = ParseProgram(inf)
	if err != nil {
		return nil, errors.Wrapf(err, "LoadProgram %v", fileName)
	}

	return
}

// String returns the program text, cells joined with commas.
func (prog Program) String() string {
	words := make([]string, len(prog))
	for n, value := range prog {
		words[n] = strconv.FormatInt(value, 10)
	}
	return strings.Join(words, ",")
}

// Disassemble iterates over the program as assembly language lines, keyed by
// address. Cells that cannot be represented exactly as an instruction are
// emitted as .data lines, so that assembling the result reproduces the
// program.
func (prog Program) Disassemble() iter.Seq2[int64, string] {
	return func(yield func(ip int64, line string) bool) {
		mem := &Memory{Dense: prog}
		for ip := int64(0); ip < int64(len(prog)); {
			ins, err := Decode(mem, ip)
			if err == nil && ins.Exact() && ip+ins.Size() <= int64(len(prog)) {
				if !yield(ip, ins.String()) {
					return
				}
				ip += ins.Size()
				continue
			}
			if !yield(ip, fmt.Sprintf(".data %d", prog[ip])) {
				return
			}
			ip++
		}
	}
}

// Exact returns true if the instruction re-encodes to the same code word,
// and has no immediate write target.
func (ins Instruction) Exact() bool {
	if MakeCode(ins.Opcode, ins.Modes[:len(ins.Params)]...) != ins.Code {
		return false
	}
	if n, ok := ins.Opcode.Target(); ok && ins.Modes[n] == MODE_IMMEDIATE {
		return false
	}
	return true
}
