package cpu

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProgram(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text    string
		program Program
	}){
		{"1,2,3", Program{1, 2, 3}},
		{"1,2,3\n", Program{1, 2, 3}},
		{" 104, -1125899906842624 ,99 \r\n", Program{104, -1125899906842624, 99}},
		{"99", Program{99}},
	}

	for _, entry := range table {
		prog, err := ParseProgram(strings.NewReader(entry.text))
		assert.NoError(err, entry.text)
		assert.Equal(entry.program, prog, entry.text)
	}
}

func TestParseProgram_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseProgram(strings.NewReader(" \n"))
	assert.Equal(ErrProgramEmpty, err)

	_, err = ParseProgram(strings.NewReader("1,,2"))
	var bad ErrParseNumber
	assert.True(errors.As(err, &bad))
	assert.Equal(ErrParseNumber(""), bad)
	assert.Contains(err.Error(), "cell 1")

	_, err = ParseProgram(strings.NewReader("1,x"))
	assert.True(errors.As(err, &bad))
	assert.Equal(ErrParseNumber("x"), bad)
}

func TestProgram_String(t *testing.T) {
	assert := assert.New(t)

	prog := Program{109, 1, 204, -1, 99}
	assert.Equal("109,1,204,-1,99", prog.String())
	assert.Equal("", Program{}.String())
}

func TestLoadProgram(t *testing.T) {
	assert := assert.New(t)

	name := filepath.Join(t.TempDir(), "prog.txt")
	err := os.WriteFile(name, []byte(quine+"\n"), 0o644)
	assert.NoError(err)

	prog, err := LoadProgram(name)
	assert.NoError(err)
	assert.Equal(quine, prog.String())

	_, err = LoadProgram(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestProgram_Disassemble(t *testing.T) {
	assert := assert.New(t)

	prog := Program{1002, 4, 3, 4, 33, 11101, 1, 2, 3, 199, 204}

	var ips []int64
	var lines []string
	for ip, line := range prog.Disassemble() {
		ips = append(ips, ip)
		lines = append(lines, line)
	}

	assert.Equal([]int64{0, 4, 5, 6, 10}, ips)
	assert.Equal([]string{
		"mul 4 #3 4",
		".data 33",    // unknown opcode
		".data 11101", // immediate write target
		"add 2 3 199",
		".data 204", // truncated instruction
	}, lines)
}
