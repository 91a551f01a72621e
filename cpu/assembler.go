// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Line represents a line of assembled code with its source location and generated cells.
type Line struct {
	LineNo int      // Source line number.
	Ip     int64    // Address of the first cell.
	Words  []string // Source words.
	Cells  []int64  // Generated cells.

	links map[int]string // Cell index to label, for forward references.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
	"IP":     "0",
}

var (
	labelRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	charRegexp  = regexp.MustCompile(`'\\?[^']'`)
	parenRegexp = regexp.MustCompile(`\$\([^\$]*\)`)
)

// mnemonicMap maps assembler mnemonics to opcodes.
var mnemonicMap = map[string]Opcode{}

func init() {
	for _, op := range Opcodes() {
		mnemonicMap[op.String()] = op
	}
}

// Assembler is a single pass assembler for intcode programs.
//
// Each line holds optional labels, then an instruction or a directive:
//
//	loop:   add %0 #1 %0     ; relative, immediate, relative
//	        jt  flag loop    ; position mode, label references
//	        hlt
//	flag:   .data 1 'x' $(SIZE * 2)
//	        .equ SIZE 10
//
// Operands are position mode unless prefixed by '#' (immediate) or '%'
// (relative). $(...) is evaluated as a Starlark expression over the equates
// and the labels defined so far.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string // Predefines
	Label     map[string]int64  // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// currentIp gets the address of the next generated cell.
func (asm *Assembler) currentIp() int64 {
	if len(asm.Lines) == 0 {
		return 0
	}

	last := asm.Lines[len(asm.Lines)-1]

	return last.Ip + int64(len(last.Cells))
}

// valueOf returns the value of a simple word, or the label it refers to
// if that label is not yet defined.
func (asm *Assembler) valueOf(word string) (value int64, label string, err error) {
	equate, ok := asm.Equate[word]
	if ok {
		word = equate
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err == nil {
		return
	}
	err = nil

	value, ok = asm.Label[word]
	if ok {
		return
	}

	if labelRegexp.MatchString(word) {
		label = word
		return
	}

	err = ErrParseNumber(word)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt64(addr)
	}
	for key, str := range asm.Equate {
		var equ int64
		equ, err = strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(equ)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)
	asm.Equate["IP"] = fmt.Sprintf("%v", asm.currentIp())

	// Do 'x' evaluations
	line = charRegexp.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "t":
				str = "\t"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = parenRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Lines = asm.Lines[:0]
	asm.Label = make(map[string]int64, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.SplitN(text, ";", 2)
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of forward label references.
	for n := range asm.Lines {
		ln := &asm.Lines[n]
		for index, label := range ln.links {
			ip, ok := asm.Label[label]
			if !ok {
				lineno = ln.LineNo
				line = strings.Join(ln.Words, " ")
				err = ErrLabelMissing(label)
				return
			}
			ln.Cells[index] += ip
		}
	}

	for _, ln := range asm.Lines {
		prog = append(prog, ln.Cells...)
	}

	return
}

// Debug returns the line that generated the cell at ip, and the cell's
// index within the line.
func (asm *Assembler) Debug(ip int64) (line *Line, index int) {
	for n, ln := range asm.Lines {
		if ip >= ln.Ip && ip < ln.Ip+int64(len(ln.Cells)) {
			line = &asm.Lines[n]
			index = int(ip - ln.Ip)
			break
		}
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !labelRegexp.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.currentIp()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	ln := Line{
		LineNo: lineno,
		Ip:     asm.currentIp(),
		Words:  slices.Clone(words),
	}

	link := func(index int, label string) {
		if len(label) == 0 {
			return
		}
		if ln.links == nil {
			ln.links = make(map[int]string)
		}
		ln.links[index] = label
	}

	if words[0] == ".data" {
		if len(words) == 1 {
			err = ErrDataMissing
			return
		}
		for n, word := range words[1:] {
			var value int64
			var label string
			value, label, err = asm.valueOf(word)
			if err != nil {
				return
			}
			ln.Cells = append(ln.Cells, value)
			link(n, label)
		}
		asm.Lines = append(asm.Lines, ln)
		return
	}

	op, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	if len(args) < op.Params() {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > op.Params() {
		err = ErrOpcodeExtraArgs
		return
	}

	target, has_target := op.Target()
	modes := make([]Mode, len(args))
	ln.Cells = make([]int64, 1+len(args))
	for n, arg := range args {
		switch arg[0] {
		case '#':
			modes[n] = MODE_IMMEDIATE
			arg = arg[1:]
		case '%':
			modes[n] = MODE_RELATIVE
			arg = arg[1:]
		}
		if has_target && target == n && modes[n] == MODE_IMMEDIATE {
			err = ErrTargetInvalid
			return
		}
		if len(arg) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		var label string
		ln.Cells[1+n], label, err = asm.valueOf(arg)
		if err != nil {
			return
		}
		link(1+n, label)
	}
	ln.Cells[0] = int64(MakeCode(op, modes...))

	asm.Lines = append(asm.Lines, ln)

	return
}
