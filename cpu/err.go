package cpu

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Error categories.
	ErrDecode    = errors.New(f("decode"))
	ErrExecution = errors.New(f("execution"))
	ErrEncoding  = errors.New(f("encoding"))
	ErrAddress   = errors.New(f("address"))

	// Processor errors
	ErrInputExhausted error = errInputExhausted{}

	// Program text errors
	ErrProgramEmpty = errors.New(f("program empty"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrDataMissing        = errors.New(f(".data without values"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrTargetInvalid      = errors.New(f("immediate write target"))
)

type errInputExhausted struct{}

func (errInputExhausted) Error() string {
	return f("input exhausted")
}

func (errInputExhausted) Is(target error) bool {
	return target == ErrExecution
}

// ErrUnknownOpcode is returned when the cell at the instruction pointer
// does not hold a recognized opcode.
type ErrUnknownOpcode struct {
	Value   int64 // Cell contents.
	Address int64 // Address of the cell.
}

func (err ErrUnknownOpcode) Error() string {
	return f("unknown opcode %d at %d", err.Value, err.Address)
}

func (err ErrUnknownOpcode) Is(target error) bool {
	return target == ErrDecode
}

// ErrUnknownMode is returned when a parameter mode digit is not 0, 1 or 2.
type ErrUnknownMode struct {
	Mode    Mode
	Address int64
}

func (err ErrUnknownMode) Error() string {
	return f("unknown parameter mode %d at %d", int(err.Mode), err.Address)
}

func (err ErrUnknownMode) Is(target error) bool {
	return target == ErrDecode
}

// ErrInvalidWriteMode is returned when a write-target parameter is encoded
// in immediate mode.
type ErrInvalidWriteMode struct {
	Mode    Mode
	Address int64
}

func (err ErrInvalidWriteMode) Error() string {
	return f("%v mode write target at %d", err.Mode, err.Address)
}

func (err ErrInvalidWriteMode) Is(target error) bool {
	return target == ErrEncoding
}

// ErrNegativeAddress is returned when a computed address is below zero.
type ErrNegativeAddress int64

func (err ErrNegativeAddress) Error() string {
	return f("negative address %d", int64(err))
}

func (err ErrNegativeAddress) Is(target error) bool {
	return target == ErrAddress
}

// ErrInstruction locates the instruction that failed.
type ErrInstruction struct {
	Ip   int64
	Code Code
}

func (err ErrInstruction) Error() string {
	return f("instruction %d at %d", int64(err.Code), err.Ip)
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrOverflow is returned when an arithmetic result does not fit in a
// signed 64-bit cell.
type ErrOverflow struct {
	Opcode  Opcode
	A, B    int64
	Address int64
}

func (err ErrOverflow) Error() string {
	return f("%v %d %d overflows at %d", err.Opcode, err.A, err.B, err.Address)
}

func (err ErrOverflow) Is(target error) bool {
	return target == ErrExecution
}
