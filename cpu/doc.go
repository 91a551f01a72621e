// Package cpu implements the intcode processor and its assembler.
//
// The processor executes a linear array of signed 64-bit integers as both
// code and data. It has an instruction pointer (Ip), a relative base register
// used by relative-mode parameters, an auto-growing memory, an input queue and
// an append-only output list.
//
// Execution is driven by Run, which either runs the program to its halt
// instruction (RUN_TO_HALT) or returns control to the caller as soon as one
// output value has been produced (PAUSE_ON_OUTPUT). All processor state is
// preserved between calls, so a driver may treat the processor as a resumable
// coroutine: feed input with AddInput, call Run, read the new outputs with Last.
//
// Cells are signed 64-bit. An add, multiply or relative base adjustment whose
// result does not fit fails with ErrOverflow rather than wrapping.
//
// The assembler provides a small assembly language for the nine intcode
// instructions, supporting labels, equates, data cells and compile-time
// expression evaluation.
package cpu
