package robot

import (
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

// ErrTurn is returned when the program asks for a turn other than left or right.
type ErrTurn int64

func (err ErrTurn) Error() string {
	return f("turn %d is not left or right", int64(err))
}

// ErrRuntime indicates the step at which the robot failed.
type ErrRuntime struct {
	Step     int
	Position Point
	Err      error
}

func (err *ErrRuntime) Error() string {
	return f("step %d at (%d,%d) %v", err.Step, err.Position.X, err.Position.Y, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
