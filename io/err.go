package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelClosed = errors.New(f("channel closed"))
)

// ErrTapeValue is returned when tape input is not a decimal value.
type ErrTapeValue string

func (err ErrTapeValue) Error() string {
	return f("tape value '%v' is not a number", string(err))
}
