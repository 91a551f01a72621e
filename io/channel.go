// Package io provides value channels that connect an intcode processor to
// the outside world. A Tape reads input values from an io.Reader and writes
// output values to an io.Writer, either as decimal text or as ASCII.
package io

import (
	"iter"
)

// Channel defines the interface for all value channels.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns an iterator that yields values from the channel.
	Receive() iter.Seq[int64]
	// Send writes a single value to the channel.
	Send(value int64) error
}
