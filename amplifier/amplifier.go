// Package amplifier chains intcode processors, each running its own copy
// of a program, so that the output of one amplifier is the input of the next.
package amplifier

import (
	"errors"
	"iter"
	"slices"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNoPhases = errors.New(f("no phase settings"))
	ErrNoSignal = errors.New(f("amplifier produced no signal"))
)

// Chain is a series of amplifiers, one processor per phase setting.
type Chain struct {
	Amps   []*cpu.Processor
	Halted []bool // Amplifiers that have halted, and take no more input.
}

// NewChain creates one amplifier per phase, each primed with its phase setting.
func NewChain(program cpu.Program, phases []int64) (chain *Chain) {
	chain = &Chain{}
	for _, phase := range phases {
		chain.Amps = append(chain.Amps, cpu.NewProcessor(program, []int64{phase}))
	}
	chain.Halted = make([]bool, len(chain.Amps))

	return
}

// Pass sends a signal through every amplifier once. halted is set when the
// last amplifier halts instead of producing a signal.
func (chain *Chain) Pass(signal int64) (out int64, halted bool, err error) {
	if len(chain.Amps) == 0 {
		err = ErrNoPhases
		return
	}

	out = signal
	last := len(chain.Amps) - 1
	for n, amp := range chain.Amps {
		if chain.Halted[n] {
			halted = n == last
			continue
		}
		amp.AddInput(out)
		var state cpu.State
		state, err = amp.Run(cpu.PAUSE_ON_OUTPUT)
		if err != nil {
			return
		}
		if state == cpu.HALTED {
			chain.Halted[n] = true
			halted = n == last
			continue
		}
		out = amp.Last(1)[0]
	}

	return
}

// Series runs the signal 0 through the chain once.
func Series(program cpu.Program, phases []int64) (signal int64, err error) {
	signal, halted, err := NewChain(program, phases).Pass(0)
	if err == nil && halted {
		err = ErrNoSignal
	}
	return
}

// Feedback loops the last amplifier's output back into the first, until the
// last amplifier halts. It returns the last signal produced.
func Feedback(program cpu.Program, phases []int64) (signal int64, err error) {
	chain := NewChain(program, phases)
	for {
		var out int64
		var halted bool
		out, halted, err = chain.Pass(signal)
		if err != nil || halted {
			return
		}
		signal = out
	}
}

// Permutations iterates over every ordering of the values.
func Permutations(values []int64) iter.Seq[[]int64] {
	return func(yield func([]int64) bool) {
		perm := slices.Clone(values)
		var generate func(k int) bool
		generate = func(k int) bool {
			if k <= 1 {
				return yield(slices.Clone(perm))
			}
			if !generate(k - 1) {
				return false
			}
			for i := range k - 1 {
				if k%2 == 0 {
					perm[i], perm[k-1] = perm[k-1], perm[i]
				} else {
					perm[0], perm[k-1] = perm[k-1], perm[0]
				}
				if !generate(k - 1) {
					return false
				}
			}
			return true
		}
		generate(len(perm))
	}
}

// MaxSignal tries every ordering of the phase settings and returns the
// highest signal, and the phases that produced it.
func MaxSignal(program cpu.Program, phases []int64, feedback bool) (best int64, order []int64, err error) {
	if len(phases) == 0 {
		err = ErrNoPhases
		return
	}

	run := Series
	if feedback {
		run = Feedback
	}

	for perm := range Permutations(phases) {
		var signal int64
		signal, err = run(program, perm)
		if err != nil {
			return
		}
		if order == nil || signal > best {
			best = signal
			order = perm
		}
	}

	return
}
