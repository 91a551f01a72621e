package amplifier

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/cpu"
)

const (
	series   = "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0"
	feedback = "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5"
)

func mustParse(t *testing.T, text string) (program cpu.Program) {
	program, err := cpu.ParseProgram(strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}
	return
}

func TestSeries(t *testing.T) {
	assert := assert.New(t)

	program := mustParse(t, series)

	signal, err := Series(program, []int64{4, 3, 2, 1, 0})
	assert.NoError(err)
	assert.Equal(int64(43210), signal)

	best, order, err := MaxSignal(program, []int64{0, 1, 2, 3, 4}, false)
	assert.NoError(err)
	assert.Equal(int64(43210), best)
	assert.Equal([]int64{4, 3, 2, 1, 0}, order)
}

func TestFeedback(t *testing.T) {
	assert := assert.New(t)

	program := mustParse(t, feedback)

	signal, err := Feedback(program, []int64{9, 8, 7, 6, 5})
	assert.NoError(err)
	assert.Equal(int64(139629729), signal)

	best, order, err := MaxSignal(program, []int64{5, 6, 7, 8, 9}, true)
	assert.NoError(err)
	assert.Equal(int64(139629729), best)
	assert.Equal([]int64{9, 8, 7, 6, 5}, order)
}

func TestChain_Pass(t *testing.T) {
	assert := assert.New(t)

	// Each amplifier adds its phase to the signal, once.
	program := cpu.Program{3, 11, 3, 12, 1, 11, 12, 13, 4, 13, 99, 0, 0, 0}

	chain := NewChain(program, []int64{1, 2, 3})
	out, halted, err := chain.Pass(10)
	assert.NoError(err)
	assert.False(halted)
	assert.Equal(int64(16), out)

	_, halted, err = chain.Pass(out)
	assert.NoError(err)
	assert.True(halted)
	assert.Equal([]bool{true, true, true}, chain.Halted)

	// Halted amplifiers are not fed again.
	_, halted, err = chain.Pass(out)
	assert.NoError(err)
	assert.True(halted)
	for n, amp := range chain.Amps {
		assert.Equal(1, amp.Pending(), "amp %d", n)
	}

	_, err = Series(program, []int64{})
	assert.ErrorIs(err, ErrNoPhases)
}

func TestSeries_NoSignal(t *testing.T) {
	assert := assert.New(t)

	_, err := Series(cpu.Program{3, 5, 3, 5, 99, 0}, []int64{0})
	assert.ErrorIs(err, ErrNoSignal)
}

func TestSeries_Error(t *testing.T) {
	assert := assert.New(t)

	_, err := Series(cpu.Program{3, 5, 3, 5, 3, 5, 99}, []int64{0})
	assert.ErrorIs(err, cpu.ErrInputExhausted)

	_, _, err = MaxSignal(cpu.Program{99}, nil, false)
	assert.ErrorIs(err, ErrNoPhases)
}

func TestPermutations(t *testing.T) {
	assert := assert.New(t)

	seen := map[string]bool{}
	for perm := range Permutations([]int64{0, 1, 2, 3, 4}) {
		sorted := slices.Sorted(slices.Values(perm))
		assert.Equal([]int64{0, 1, 2, 3, 4}, sorted)
		seen[cpu.Program(perm).String()] = true
	}
	assert.Equal(120, len(seen))

	count := 0
	for range Permutations([]int64{1, 2, 3}) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)

	count = 0
	for perm := range Permutations(nil) {
		assert.Empty(perm)
		count++
	}
	assert.Equal(1, count)
}
