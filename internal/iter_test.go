package internal

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := slices.All([]string{"a", "b"})
	b := slices.All([]string{"c"})

	var keys []int
	var values []string
	for k, v := range IterSeq2Concat(a, b) {
		keys = append(keys, k)
		values = append(values, v)
	}

	assert.Equal([]int{0, 1, 0}, keys)
	assert.Equal([]string{"a", "b", "c"}, values)
}

func TestIterSeq2Concat_Stop(t *testing.T) {
	assert := assert.New(t)

	a := slices.All([]int{1, 2, 3})
	b := slices.All([]int{4, 5, 6})

	var values []int
	for _, v := range IterSeq2Concat(a, b) {
		if v == 5 {
			break
		}
		values = append(values, v)
	}

	assert.Equal([]int{1, 2, 3, 4}, values)
}

func TestIterMapSorted(t *testing.T) {
	assert := assert.New(t)

	m := map[int64]string{30: "c", -1: "a", 7: "b"}

	var keys []int64
	var ordered []string
	for k, v := range IterMapSorted(m) {
		keys = append(keys, k)
		ordered = append(ordered, v)
	}
	assert.Equal([]int64{-1, 7, 30}, keys)
	assert.Equal([]string{"a", "b", "c"}, ordered)
}
