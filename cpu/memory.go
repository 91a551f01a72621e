package cpu

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/ezrec/intcode/internal"
)

const (
	MEMORY_DENSE_LIMIT = 1 << 20 // Cells held in the dense store.
)

// Memory is the processor's address space. Any address not yet written
// reads as zero. The low MEMORY_DENSE_LIMIT cells are held in a slice that
// grows on write; higher addresses go to a sparse map.
type Memory struct {
	Dense  []int64
	Sparse map[int64]int64
}

// Load replaces the memory contents with the program, at address 0.
func (mem *Memory) Load(program []int64) {
	mem.Dense = slices.Clone(program)
	mem.Sparse = nil
}

// Read returns the value at an address.
func (mem *Memory) Read(addr int64) (value int64, err error) {
	switch {
	case addr < 0:
		err = ErrNegativeAddress(addr)
	case addr < int64(len(mem.Dense)):
		value = mem.Dense[addr]
	default:
		value = mem.Sparse[addr]
	}

	return
}

// Write stores a value at an address, allocating it if needed.
func (mem *Memory) Write(addr int64, value int64) (err error) {
	switch {
	case addr < 0:
		err = ErrNegativeAddress(addr)
	case addr < int64(len(mem.Dense)):
		mem.Dense[addr] = value
	case addr < MEMORY_DENSE_LIMIT:
		grow := int(addr) + 1 - len(mem.Dense)
		mem.Dense = append(mem.Dense, make([]int64, grow)...)
		mem.Dense[addr] = value
	default:
		if mem.Sparse == nil {
			mem.Sparse = make(map[int64]int64)
		}
		mem.Sparse[addr] = value
	}

	return
}

// Len returns one past the highest allocated address.
func (mem *Memory) Len() (size int64) {
	size = int64(len(mem.Dense))
	for addr := range mem.Sparse {
		size = max(size, addr+1)
	}
	return
}

// Cells iterates over every allocated cell in ascending address order.
func (mem *Memory) Cells() iter.Seq2[int64, int64] {
	dense := func(yield func(int64, int64) bool) {
		for addr, value := range mem.Dense {
			if !yield(int64(addr), value) {
				return
			}
		}
	}

	return internal.IterSeq2Concat(dense, internal.IterMapSorted(mem.Sparse))
}

// Dump writes every non-zero cell as an "address: value" line, in address order.
func (mem *Memory) Dump(w io.Writer) (err error) {
	for addr, value := range mem.Cells() {
		if value == 0 {
			continue
		}
		_, err = fmt.Fprintf(w, "%6d: %d\n", addr, value)
		if err != nil {
			return
		}
	}

	return
}
