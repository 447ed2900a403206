// Package alloc implements a bitmap allocator over a fixed address space of
// block numbers.
//
// Bit 0 is reserved at creation so that number 0 is never granted; callers
// use 0 as the null block number. The allocator remembers the last number it
// tried and resumes scanning from there, so repeated allocation does not
// rescan the low end of the bitmap.
package alloc

import (
	"errors"
	"math/bits"
	"sync"

	"github.com/mayank-ms088/memfs/common"
	"github.com/mayank-ms088/memfs/util"
)

// ErrOutOfSpace is returned when the bitmap has fewer free bits than an
// allocation requires.
var ErrOutOfSpace = errors.New("no free blocks")

// Alloc tracks free and used numbers in [0, max). A set bit means used.
type Alloc struct {
	mu     sync.Mutex
	max    uint64
	next   uint64 // first number to try
	bitmap []byte
}

func MkAlloc(max uint64) *Alloc {
	a := &Alloc{
		max:    max,
		next:   0,
		bitmap: make([]byte, util.RoundUp(max, 8)),
	}
	// number 0 is the null block
	a.bitmap[0] |= 1
	return a
}

func (a *Alloc) incNext() uint64 {
	a.next = a.next + 1
	if a.next >= a.max {
		a.next = 0
	}
	return a.next
}

// allocNum scans for a free bit and marks it used. The caller must hold mu.
func (a *Alloc) allocNum() (common.Bnum, error) {
	num := a.incNext()
	start := num
	for {
		byt := num / 8
		bit := num % 8
		if a.bitmap[byt]&(1<<bit) == 0 {
			a.bitmap[byt] |= 1 << bit
			return num, nil
		}
		num = a.incNext()
		if num == start {
			return common.NULLBNUM, ErrOutOfSpace
		}
	}
}

// AllocNum grants one free number.
func (a *Alloc) AllocNum() (common.Bnum, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocNum()
}

// AllocN grants n free numbers, or none at all: if fewer than n bits are
// free the bitmap is left unchanged and ErrOutOfSpace is returned.
func (a *Alloc) AllocN(n uint64) ([]common.Bnum, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	nums := make([]common.Bnum, 0, n)
	for uint64(len(nums)) < n {
		num, err := a.allocNum()
		if err != nil {
			for _, bn := range nums {
				a.freeNum(bn)
			}
			return nil, err
		}
		nums = append(nums, num)
	}
	return nums, nil
}

// freeNum clears the bit for num. The caller must hold mu.
func (a *Alloc) freeNum(num common.Bnum) {
	if num == common.NULLBNUM || num >= a.max {
		panic("freeNum: number out of range")
	}
	a.bitmap[num/8] &= ^(byte(1) << (num % 8))
}

// FreeNum returns num to the free pool.
func (a *Alloc) FreeNum(num common.Bnum) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.freeNum(num)
}

// MarkUsed claims num regardless of its current state.
func (a *Alloc) MarkUsed(num common.Bnum) {
	if num >= a.max {
		panic("MarkUsed: number out of range")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bitmap[num/8] |= 1 << (num % 8)
}

func popCnt(b byte) uint64 {
	return uint64(bits.OnesCount8(b))
}

// NumFree reports how many numbers are still free.
func (a *Alloc) NumFree() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	var used uint64
	for _, b := range a.bitmap {
		used += popCnt(b)
	}
	// bits beyond max are never set
	return a.max - used
}
