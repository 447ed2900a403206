package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tchajed/goose/machine/disk"

	"github.com/mayank-ms088/memfs/common"
)

func TestMin(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint64(2), Min(2, 3))
	assert.Equal(uint64(2), Min(3, 2))
	assert.Equal(uint64(2), Min(2, 2))
}

func TestRoundUp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint64(4), RoundUp(10, 3))
	assert.Equal(uint64(3), RoundUp(9, 3), "exact division")
	assert.Equal(uint64(0), RoundUp(0, 3))
	assert.Equal(uint64(5), RoundUp(4096*4+4095, 4096))
	assert.Equal(uint64(5), RoundUp(4096*4+1, 4096), "round up by sz-1")
}

func TestRoundUpBlocks(t *testing.T) {
	assert := assert.New(t)
	// blocks needed for a byte count, as the data store computes them
	assert.Equal(uint64(0), RoundUp(0, disk.BlockSize))
	assert.Equal(uint64(1), RoundUp(1, disk.BlockSize))
	assert.Equal(common.NDIRECT, RoundUp(common.NDIRECT*disk.BlockSize, disk.BlockSize))
	assert.Equal(common.NDIRECT+1, RoundUp(common.NDIRECT*disk.BlockSize+1, disk.BlockSize),
		"one byte past the direct range needs another block")
	assert.Equal(common.NINDIRECT, RoundUp(common.NINDIRECT*disk.BlockSize-1, disk.BlockSize))
}

func TestSumOverflows(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(false, SumOverflows(1<<31, 1<<31))
	assert.Equal(false, SumOverflows(1<<64-2, 1))
	assert.Equal(false, SumOverflows(1, 1<<64-2))
	assert.Equal(false, SumOverflows(1<<32, 1<<32))

	assert.Equal(true, SumOverflows(1, 1<<64-1))
	assert.Equal(true, SumOverflows(1<<64-1, 1))
	assert.Equal(true, SumOverflows(2, 1<<64-1))
	assert.Equal(true, SumOverflows(1<<63, 1<<63))
}
