// Package common holds the identifier types and layout constants shared by
// the storage engine's packages.
package common

import (
	"github.com/tchajed/goose/machine/disk"
)

const (
	// NDIRECT is the number of direct block pointers in an inode.
	NDIRECT uint64 = 12

	// NINDIRECT is the number of block pointers held by one indirect
	// block.
	NINDIRECT uint64 = disk.BlockSize / 8

	// NBLOCKS is the default size of the block address space.
	NBLOCKS uint64 = 10000

	// NINODES is the default size of the inode address space; the lock
	// map is preallocated to this many slots.
	NINODES uint64 = 10000

	// MAXFILEBLOCKS is the largest number of data blocks a single file
	// can reach through direct, indirect and double-indirect pointers.
	MAXFILEBLOCKS uint64 = NDIRECT + NINDIRECT + NINDIRECT*NINDIRECT
)

type Inum uint64
type Bnum = uint64

const (
	ROOTINUM Inum = 0
	NULLBNUM Bnum = 0
)
