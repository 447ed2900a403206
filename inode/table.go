package inode

import (
	"time"

	"github.com/mayank-ms088/memfs/common"
)

// Table assigns inode numbers and maps them to their metadata. Numbers are
// monotonically increasing and never reused; no delete path exists.
type Table struct {
	next   common.Inum
	inodes map[common.Inum]*Inode
}

func MkTable() *Table {
	return &Table{
		next:   common.ROOTINUM,
		inodes: make(map[common.Inum]*Inode),
	}
}

// Alloc assigns the next inode number and registers a fresh inode with
// default permissions (read+write, no execute) and all timestamps set to
// the creation time.
func (tbl *Table) Alloc(name string, owner string, group string, dir bool) *Inode {
	now := time.Now()
	ip := &Inode{
		Inum:       tbl.next,
		Name:       name,
		Owner:      owner,
		Group:      group,
		Perm:       Perm{Read: true, Write: true, Exec: false},
		CreatedAt:  now,
		ModifiedAt: now,
		AccessedAt: now,
		Dir:        dir,
	}
	tbl.inodes[ip.Inum] = ip
	tbl.next++
	return ip
}

// Next reports the number the next allocation will receive.
func (tbl *Table) Next() common.Inum {
	return tbl.next
}

func (tbl *Table) Get(inum common.Inum) (*Inode, bool) {
	ip, ok := tbl.inodes[inum]
	return ip, ok
}

func (tbl *Table) Len() int {
	return len(tbl.inodes)
}
