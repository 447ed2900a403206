// Package inode defines the metadata record for files and directories and
// the two registries that own them: the inode table (number to metadata)
// and the path index (absolute path to number).
//
// Neither registry locks internally. The file system facade owns both and
// serializes structural updates behind its own lock, since a single create
// touches the counter, the table, the path index and the parent's children
// together.
package inode

import (
	"time"

	"github.com/mayank-ms088/memfs/common"
)

// Perm is the read/write/execute permission triple. Enforcement is out of
// scope; the bits are carried as metadata.
type Perm struct {
	Read  bool
	Write bool
	Exec  bool
}

// DirEntry maps a name to an inode number within one directory. Names are
// unique among siblings.
type DirEntry struct {
	Name string
	Inum common.Inum
}

// Inode is the metadata record for a file or directory. The Dir flag is
// immutable after creation. Directories keep their children in insertion
// order. Files locate their content through the direct, indirect and
// double-indirect block pointers.
type Inode struct {
	Inum       common.Inum
	Name       string
	Size       uint64
	Owner      string
	Group      string
	Perm       Perm
	CreatedAt  time.Time
	ModifiedAt time.Time
	AccessedAt time.Time
	Dir        bool

	Children []DirEntry

	Direct      [common.NDIRECT]common.Bnum
	Indirect    common.Bnum
	DblIndirect common.Bnum
}

func (ip *Inode) IsDir() bool {
	return ip.Dir
}

// AddChild appends a directory entry; the caller has already checked name
// uniqueness.
func (ip *Inode) AddChild(name string, inum common.Inum) {
	ip.Children = append(ip.Children, DirEntry{Name: name, Inum: inum})
}

// LookupChild finds a child by name.
func (ip *Inode) LookupChild(name string) (common.Inum, bool) {
	for _, de := range ip.Children {
		if de.Name == name {
			return de.Inum, true
		}
	}
	return 0, false
}
