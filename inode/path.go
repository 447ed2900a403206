package inode

import (
	"github.com/mayank-ms088/memfs/common"
)

// PathIndex resolves absolute paths to inode numbers. Every registered path
// has a live entry in the table; the facade keeps the index consistent with
// the directory tree.
type PathIndex struct {
	paths map[string]common.Inum
}

func MkPathIndex() *PathIndex {
	return &PathIndex{
		paths: make(map[string]common.Inum),
	}
}

func (pi *PathIndex) Register(path string, inum common.Inum) {
	pi.paths[path] = inum
}

func (pi *PathIndex) Resolve(path string) (common.Inum, bool) {
	inum, ok := pi.paths[path]
	return inum, ok
}

func (pi *PathIndex) Len() int {
	return len(pi.paths)
}
