package fs

import "errors"

var (
	// ErrInvalidPath is an error that occurs when a path is not absolute
	// or names an empty leaf.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidParent is an error that occurs when the parent of a path
	// is absent from the path index or is not a directory.
	ErrInvalidParent = errors.New("invalid parent directory")

	// ErrExists is an error that occurs when the target path is already
	// registered.
	ErrExists = errors.New("path already exists")

	// ErrInvalidInode is an error that occurs when an operation references
	// an inode number not present in the inode table.
	ErrInvalidInode = errors.New("no such inode")

	// ErrNotDirectory is an error that occurs when a listing target
	// exists but is a file.
	ErrNotDirectory = errors.New("not a directory")

	// ErrIsDirectory is an error that occurs when file content I/O is
	// attempted on a directory inode.
	ErrIsDirectory = errors.New("is a directory")

	// ErrOutOfInodes is an error that occurs when the inode address space
	// is exhausted.
	ErrOutOfInodes = errors.New("no free inode slots")
)
