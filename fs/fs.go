// Package fs composes the inode table, path index, block allocator, data
// store, journal and lock map into the file system's operation surface.
//
// Creation touches the inode counter, the table, the path index and the
// parent's children together, so those structural updates are serialized
// behind one coordinator lock. Content access on a given inode is guarded
// by that inode's reader-writer lock from the preallocated lock map: a
// writer excludes writers and readers, readers share. Operations never
// hold more than one inode lock at a time, so no lock-ordering protocol is
// needed.
package fs

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tchajed/goose/machine/disk"

	"github.com/mayank-ms088/memfs/alloc"
	"github.com/mayank-ms088/memfs/common"
	"github.com/mayank-ms088/memfs/datastore"
	"github.com/mayank-ms088/memfs/inode"
	"github.com/mayank-ms088/memfs/jrnl"
	"github.com/mayank-ms088/memfs/lockmap"
)

type FileSystem struct {
	mu sync.Mutex // structural: counter, table, path index, children

	ninodes uint64
	tbl     *inode.Table
	paths   *inode.PathIndex
	store   *datastore.Store
	log     *jrnl.Log
	locks   *lockmap.LockMap
}

// MkFileSystem builds an engine over nblocks in-memory disk blocks and
// ninodes inode slots, and seeds the root directory "/" (inode 0, owned by
// root/root) before any operation is accepted. The root seed is initial
// state, not a committed operation, so it is not journaled.
func MkFileSystem(nblocks uint64, ninodes uint64) *FileSystem {
	d := disk.NewMemDisk(nblocks)
	fs := &FileSystem{
		ninodes: ninodes,
		tbl:     inode.MkTable(),
		paths:   inode.MkPathIndex(),
		store:   datastore.MkStore(d, alloc.MkAlloc(nblocks)),
		log:     jrnl.MkLog(),
		locks:   lockmap.MkLockMap(ninodes),
	}
	root := fs.tbl.Alloc("/", "root", "root", true)
	fs.paths.Register("/", root.Inum)
	return fs
}

// MkDefaultFileSystem uses the default address-space sizes.
func MkDefaultFileSystem() *FileSystem {
	return MkFileSystem(common.NBLOCKS, common.NINODES)
}

func checkPath(path string) error {
	if !strings.HasPrefix(path, "/") || len(path) < 2 || strings.HasSuffix(path, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return nil
}

// splitPath separates an absolute path into its parent path and leaf name;
// the parent of a top-level entry is "/".
func splitPath(path string) (string, string) {
	i := strings.LastIndexByte(path, '/')
	parent := path[:i]
	if parent == "" {
		parent = "/"
	}
	return parent, path[i+1:]
}

// dirInode resolves a path to a directory inode. The caller must hold
// fs.mu.
func (fs *FileSystem) dirInode(path string) (*inode.Inode, error) {
	inum, ok := fs.paths.Resolve(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParent, path)
	}
	ip, ok := fs.tbl.Get(inum)
	if !ok || !ip.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParent, path)
	}
	return ip, nil
}

// createNode registers a new inode under path and commits the CREATE
// journal entry within the same structural lock scope.
func (fs *FileSystem) createNode(path string, owner string, group string, dir bool) (common.Inum, error) {
	if err := checkPath(path); err != nil {
		return 0, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.paths.Resolve(path); ok {
		return 0, fmt.Errorf("%w: %s", ErrExists, path)
	}
	parentPath, leaf := splitPath(path)
	parent, err := fs.dirInode(parentPath)
	if err != nil {
		return 0, err
	}
	if uint64(fs.tbl.Next()) >= fs.ninodes {
		return 0, ErrOutOfInodes
	}

	ip := fs.tbl.Alloc(leaf, owner, group, dir)
	fs.paths.Register(path, ip.Inum)
	parent.AddChild(leaf, ip.Inum)
	fs.log.Record(jrnl.KindCreate, ip.Inum, nil, []byte(path))

	slog.Debug("create", "path", path, "inode", uint64(ip.Inum), "dir", dir)
	return ip.Inum, nil
}

// CreateDirectory registers a new directory inode under path. The parent
// must already exist and be a directory.
func (fs *FileSystem) CreateDirectory(path string) (common.Inum, error) {
	return fs.createNode(path, "root", "root", true)
}

// CreateFile registers a new empty file inode under path for owner and
// group.
func (fs *FileSystem) CreateFile(path string, owner string, group string) (common.Inum, error) {
	return fs.createNode(path, owner, group, false)
}

// fileInode looks up a file inode by number. The Dir flag is immutable and
// inodes are never removed, so the returned pointer stays valid without
// fs.mu.
func (fs *FileSystem) fileInode(inum common.Inum) (*inode.Inode, error) {
	fs.mu.Lock()
	ip, ok := fs.tbl.Get(inum)
	fs.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidInode, inum)
	}
	if ip.IsDir() {
		return nil, fmt.Errorf("%w: inode %d", ErrIsDirectory, inum)
	}
	return ip, nil
}

// WriteFile appends data to the file's content; it never overwrites
// existing bytes. The mutation and its WRITE journal entry (prior and new
// full content) commit within the inode's writer lock scope.
func (fs *FileSystem) WriteFile(inum common.Inum, data []byte) error {
	ip, err := fs.fileInode(inum)
	if err != nil {
		return err
	}

	fs.locks.Acquire(uint64(inum))
	defer fs.locks.Release(uint64(inum))

	old := fs.store.ReadAt(ip, 0, ip.Size)
	if err := fs.store.WriteAt(ip, ip.Size, data); err != nil {
		return fmt.Errorf("write inode %d: %w", inum, err)
	}
	ip.Size += uint64(len(data))
	ip.ModifiedAt = time.Now()

	cur := make([]byte, 0, len(old)+len(data))
	cur = append(append(cur, old...), data...)
	fs.log.Record(jrnl.KindWrite, inum, old, cur)

	slog.Debug("write", "inode", uint64(inum), "appended", len(data), "size", ip.Size)
	return nil
}

// ReadFile returns the file's full current content under the inode's
// reader lock, so a racing writer is never observed half-applied.
func (fs *FileSystem) ReadFile(inum common.Inum) ([]byte, error) {
	ip, err := fs.fileInode(inum)
	if err != nil {
		return nil, err
	}

	fs.locks.RAcquire(uint64(inum))
	defer fs.locks.RRelease(uint64(inum))

	return fs.store.ReadAt(ip, 0, ip.Size), nil
}

// Stat returns a point-in-time copy of an inode's metadata. Children are
// guarded by the structural lock, the content fields by the inode's reader
// lock.
func (fs *FileSystem) Stat(inum common.Inum) (inode.Inode, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	ip, ok := fs.tbl.Get(inum)
	if !ok {
		return inode.Inode{}, fmt.Errorf("%w: %d", ErrInvalidInode, inum)
	}

	fs.locks.RAcquire(uint64(inum))
	out := *ip
	fs.locks.RRelease(uint64(inum))

	out.Children = append([]inode.DirEntry(nil), ip.Children...)
	return out, nil
}

// ListDirectory returns the directory's children in insertion order.
func (fs *FileSystem) ListDirectory(path string) ([]inode.DirEntry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	inum, ok := fs.paths.Resolve(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParent, path)
	}
	ip, ok := fs.tbl.Get(inum)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParent, path)
	}
	if !ip.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}

	out := make([]inode.DirEntry, len(ip.Children))
	copy(out, ip.Children)
	return out, nil
}

// Journal exposes the operation log for replay and audit.
func (fs *FileSystem) Journal() *jrnl.Log {
	return fs.log
}
