// Package lockmap provides a fixed array of reader-writer locks, one per
// inode slot.
//
// The API is as if LockMap consisted of a lock for every possible inode
// number in the address space: Acquire(i) takes the writer lock for slot i
// and Release(i) drops it; RAcquire/RRelease are the reader side. All locks
// are created up front, so acquiring never allocates.
package lockmap

import (
	"sync"
)

type LockMap struct {
	locks []sync.RWMutex
}

// MkLockMap preallocates locks for n slots.
func MkLockMap(n uint64) *LockMap {
	return &LockMap{
		locks: make([]sync.RWMutex, n),
	}
}

func (lm *LockMap) Acquire(i uint64) {
	lm.locks[i].Lock()
}

func (lm *LockMap) Release(i uint64) {
	lm.locks[i].Unlock()
}

func (lm *LockMap) RAcquire(i uint64) {
	lm.locks[i].RLock()
}

func (lm *LockMap) RRelease(i uint64) {
	lm.locks[i].RUnlock()
}
