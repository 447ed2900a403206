// Package jrnl is the append-only operation journal.
//
// Each committed mutation records exactly one entry, appended under the
// same lock scope as the mutation it describes and only after the mutation
// has fully applied: no entry implies no effect, an entry present implies
// the effect is applied. The log records facts, it does not precede them.
//
// Entries are never modified and live for the process lifetime. Replay
// walks them in commit order and yields human-readable records; it is an
// audit facility, not state reconstruction. A WRITE entry carries both the
// prior and new content, so the format is sufficient for a future recovery
// layer to rebuild state from the log.
package jrnl

import (
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mayank-ms088/memfs/common"
)

type Kind uint8

const (
	KindCreate Kind = iota
	KindWrite
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "CREATE"
	case KindWrite:
		return "WRITE"
	case KindDelete:
		return "DELETE"
	default:
		return fmt.Sprintf("KIND(%d)", uint8(k))
	}
}

// Entry describes one committed operation. Old is nil for CREATE.
type Entry struct {
	Kind Kind
	Inum common.Inum
	Old  []byte
	New  []byte
	At   time.Time
}

// Log is the in-memory journal. Record serializes appends, so timestamps
// are non-decreasing across the log.
type Log struct {
	mu      sync.Mutex
	entries []Entry
}

func MkLog() *Log {
	return &Log{}
}

// Record stamps and appends an entry for a mutation that has already
// applied.
func (l *Log) Record(kind Kind, inum common.Inum, old []byte, new []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{
		Kind: kind,
		Inum: inum,
		Old:  old,
		New:  new,
		At:   time.Now(),
	})
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Entries returns a snapshot of the log in commit order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Replay yields one formatted record per entry, lazily, in commit order.
func (l *Log) Replay() iter.Seq[string] {
	entries := l.Entries()
	return func(yield func(string) bool) {
		for _, e := range entries {
			if !yield(e.Record()) {
				return
			}
		}
	}
}

// Record renders the entry the way replay reports it.
func (e Entry) Record() string {
	switch e.Kind {
	case KindCreate:
		return fmt.Sprintf("%s inode %d (%s)", e.Kind, e.Inum, string(e.New))
	default:
		return fmt.Sprintf("%s inode %d (%s -> %s)", e.Kind, e.Inum,
			humanize.Bytes(uint64(len(e.Old))), humanize.Bytes(uint64(len(e.New))))
	}
}
