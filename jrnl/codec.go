package jrnl

import (
	"errors"
	"time"

	"github.com/tchajed/marshal"

	"github.com/mayank-ms088/memfs/common"
)

// frame layout: kind, inum, timestamp (unix nanoseconds), old length, new
// length, then the old and new payloads.
const entryHdrSz uint64 = 5 * 8

var ErrBadFrame = errors.New("journal frame too short")

// Encode renders the entry as a binary frame, the serialization a
// persistence layer would append to durable media.
func (e Entry) Encode() []byte {
	sz := entryHdrSz + uint64(len(e.Old)) + uint64(len(e.New))
	enc := marshal.NewEnc(sz)
	enc.PutInt(uint64(e.Kind))
	enc.PutInt(uint64(e.Inum))
	enc.PutInt(uint64(e.At.UnixNano()))
	enc.PutInt(uint64(len(e.Old)))
	enc.PutInt(uint64(len(e.New)))
	enc.PutBytes(e.Old)
	enc.PutBytes(e.New)
	return enc.Finish()
}

// DecodeEntry parses a frame produced by Encode.
func DecodeEntry(frame []byte) (Entry, error) {
	if uint64(len(frame)) < entryHdrSz {
		return Entry{}, ErrBadFrame
	}
	dec := marshal.NewDec(frame)
	kind := Kind(dec.GetInt())
	inum := common.Inum(dec.GetInt())
	at := time.Unix(0, int64(dec.GetInt()))
	oldLen := dec.GetInt()
	newLen := dec.GetInt()
	// compare against the remaining payload without summing the length
	// fields, which could wrap
	payload := uint64(len(frame)) - entryHdrSz
	if oldLen > payload || newLen != payload-oldLen {
		return Entry{}, ErrBadFrame
	}
	e := Entry{
		Kind: kind,
		Inum: inum,
		At:   at,
	}
	if oldLen > 0 {
		e.Old = dec.GetBytes(oldLen)
	}
	if newLen > 0 {
		e.New = dec.GetBytes(newLen)
	}
	return e, nil
}
