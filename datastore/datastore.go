// Package datastore moves file content between byte ranges and allocated
// disk blocks.
//
// Content is located through the inode's pointer structure: NDIRECT direct
// block pointers, one indirect block of pointers, and one double-indirect
// block of indirect-block pointers. Blocks are granted by the bitmap
// allocator on demand as a file grows; an inode's size is the sum of valid
// bytes across its allocated blocks, never a single unbounded buffer.
//
// Indirect blocks hold NINDIRECT block numbers, encoded with the marshal
// block codec.
package datastore

import (
	"errors"

	"github.com/tchajed/goose/machine/disk"
	"github.com/tchajed/marshal"

	"github.com/mayank-ms088/memfs/alloc"
	"github.com/mayank-ms088/memfs/common"
	"github.com/mayank-ms088/memfs/inode"
	"github.com/mayank-ms088/memfs/util"
)

// ErrMaxFileSize is returned when a write would grow a file past what the
// pointer structure can address.
var ErrMaxFileSize = errors.New("file exceeds maximum size")

type Store struct {
	d disk.Disk
	a *alloc.Alloc
}

func MkStore(d disk.Disk, a *alloc.Alloc) *Store {
	return &Store{d: d, a: a}
}

func (s *Store) readPtrs(bn common.Bnum) []common.Bnum {
	dec := marshal.NewDec(s.d.Read(bn))
	return dec.GetInts(common.NINDIRECT)
}

func (s *Store) writePtrs(bn common.Bnum, ptrs []common.Bnum) {
	enc := marshal.NewEnc(disk.BlockSize)
	enc.PutInts(ptrs)
	s.d.Write(bn, enc.Finish())
}

// allocPtrBlock grants a pointer block initialized to all-null pointers.
func (s *Store) allocPtrBlock() (common.Bnum, error) {
	bn, err := s.a.AllocNum()
	if err != nil {
		return common.NULLBNUM, err
	}
	s.writePtrs(bn, make([]common.Bnum, common.NINDIRECT))
	return bn, nil
}

// bmap returns the disk block backing logical block lbn of ip, allocating
// data and pointer blocks as needed.
func (s *Store) bmap(ip *inode.Inode, lbn uint64) (common.Bnum, error) {
	if lbn < common.NDIRECT {
		if ip.Direct[lbn] == common.NULLBNUM {
			bn, err := s.a.AllocNum()
			if err != nil {
				return common.NULLBNUM, err
			}
			ip.Direct[lbn] = bn
		}
		return ip.Direct[lbn], nil
	}
	lbn -= common.NDIRECT

	if lbn < common.NINDIRECT {
		if ip.Indirect == common.NULLBNUM {
			bn, err := s.allocPtrBlock()
			if err != nil {
				return common.NULLBNUM, err
			}
			ip.Indirect = bn
		}
		ptrs := s.readPtrs(ip.Indirect)
		if ptrs[lbn] == common.NULLBNUM {
			bn, err := s.a.AllocNum()
			if err != nil {
				return common.NULLBNUM, err
			}
			ptrs[lbn] = bn
			s.writePtrs(ip.Indirect, ptrs)
		}
		return ptrs[lbn], nil
	}
	lbn -= common.NINDIRECT

	if lbn < common.NINDIRECT*common.NINDIRECT {
		if ip.DblIndirect == common.NULLBNUM {
			bn, err := s.allocPtrBlock()
			if err != nil {
				return common.NULLBNUM, err
			}
			ip.DblIndirect = bn
		}
		top := s.readPtrs(ip.DblIndirect)
		i := lbn / common.NINDIRECT
		j := lbn % common.NINDIRECT
		if top[i] == common.NULLBNUM {
			bn, err := s.allocPtrBlock()
			if err != nil {
				return common.NULLBNUM, err
			}
			top[i] = bn
			s.writePtrs(ip.DblIndirect, top)
		}
		ptrs := s.readPtrs(top[i])
		if ptrs[j] == common.NULLBNUM {
			bn, err := s.a.AllocNum()
			if err != nil {
				return common.NULLBNUM, err
			}
			ptrs[j] = bn
			s.writePtrs(top[i], ptrs)
		}
		return ptrs[j], nil
	}

	return common.NULLBNUM, ErrMaxFileSize
}

// lookup is the read-side counterpart of bmap; it never allocates and
// returns NULLBNUM for a block that was never written.
func (s *Store) lookup(ip *inode.Inode, lbn uint64) common.Bnum {
	if lbn < common.NDIRECT {
		return ip.Direct[lbn]
	}
	lbn -= common.NDIRECT

	if lbn < common.NINDIRECT {
		if ip.Indirect == common.NULLBNUM {
			return common.NULLBNUM
		}
		return s.readPtrs(ip.Indirect)[lbn]
	}
	lbn -= common.NINDIRECT

	if lbn < common.NINDIRECT*common.NINDIRECT {
		if ip.DblIndirect == common.NULLBNUM {
			return common.NULLBNUM
		}
		top := s.readPtrs(ip.DblIndirect)
		if top[lbn/common.NINDIRECT] == common.NULLBNUM {
			return common.NULLBNUM
		}
		return s.readPtrs(top[lbn/common.NINDIRECT])[lbn%common.NINDIRECT]
	}

	return common.NULLBNUM
}

// WriteAt copies data into the blocks backing ip starting at byte offset
// off, extending the pointer structure for any shortfall. The inode's size
// field is left to the caller.
func (s *Store) WriteAt(ip *inode.Inode, off uint64, data []byte) error {
	n := uint64(len(data))
	if util.SumOverflows(off, n) || off+n > common.MAXFILEBLOCKS*disk.BlockSize {
		return ErrMaxFileSize
	}

	for pos := uint64(0); pos < n; {
		lbn := (off + pos) / disk.BlockSize
		boff := (off + pos) % disk.BlockSize
		bn, err := s.bmap(ip, lbn)
		if err != nil {
			return err
		}
		cnt := util.Min(disk.BlockSize-boff, n-pos)
		blk := s.d.Read(bn)
		copy(blk[boff:boff+cnt], data[pos:pos+cnt])
		s.d.Write(bn, blk)
		pos += cnt
	}
	return nil
}

// ReadAt reassembles n contiguous bytes of ip starting at off. Blocks that
// were never allocated read as zeroes.
func (s *Store) ReadAt(ip *inode.Inode, off uint64, n uint64) []byte {
	out := make([]byte, n)

	for pos := uint64(0); pos < n; {
		lbn := (off + pos) / disk.BlockSize
		boff := (off + pos) % disk.BlockSize
		cnt := util.Min(disk.BlockSize-boff, n-pos)
		if bn := s.lookup(ip, lbn); bn != common.NULLBNUM {
			blk := s.d.Read(bn)
			copy(out[pos:pos+cnt], blk[boff:boff+cnt])
		}
		pos += cnt
	}
	return out
}
