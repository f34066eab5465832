// Package filesystem implements the six public UFS operations — Stat,
// Lookup, Read, Write, Create, Unlink — and owns every cross-region
// ordering and rollback decision between the inode bitmap, the data
// bitmap, the inode table, and directory data blocks.
package filesystem

import (
	"github.com/blockwise/ufs"
	"github.com/blockwise/ufs/allocator"
	"github.com/blockwise/ufs/blockdev"
	"github.com/blockwise/ufs/inode"
	"github.com/blockwise/ufs/layout"
)

// Filesystem is the entry point for the six public operations. It holds no
// state of its own beyond the device: every operation re-reads the
// superblock, bitmaps, and inode table it needs, matching the reference
// design's "no caching above the device layer" model (spec §5, Non-goals).
type Filesystem struct {
	dev blockdev.Device
}

// New wraps dev as a Filesystem. dev must already hold a validly
// initialized image; mkfs is out of scope for this package.
func New(dev blockdev.Device) *Filesystem {
	return &Filesystem{dev: dev}
}

// readInodeTable loads every inode record in the inode region.
func readInodeTable(dev blockdev.Device, sb *layout.Superblock) ([]*inode.Record, error) {
	records := make([]*inode.Record, sb.NumInodes)

	for i := uint32(0); i < sb.InodeRegionLen; i++ {
		block, err := dev.ReadBlock(sb.InodeRegionAddr + i)
		if err != nil {
			return nil, err
		}

		for slot := uint32(0); slot < inode.PerBlock; slot++ {
			n := i*inode.PerBlock + slot
			if n >= sb.NumInodes {
				break
			}
			start := slot * inode.RecordSize
			rec, err := inode.Decode(block[start : start+inode.RecordSize])
			if err != nil {
				return nil, err
			}
			records[n] = rec
		}
	}

	return records, nil
}

// writeInodeTable persists every inode record back to the inode region.
func writeInodeTable(dev blockdev.Device, sb *layout.Superblock, records []*inode.Record) error {
	for i := uint32(0); i < sb.InodeRegionLen; i++ {
		block := make([]byte, ufs.BlockSize)

		for slot := uint32(0); slot < inode.PerBlock; slot++ {
			n := i*inode.PerBlock + slot
			if n >= sb.NumInodes {
				break
			}
			start := slot * inode.RecordSize
			copy(block[start:start+inode.RecordSize], inode.Encode(records[n]))
		}

		if err := dev.WriteBlock(sb.InodeRegionAddr+i, block); err != nil {
			return err
		}
	}
	return nil
}

// prelude is the shared validation every public operation performs first:
// read the superblock, validate the inode number, check the bitmap bit,
// and fetch the record. It returns everything a caller might subsequently
// need to mutate and persist.
type prelude struct {
	sb          *layout.Superblock
	inodeBitmap *allocator.Bitmap
	table       []*inode.Record
	record      *inode.Record
}

func (fs *Filesystem) prelude(n uint32) (*prelude, error) {
	sb, err := layout.Read(fs.dev)
	if err != nil {
		return nil, err
	}

	if n >= sb.NumInodes {
		return nil, ufs.ErrInvalidInode.WithMessage("inode %d not in [0, %d)", n, sb.NumInodes)
	}

	inodeBitmap, err := allocator.Read(fs.dev, sb.InodeBitmapAddr, sb.InodeBitmapLen, sb.NumInodes)
	if err != nil {
		return nil, err
	}
	if !inodeBitmap.IsSet(n) {
		return nil, ufs.ErrNotAllocated.WithMessage("inode %d is not allocated", n)
	}

	table, err := readInodeTable(fs.dev, sb)
	if err != nil {
		return nil, err
	}

	return &prelude{sb: sb, inodeBitmap: inodeBitmap, table: table, record: table[n]}, nil
}

// allocatorReadData loads the data bitmap for sb.
func allocatorReadData(dev blockdev.Device, sb *layout.Superblock) (*allocator.Bitmap, error) {
	return allocator.Read(dev, sb.DataBitmapAddr, sb.DataBitmapLen, sb.NumData)
}

// readFileBytes copies min(size, rec.Size) bytes from rec's direct blocks,
// starting at offset 0. It stops early if a direct pointer is zero before
// the expected end; invariant I3 implies this cannot happen for a
// consistent image, so the stop is defensive and the returned slice simply
// reflects what was actually copied (spec §4.3.3).
func readFileBytes(dev blockdev.Device, rec *inode.Record, size uint32) ([]byte, error) {
	toRead := size
	if rec.Size < toRead {
		toRead = rec.Size
	}

	out := make([]byte, 0, toRead)
	blockIndex := uint32(0)

	for uint32(len(out)) < toRead && blockIndex < ufs.DirectPtrs {
		ptr := rec.Direct[blockIndex]
		if ptr == 0 {
			break
		}

		block, err := dev.ReadBlock(ptr)
		if err != nil {
			return nil, err
		}

		remaining := toRead - uint32(len(out))
		n := uint32(ufs.BlockSize)
		if remaining < n {
			n = remaining
		}
		out = append(out, block[:n]...)
		blockIndex++
	}

	return out, nil
}
