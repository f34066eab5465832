// Package allocator implements the two bitmap allocators the UFS core uses:
// one over inode numbers, one over data block indices. Both share the same
// algorithm, built on github.com/boljen/go-bitmap the same way the
// teacher's own bitmap allocator (drivers/common/allocatormap.go) is.
package allocator

import (
	"github.com/blockwise/ufs"
	"github.com/blockwise/ufs/blockdev"
	bitmap "github.com/boljen/go-bitmap"
)

// Bitmap wraps a bitmap.Bitmap loaded entirely into memory for the
// duration of one public filesystem operation, together with the capacity
// (num_inodes or num_data) beyond which bits are reserved zero.
type Bitmap struct {
	bits     bitmap.Bitmap
	capacity uint32
}

// Read loads lenBlocks contiguous blocks starting at addr from dev and
// wraps them as a Bitmap with the given capacity. This mirrors the
// reference implementation's readInodeBitmap/readDataBitmap: the whole
// region is read in one pass per operation (spec design notes call this
// acceptable for correctness).
func Read(dev blockdev.Device, addr, lenBlocks, capacity uint32) (*Bitmap, error) {
	raw := make([]byte, 0, lenBlocks*ufs.BlockSize)
	for i := uint32(0); i < lenBlocks; i++ {
		block, err := dev.ReadBlock(addr + i)
		if err != nil {
			return nil, err
		}
		raw = append(raw, block...)
	}
	return &Bitmap{bits: bitmap.Bitmap(raw), capacity: capacity}, nil
}

// Write persists the bitmap back to lenBlocks contiguous blocks starting at
// addr.
func (b *Bitmap) Write(dev blockdev.Device, addr, lenBlocks uint32) error {
	raw := []byte(b.bits)
	for i := uint32(0); i < lenBlocks; i++ {
		start := i * ufs.BlockSize
		end := start + ufs.BlockSize
		if err := dev.WriteBlock(addr+i, raw[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// IsSet is a pure bit test: bit n is allocated.
func (b *Bitmap) IsSet(n uint32) bool {
	if n >= b.capacity {
		return false
	}
	return b.bits.Get(int(n))
}

// FindAndReserve scans the bitmap lowest-byte-first; within the first byte
// that isn't all 1s, it finds the lowest clear bit, sets it, and returns
// its index. Bytes fully set to 0xFF are skipped in one test rather than
// bit-by-bit, matching the reference implementation's scan exactly (spec
// §4.2). Returns ok=false if no bit below capacity is free; the bitmap is
// left unmodified in that case.
//
// Repeated calls without an intervening Clear return strictly increasing
// indices: this determinism is part of the contract, not an implementation
// accident.
func (b *Bitmap) FindAndReserve() (n uint32, ok bool) {
	raw := []byte(b.bits)

	for byteIndex := 0; byteIndex < len(raw); byteIndex++ {
		if raw[byteIndex] == 0xFF {
			continue
		}

		base := uint32(byteIndex * 8)
		for bit := uint32(0); bit < 8; bit++ {
			candidate := base + bit
			if candidate >= b.capacity {
				return 0, false
			}
			if raw[byteIndex]&(1<<bit) == 0 {
				b.bits.Set(int(candidate), true)
				return candidate, true
			}
		}
	}

	return 0, false
}

// Clear releases bit n. Clearing an already-free bit is a no-op.
func (b *Bitmap) Clear(n uint32) {
	if n >= b.capacity {
		return
	}
	b.bits.Set(int(n), false)
}

// Reserve marks bit n allocated regardless of its previous state. Bits at or
// beyond capacity are left untouched. Rollback of a FindAndReserve never
// uses Reserve; it always goes through Clear.
func (b *Bitmap) Reserve(n uint32) {
	if n >= b.capacity {
		return
	}
	b.bits.Set(int(n), true)
}
