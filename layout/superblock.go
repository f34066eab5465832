// Package layout owns the on-disk geometry encoded in block 0 (the
// superblock) and the derived addresses of the four regions it describes:
// the inode bitmap, the data bitmap, the inode table, and the data region.
// The superblock is read-only after mkfs; this package never writes it.
package layout

import (
	"bytes"
	"encoding/binary"

	"github.com/blockwise/ufs"
	"github.com/blockwise/ufs/blockdev"
	"github.com/blockwise/ufs/inode"
	"github.com/hashicorp/go-multierror"
	"github.com/noxer/bytewriter"
)

// Superblock describes the geometry of one UFS image. Every *Addr field is
// a block number and every *Len field a block count; NumInodes counts
// inodes and NumData counts data blocks. DataRegionAddr is where the bitmap's bit N
// points when it refers to the data block at relative index N.
type Superblock struct {
	InodeBitmapAddr uint32
	InodeBitmapLen  uint32
	DataBitmapAddr  uint32
	DataBitmapLen   uint32
	InodeRegionAddr uint32
	InodeRegionLen  uint32
	DataRegionAddr  uint32
	NumInodes       uint32
	NumData         uint32
}

// rawFieldCount is the number of uint32 fields serialized, used only to
// size the decode buffer.
const rawFieldCount = 9
const rawSize = rawFieldCount * 4

// Encode serializes sb into a ufs.BlockSize buffer suitable for block 0.
// Exposed for package mkfs, which builds images from scratch; the core
// filesystem never calls it since mkfs is out of scope (spec §1).
func Encode(sb *Superblock) []byte {
	buf := make([]byte, ufs.BlockSize)
	w := bytewriter.New(buf)

	fields := []uint32{
		sb.InodeBitmapAddr, sb.InodeBitmapLen,
		sb.DataBitmapAddr, sb.DataBitmapLen,
		sb.InodeRegionAddr, sb.InodeRegionLen,
		sb.DataRegionAddr,
		sb.NumInodes, sb.NumData,
	}
	for _, f := range fields {
		binary.Write(w, binary.LittleEndian, f)
	}

	return buf
}

func decode(buf []byte) (*Superblock, error) {
	if len(buf) < rawSize {
		return nil, ufs.ErrCorruptSuperblock.WithMessage(
			"block is only %d bytes, need at least %d", len(buf), rawSize)
	}

	reader := bytes.NewReader(buf[:rawSize])
	sb := &Superblock{}
	fields := []*uint32{
		&sb.InodeBitmapAddr, &sb.InodeBitmapLen,
		&sb.DataBitmapAddr, &sb.DataBitmapLen,
		&sb.InodeRegionAddr, &sb.InodeRegionLen,
		&sb.DataRegionAddr,
		&sb.NumInodes, &sb.NumData,
	}
	for _, f := range fields {
		if err := binary.Read(reader, binary.LittleEndian, f); err != nil {
			return nil, err
		}
	}

	return sb, nil
}

// region is a half-open range of block numbers, used only for the overlap
// check in Validate.
type region struct {
	name string
	addr uint32
	len  uint32
}

func (r region) end() uint32 {
	return r.addr + r.len
}

// Validate checks that the four regions described by sb fit within
// totalBlocks and do not overlap one another, and that the bitmaps and
// inode table are large enough to hold the declared counts. Every problem
// found is collected, not just the first, via go-multierror, so a single
// bad image reports everything wrong with its geometry in one error.
func (sb *Superblock) Validate(totalBlocks uint32) error {
	var result *multierror.Error

	regions := []region{
		{"inode bitmap", sb.InodeBitmapAddr, sb.InodeBitmapLen},
		{"data bitmap", sb.DataBitmapAddr, sb.DataBitmapLen},
		{"inode region", sb.InodeRegionAddr, sb.InodeRegionLen},
		{"data region", sb.DataRegionAddr, sb.NumData},
	}

	for _, r := range regions {
		if r.len == 0 {
			result = multierror.Append(result, ufs.ErrCorruptSuperblock.WithMessage(
				"%s has zero length", r.name))
			continue
		}
		if r.end() > totalBlocks {
			result = multierror.Append(result, ufs.ErrCorruptSuperblock.WithMessage(
				"%s [%d, %d) extends past the end of the image (%d blocks)",
				r.name, r.addr, r.end(), totalBlocks))
		}
	}

	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			if regions[i].addr < regions[j].end() && regions[j].addr < regions[i].end() {
				result = multierror.Append(result, ufs.ErrCorruptSuperblock.WithMessage(
					"%s [%d, %d) overlaps %s [%d, %d)",
					regions[i].name, regions[i].addr, regions[i].end(),
					regions[j].name, regions[j].addr, regions[j].end(),
				))
			}
		}
	}

	if sb.InodeBitmapLen*ufs.BlockSize*8 < sb.NumInodes {
		result = multierror.Append(result, ufs.ErrCorruptSuperblock.WithMessage(
			"inode bitmap is too small to cover %d inodes", sb.NumInodes))
	}
	if sb.DataBitmapLen*ufs.BlockSize*8 < sb.NumData {
		result = multierror.Append(result, ufs.ErrCorruptSuperblock.WithMessage(
			"data bitmap is too small to cover %d data blocks", sb.NumData))
	}
	if sb.InodeRegionLen*inode.PerBlock < sb.NumInodes {
		result = multierror.Append(result, ufs.ErrCorruptSuperblock.WithMessage(
			"inode region is too small to hold %d inodes", sb.NumInodes))
	}

	return result.ErrorOrNil()
}

// Read loads and validates the superblock from block 0 of dev.
func Read(dev blockdev.Device) (*Superblock, error) {
	buf, err := dev.ReadBlock(0)
	if err != nil {
		return nil, err
	}

	sb, err := decode(buf)
	if err != nil {
		return nil, err
	}

	if err := sb.Validate(dev.TotalBlocks()); err != nil {
		return nil, err
	}

	return sb, nil
}

// InodeLocation returns the absolute block number and the byte offset
// within that block of inode number n's record in the inode region.
func (sb *Superblock) InodeLocation(n uint32) (block uint32, offset uint32) {
	relBlock, off := inode.Location(n)
	return sb.InodeRegionAddr + relBlock, off
}

// DataBlockAddress converts a data-bitmap-relative block index into its
// absolute block number.
func (sb *Superblock) DataBlockAddress(relative uint32) uint32 {
	return sb.DataRegionAddr + relative
}

// RelativeDataBlock is the inverse of DataBlockAddress.
func (sb *Superblock) RelativeDataBlock(absolute uint32) uint32 {
	return absolute - sb.DataRegionAddr
}
