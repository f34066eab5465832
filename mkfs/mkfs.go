// Package mkfs builds a fresh, valid UFS image: superblock geometry, an
// allocated root directory, and zeroed bitmaps and inode table everywhere
// else. Formatting an image is explicitly out of the filesystem package's
// scope (spec design notes, Non-goals) — this package is the one place that
// responsibility lives, used by both the format CLI command and the
// fsfixture test helper.
package mkfs

import (
	"os"

	"github.com/blockwise/ufs"
	"github.com/blockwise/ufs/blockdev"
	"github.com/blockwise/ufs/inode"
	"github.com/blockwise/ufs/layout"
)

func ceilDiv(n, d uint32) uint32 {
	if n == 0 {
		return 0
	}
	return (n + d - 1) / d
}

// ComputeSuperblock lays out a superblock for an image holding numInodes
// inodes and numData data blocks: bitmaps and the inode table immediately
// follow block 0, and the data region follows them.
func ComputeSuperblock(numInodes, numData uint32) *layout.Superblock {
	inodeBitmapLen := ceilDiv(numInodes, 8*ufs.BlockSize)
	if inodeBitmapLen == 0 {
		inodeBitmapLen = 1
	}
	dataBitmapLen := ceilDiv(numData, 8*ufs.BlockSize)
	if dataBitmapLen == 0 {
		dataBitmapLen = 1
	}
	inodeRegionLen := ceilDiv(numInodes, inode.PerBlock)
	if inodeRegionLen == 0 {
		inodeRegionLen = 1
	}

	return &layout.Superblock{
		InodeBitmapAddr: 1,
		InodeBitmapLen:  inodeBitmapLen,
		DataBitmapAddr:  1 + inodeBitmapLen,
		DataBitmapLen:   dataBitmapLen,
		InodeRegionAddr: 1 + inodeBitmapLen + dataBitmapLen,
		InodeRegionLen:  inodeRegionLen,
		DataRegionAddr:  1 + inodeBitmapLen + dataBitmapLen + inodeRegionLen,
		NumInodes:       numInodes,
		NumData:         numData,
	}
}

// TotalBlocks returns the number of blocks an image with this geometry
// occupies end to end, including the superblock itself.
func TotalBlocks(sb *layout.Superblock) uint32 {
	return sb.DataRegionAddr + sb.NumData
}

// Format writes sb and an allocated, empty root directory (inode 0, with
// "." and ".." both pointing at itself) to dev. dev must already be sized
// for sb (TotalBlocks(sb) blocks); every other inode and data block is left
// unallocated.
func Format(dev blockdev.Device, sb *layout.Superblock) error {
	superblockBlock := layout.Encode(sb)
	if err := dev.WriteBlock(0, superblockBlock); err != nil {
		return err
	}

	if err := writeBitmapBit(dev, sb.InodeBitmapAddr, sb.InodeBitmapLen, 0, true); err != nil {
		return err
	}
	if err := writeBitmapBit(dev, sb.DataBitmapAddr, sb.DataBitmapLen, 0, true); err != nil {
		return err
	}

	rootBlock := sb.DataBlockAddress(0)
	root := &inode.Record{Type: ufs.TypeDirectory, Size: 2 * inode.DirEntrySize}
	root.Direct[0] = rootBlock

	blockNo, offset := sb.InodeLocation(0)
	table, err := dev.ReadBlock(blockNo)
	if err != nil {
		return err
	}
	copy(table[offset:offset+inode.RecordSize], inode.Encode(root))
	if err := dev.WriteBlock(blockNo, table); err != nil {
		return err
	}

	dirBlock := make([]byte, ufs.BlockSize)
	copy(dirBlock[0:inode.DirEntrySize], inode.EncodeDirEntry(inode.DirEntry{Name: ".", Inode: 0}))
	copy(dirBlock[inode.DirEntrySize:2*inode.DirEntrySize], inode.EncodeDirEntry(inode.DirEntry{Name: "..", Inode: 0}))
	return dev.WriteBlock(rootBlock, dirBlock)
}

func writeBitmapBit(dev blockdev.Device, addr, lenBlocks, n uint32, value bool) error {
	blockIndex := addr + n/(8*ufs.BlockSize)
	byteOffset := (n / 8) % ufs.BlockSize
	block, err := dev.ReadBlock(blockIndex)
	if err != nil {
		return err
	}
	mask := byte(1) << (n % 8)
	if value {
		block[byteOffset] |= mask
	} else {
		block[byteOffset] &^= mask
	}
	return dev.WriteBlock(blockIndex, block)
}

// FormatFile creates a new image file at path sized for numInodes inodes
// and numData data blocks, and formats it.
func FormatFile(path string, numInodes, numData uint32) error {
	sb := ComputeSuperblock(numInodes, numData)
	size := int64(TotalBlocks(sb)) * ufs.BlockSize

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := file.Truncate(size); err != nil {
		return err
	}

	dev, err := blockdev.OpenFileDevice(path)
	if err != nil {
		return err
	}
	defer dev.Close()

	return Format(dev, sb)
}
