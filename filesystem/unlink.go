package filesystem

import (
	"github.com/blockwise/ufs"
	"github.com/blockwise/ufs/inode"
)

// Unlink removes the directory entry named name from parentInodeNumber and,
// since UFS has no hard links, frees the inode and every data block it
// referenced.
//
// Errors: ufs.ErrUnlinkNotAllowed if name is "." or "..";
// ufs.ErrInvalidInode / ufs.ErrNotAllocated from the shared prelude;
// ufs.ErrNotFound if name doesn't exist; ufs.ErrDirNotEmpty if the target is
// a directory with entries other than "." and "..".
func (fs *Filesystem) Unlink(parentInodeNumber uint32, name string) error {
	if name == "." || name == ".." {
		return ufs.ErrUnlinkNotAllowed.WithMessage("cannot unlink %q", name)
	}
	if err := validateName(name); err != nil {
		return err
	}

	p, err := fs.prelude(parentInodeNumber)
	if err != nil {
		return err
	}
	parent := p.record
	if !parent.IsDirectory() {
		return ufs.ErrInvalidInode.WithMessage("inode %d is not a directory", parentInodeNumber)
	}

	entries, err := readDirEntries(fs.dev, parent)
	if err != nil {
		return err
	}

	idx := -1
	for i, e := range entries {
		if e.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ufs.ErrNotFound.WithMessage("%q not found", name)
	}

	targetInodeNumber := uint32(entries[idx].Inode)
	target := p.table[targetInodeNumber]
	if target.IsDirectory() && target.Size > 2*inode.DirEntrySize {
		return ufs.ErrDirNotEmpty
	}

	dataBitmap, err := allocatorReadData(fs.dev, p.sb)
	if err != nil {
		return err
	}
	for i := uint32(0); i < target.UsedBlocks(); i++ {
		ptr := target.Direct[i]
		if ptr == 0 {
			continue
		}
		dataBitmap.Clear(p.sb.RelativeDataBlock(ptr))
	}
	p.inodeBitmap.Clear(targetInodeNumber)
	p.table[targetInodeNumber] = &inode.Record{}

	lastIdx := len(entries) - 1
	moved := idx != lastIdx

	offsetLast := uint32(lastIdx) * inode.DirEntrySize
	blockIndexLast := offsetLast / ufs.BlockSize
	offsetInBlockLast := offsetLast % ufs.BlockSize
	freeTailBlock := offsetLast%ufs.BlockSize == 0

	if moved {
		offsetIdx := uint32(idx) * inode.DirEntrySize
		blockIndexIdx := offsetIdx / ufs.BlockSize
		offsetInBlockIdx := offsetIdx % ufs.BlockSize

		block, err := fs.dev.ReadBlock(parent.Direct[blockIndexIdx])
		if err != nil {
			return err
		}
		copy(block[offsetInBlockIdx:offsetInBlockIdx+inode.DirEntrySize],
			inode.EncodeDirEntry(entries[lastIdx]))
		if err := fs.dev.WriteBlock(parent.Direct[blockIndexIdx], block); err != nil {
			return err
		}
	}

	if !freeTailBlock {
		block, err := fs.dev.ReadBlock(parent.Direct[blockIndexLast])
		if err != nil {
			return err
		}
		for i := uint32(0); i < inode.DirEntrySize; i++ {
			block[offsetInBlockLast+i] = 0
		}
		if err := fs.dev.WriteBlock(parent.Direct[blockIndexLast], block); err != nil {
			return err
		}
	} else {
		tailBlockAddr := parent.Direct[blockIndexLast]
		dataBitmap.Clear(p.sb.RelativeDataBlock(tailBlockAddr))
		parent.Direct[blockIndexLast] = 0
	}

	parent.Size -= inode.DirEntrySize

	if err := p.inodeBitmap.Write(fs.dev, p.sb.InodeBitmapAddr, p.sb.InodeBitmapLen); err != nil {
		return err
	}
	if err := dataBitmap.Write(fs.dev, p.sb.DataBitmapAddr, p.sb.DataBitmapLen); err != nil {
		return err
	}
	if err := writeInodeTable(fs.dev, p.sb, p.table); err != nil {
		return err
	}

	return nil
}
