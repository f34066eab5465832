package filesystem

import (
	"github.com/blockwise/ufs"
	"github.com/blockwise/ufs/allocator"
	"github.com/blockwise/ufs/inode"
)

// Create adds name to the directory parentInodeNumber as a new inode of the
// given type, returning its inode number.
//
// Create is idempotent: if name already exists and has the same type, its
// inode number is returned without allocating anything. If it exists with
// a different type, ufs.ErrInvalidType is returned.
//
// Errors: ufs.ErrInvalidInode if the parent is out of range or not a
// directory; ufs.ErrInvalidName if name is empty or too long;
// ufs.ErrInvalidType if typ is neither ufs.TypeRegular nor
// ufs.TypeDirectory, or on the collision case above; ufs.ErrNotEnoughSpace
// if an inode or data block can't be reserved, in which case every
// reservation made during this call is released and nothing is persisted.
func (fs *Filesystem) Create(parentInodeNumber uint32, typ ufs.InodeType, name string) (uint32, error) {
	if err := validateName(name); err != nil {
		return 0, err
	}
	if !typ.Valid() {
		return 0, ufs.ErrInvalidType.WithMessage("unknown inode type %d", typ)
	}

	p, err := fs.prelude(parentInodeNumber)
	if err != nil {
		return 0, err
	}
	parent := p.record
	if !parent.IsDirectory() {
		return 0, ufs.ErrInvalidInode.WithMessage("inode %d is not a directory", parentInodeNumber)
	}

	entries, err := readDirEntries(fs.dev, parent)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		if e.Name == name {
			if ufs.InodeType(p.table[e.Inode].Type) == typ {
				return uint32(e.Inode), nil
			}
			return 0, ufs.ErrInvalidType.WithMessage(
				"%q already exists with a different type", name)
		}
	}

	inodeBitmap, err := allocator.Read(fs.dev, p.sb.InodeBitmapAddr, p.sb.InodeBitmapLen, p.sb.NumInodes)
	if err != nil {
		return 0, err
	}

	newInodeNumber, ok := inodeBitmap.FindAndReserve()
	if !ok {
		return 0, ufs.ErrNotEnoughSpace
	}

	var dataBitmap *allocator.Bitmap
	loadDataBitmap := func() error {
		if dataBitmap != nil {
			return nil
		}
		dataBitmap, err = allocatorReadData(fs.dev, p.sb)
		return err
	}

	abortInode := func() (uint32, error) {
		inodeBitmap.Clear(newInodeNumber)
		return 0, ufs.ErrNotEnoughSpace
	}

	newRecord := &inode.Record{Type: typ}
	var newDirBlockAddr uint32

	if typ == ufs.TypeDirectory {
		if err := loadDataBitmap(); err != nil {
			return 0, err
		}
		n, ok := dataBitmap.FindAndReserve()
		if !ok {
			return abortInode()
		}
		newDirBlockAddr = p.sb.DataBlockAddress(n)
		newRecord.Size = 2 * inode.DirEntrySize
		newRecord.Direct[0] = newDirBlockAddr
	}

	parentOffset := parent.Size
	needsNewParentBlock := parentOffset%ufs.BlockSize == 0
	var newParentBlockIndex uint32
	var newParentBlockAddr uint32

	if needsNewParentBlock {
		if parentOffset >= ufs.MaxFileSize {
			if typ == ufs.TypeDirectory {
				dataBitmap.Clear(p.sb.RelativeDataBlock(newDirBlockAddr))
			}
			return abortInode()
		}
		if err := loadDataBitmap(); err != nil {
			return 0, err
		}
		n, ok := dataBitmap.FindAndReserve()
		if !ok {
			if typ == ufs.TypeDirectory {
				dataBitmap.Clear(p.sb.RelativeDataBlock(newDirBlockAddr))
			}
			return abortInode()
		}
		newParentBlockIndex = parentOffset / ufs.BlockSize
		newParentBlockAddr = p.sb.DataBlockAddress(n)
		parent.Direct[newParentBlockIndex] = newParentBlockAddr
	}

	p.table[newInodeNumber] = newRecord
	parent.Size += inode.DirEntrySize

	// Persist in the order spec.md §4.3.5 step 8 mandates: inode bitmap,
	// data bitmap, inode table, then the affected data blocks.
	if err := inodeBitmap.Write(fs.dev, p.sb.InodeBitmapAddr, p.sb.InodeBitmapLen); err != nil {
		return 0, err
	}
	if dataBitmap != nil {
		if err := dataBitmap.Write(fs.dev, p.sb.DataBitmapAddr, p.sb.DataBitmapLen); err != nil {
			return 0, err
		}
	}
	if err := writeInodeTable(fs.dev, p.sb, p.table); err != nil {
		return 0, err
	}

	if typ == ufs.TypeDirectory {
		block := make([]byte, ufs.BlockSize)
		copy(block[0:inode.DirEntrySize], inode.EncodeDirEntry(inode.DirEntry{Name: ".", Inode: int32(newInodeNumber)}))
		copy(block[inode.DirEntrySize:2*inode.DirEntrySize], inode.EncodeDirEntry(inode.DirEntry{Name: "..", Inode: int32(parentInodeNumber)}))
		if err := fs.dev.WriteBlock(newDirBlockAddr, block); err != nil {
			return 0, err
		}
	}

	blockIndex := parentOffset / ufs.BlockSize
	offsetInBlock := parentOffset % ufs.BlockSize
	blockAddr := parent.Direct[blockIndex]

	var parentBlock []byte
	if needsNewParentBlock {
		parentBlock = make([]byte, ufs.BlockSize)
	} else {
		parentBlock, err = fs.dev.ReadBlock(blockAddr)
		if err != nil {
			return 0, err
		}
	}
	copy(parentBlock[offsetInBlock:offsetInBlock+inode.DirEntrySize],
		inode.EncodeDirEntry(inode.DirEntry{Name: name, Inode: int32(newInodeNumber)}))
	if err := fs.dev.WriteBlock(blockAddr, parentBlock); err != nil {
		return 0, err
	}

	return newInodeNumber, nil
}
