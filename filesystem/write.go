package filesystem

import "github.com/blockwise/ufs"

// Write overwrites inodeNumber's content with exactly data: the new size is
// len(data), not an append. Existing content beyond len(data) is discarded
// and its data blocks are freed.
//
// Errors: ufs.ErrInvalidSize if the write would need more than
// ufs.DirectPtrs blocks (i.e. exceeds ufs.MaxFileSize);
// ufs.ErrWriteToDir if inodeNumber is a directory; ufs.ErrNotEnoughSpace if
// there aren't enough free data blocks to grow into, in which case every
// bitmap bit reserved during this call is released before returning and
// the inode is left untouched.
func (fs *Filesystem) Write(inodeNumber uint32, data []byte) (int, error) {
	size := uint32(len(data))
	requiredBlocks := ceilDivBlocks(size)
	if requiredBlocks > ufs.DirectPtrs {
		return 0, ufs.ErrInvalidSize.WithMessage(
			"write of %d bytes needs %d blocks, more than the %d direct pointers",
			size, requiredBlocks, ufs.DirectPtrs)
	}

	p, err := fs.prelude(inodeNumber)
	if err != nil {
		return 0, err
	}
	if p.record.IsDirectory() {
		return 0, ufs.ErrWriteToDir
	}

	currentBlocks := p.record.UsedBlocks()

	dataBitmap, err := allocatorReadData(fs.dev, p.sb)
	if err != nil {
		return 0, err
	}

	var reserved []uint32
	for i := currentBlocks; i < requiredBlocks; i++ {
		n, ok := dataBitmap.FindAndReserve()
		if !ok {
			for _, r := range reserved {
				dataBitmap.Clear(r)
			}
			return 0, ufs.ErrNotEnoughSpace
		}
		reserved = append(reserved, n)
		p.record.Direct[i] = p.sb.DataBlockAddress(n)
	}

	for i := requiredBlocks; i < currentBlocks; i++ {
		relative := p.sb.RelativeDataBlock(p.record.Direct[i])
		dataBitmap.Clear(relative)
		p.record.Direct[i] = 0
	}

	if err := dataBitmap.Write(fs.dev, p.sb.DataBitmapAddr, p.sb.DataBitmapLen); err != nil {
		return 0, err
	}

	written := 0
	for i := uint32(0); i < requiredBlocks; i++ {
		block := make([]byte, ufs.BlockSize)
		start := i * ufs.BlockSize
		end := start + ufs.BlockSize
		if end > size {
			end = size
		}
		n := copy(block, data[start:end])
		written += n

		if err := fs.dev.WriteBlock(p.record.Direct[i], block); err != nil {
			return 0, err
		}
	}

	p.record.Size = size
	if err := writeInodeTable(fs.dev, p.sb, p.table); err != nil {
		return 0, err
	}

	return written, nil
}

func ceilDivBlocks(size uint32) uint32 {
	if size == 0 {
		return 0
	}
	return (size + ufs.BlockSize - 1) / ufs.BlockSize
}
