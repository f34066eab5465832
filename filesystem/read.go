package filesystem

import (
	"github.com/blockwise/ufs"
	"github.com/blockwise/ufs/inode"
)

// Read copies up to size bytes starting at offset 0 of inodeNumber's
// content and returns exactly what was copied (len(result) <= size).
//
// If the inode is a directory, size must be a multiple of the directory
// entry size. Errors: ufs.ErrInvalidSize if the directory read size isn't
// entry-aligned; ufs.ErrInvalidInode / ufs.ErrNotAllocated from the shared
// prelude.
func (fs *Filesystem) Read(inodeNumber uint32, size uint32) ([]byte, error) {
	p, err := fs.prelude(inodeNumber)
	if err != nil {
		return nil, err
	}

	if p.record.IsDirectory() && size%inode.DirEntrySize != 0 {
		return nil, ufs.ErrInvalidSize.WithMessage(
			"directory read size %d is not a multiple of the entry size", size)
	}

	return readFileBytes(fs.dev, p.record, size)
}
