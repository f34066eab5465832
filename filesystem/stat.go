package filesystem

import "github.com/blockwise/ufs/inode"

// Stat returns the inode record for inodeNumber. It is a pure observation:
// it never allocates, frees, or writes anything.
//
// Errors: ufs.ErrInvalidInode if inodeNumber is out of range,
// ufs.ErrNotAllocated if the bitmap bit is clear.
func (fs *Filesystem) Stat(inodeNumber uint32) (*inode.Record, error) {
	p, err := fs.prelude(inodeNumber)
	if err != nil {
		return nil, err
	}
	return p.record, nil
}
