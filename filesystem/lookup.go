package filesystem

import (
	"github.com/blockwise/ufs"
	"github.com/blockwise/ufs/blockdev"
	"github.com/blockwise/ufs/inode"
)

// Lookup returns the inode number of the directory entry named name inside
// the directory parentInodeNumber.
//
// Errors: ufs.ErrInvalidInode if parentInodeNumber is out of range or is
// not a directory, ufs.ErrNotAllocated if its bit is clear,
// ufs.ErrInvalidName if name is empty or too long, ufs.ErrNotFound if no
// entry matches.
func (fs *Filesystem) Lookup(parentInodeNumber uint32, name string) (uint32, error) {
	if err := validateName(name); err != nil {
		return 0, err
	}

	p, err := fs.prelude(parentInodeNumber)
	if err != nil {
		return 0, err
	}

	parent := p.record
	if !parent.IsDirectory() {
		return 0, ufs.ErrInvalidInode.WithMessage("inode %d is not a directory", parentInodeNumber)
	}
	if parent.Size%inode.DirEntrySize != 0 {
		return 0, ufs.ErrInvalidInode.WithMessage("directory %d has a corrupt size", parentInodeNumber)
	}

	entries, err := readDirEntries(fs.dev, parent)
	if err != nil {
		return 0, err
	}

	for _, e := range entries {
		if e.Name == name {
			return uint32(e.Inode), nil
		}
	}

	return 0, ufs.ErrNotFound.WithMessage("%q not found", name)
}

func validateName(name string) error {
	if len(name) == 0 || len(name) >= ufs.DirEntNameSize {
		return ufs.ErrInvalidName.WithMessage(
			"name must be 1 to %d bytes, got %d", ufs.DirEntNameSize-1, len(name))
	}
	return nil
}

// readDirEntries reads the full directory content and decodes it into
// entries. The underlying bytes are always a multiple of the entry size
// for a consistent image (invariant I2).
func readDirEntries(dev blockdev.Device, rec *inode.Record) ([]inode.DirEntry, error) {
	raw, err := readFileBytes(dev, rec, rec.Size)
	if err != nil {
		return nil, err
	}

	count := len(raw) / inode.DirEntrySize
	entries := make([]inode.DirEntry, count)
	for i := 0; i < count; i++ {
		start := i * inode.DirEntrySize
		e, err := inode.DecodeDirEntry(raw[start : start+inode.DirEntrySize])
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}

	return entries, nil
}
