package filesystem

import (
	"sort"

	"github.com/blockwise/ufs"
)

// DirEntry is one named entry returned by ListDir, paired with its inode's
// type so callers don't need a second Stat call per entry.
type DirEntry struct {
	Name  string
	Inode uint32
	Type  ufs.InodeType
}

// ListDir returns the entries of the directory inodeNumber sorted by name,
// byte-wise ascending.
//
// Errors: ufs.ErrInvalidInode if inodeNumber is out of range or not a
// directory; ufs.ErrNotAllocated from the shared prelude.
func (fs *Filesystem) ListDir(inodeNumber uint32) ([]DirEntry, error) {
	p, err := fs.prelude(inodeNumber)
	if err != nil {
		return nil, err
	}
	if !p.record.IsDirectory() {
		return nil, ufs.ErrInvalidInode.WithMessage("inode %d is not a directory", inodeNumber)
	}

	raw, err := readDirEntries(fs.dev, p.record)
	if err != nil {
		return nil, err
	}

	out := make([]DirEntry, len(raw))
	for i, e := range raw {
		n := uint32(e.Inode)
		typ := ufs.InodeType(0)
		if n < p.sb.NumInodes && p.table[n] != nil {
			typ = p.table[n].Type
		}
		out[i] = DirEntry{Name: e.Name, Inode: n, Type: typ}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}
