package filesystem

import (
	"strings"

	"github.com/blockwise/ufs"
)

// Resolve walks a slash-separated absolute path from the root inode,
// calling Lookup once per segment, and returns the inode number of the
// final component along with its parent's inode number (useful to callers
// that need to know where an entry lives, not just what it is).
//
// path must start with "/". "/" alone resolves to ufs.RootInode with
// itself as parent.
func (fs *Filesystem) Resolve(path string) (inodeNumber uint32, parentInodeNumber uint32, err error) {
	if !strings.HasPrefix(path, "/") {
		return 0, 0, ufs.ErrInvalidName.WithMessage("path %q must be absolute", path)
	}

	current := uint32(ufs.RootInode)
	parent := current

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 1 && segments[0] == "" {
		return current, current, nil
	}

	for _, seg := range segments {
		parent = current
		current, err = fs.Lookup(current, seg)
		if err != nil {
			return 0, 0, err
		}
	}

	return current, parent, nil
}
