// Package ufs defines the shared vocabulary of the UFS core: the on-disk
// constants every layer (layout, allocator, inode, filesystem) agrees on,
// and the stable error taxonomy returned by the public operations.
package ufs

// BlockSize is the size, in bytes, of a single block on the device. All
// reads and writes to the block device happen in multiples of this size.
const BlockSize = 4096

// DirectPtrs is the number of direct block pointers stored in an inode.
const DirectPtrs = 30

// DirEntNameSize is the size, in bytes, of the fixed-width NUL-terminated
// name buffer in a directory entry.
const DirEntNameSize = 28

// RootInode is the inode number of the filesystem root directory. It is
// always allocated and its ".." entry points to itself.
const RootInode = 0

// MaxFileSize is the largest size, in bytes, a regular file can have:
// every direct pointer populated.
const MaxFileSize = DirectPtrs * BlockSize

// InodeType identifies what an inode represents. The numeric values are
// part of the on-disk format and must not change.
type InodeType uint8

const (
	// TypeRegular marks an inode as a plain file.
	TypeRegular InodeType = 1
	// TypeDirectory marks an inode as a directory.
	TypeDirectory InodeType = 2
)

func (t InodeType) String() string {
	switch t {
	case TypeRegular:
		return "regular"
	case TypeDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

func (t InodeType) Valid() bool {
	return t == TypeRegular || t == TypeDirectory
}
