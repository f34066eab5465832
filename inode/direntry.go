package inode

import (
	"bytes"
	"encoding/binary"

	"github.com/blockwise/ufs"
	"github.com/noxer/bytewriter"
)

// DirEntrySize is the on-disk size, in bytes, of one directory entry: a
// fixed-width NUL-terminated name buffer plus a signed 32-bit inode number.
const DirEntrySize = ufs.DirEntNameSize + 4

// DirEntry is the in-memory form of one directory entry.
type DirEntry struct {
	Name  string
	Inode int32
}

// EncodeDirEntry serializes e into exactly DirEntrySize bytes. Name is
// truncated to ufs.DirEntNameSize-1 bytes and NUL-terminated; callers are
// expected to have already validated the name length (spec ufs.ErrInvalidName).
func EncodeDirEntry(e DirEntry) []byte {
	buf := make([]byte, DirEntrySize)
	w := bytewriter.New(buf)

	var nameBuf [ufs.DirEntNameSize]byte
	n := copy(nameBuf[:ufs.DirEntNameSize-1], e.Name)
	nameBuf[n] = 0

	w.Write(nameBuf[:])
	binary.Write(w, binary.LittleEndian, e.Inode)

	return buf
}

// DecodeDirEntry parses DirEntrySize bytes into a DirEntry. The name is cut
// at the first NUL byte.
func DecodeDirEntry(buf []byte) (DirEntry, error) {
	if len(buf) != DirEntrySize {
		return DirEntry{}, ufs.ErrInvalidSize.WithMessage(
			"directory entry must be %d bytes, got %d", DirEntrySize, len(buf))
	}

	nameBuf := buf[:ufs.DirEntNameSize]
	nul := bytes.IndexByte(nameBuf, 0)
	if nul < 0 {
		nul = len(nameBuf)
	}

	reader := bytes.NewReader(buf[ufs.DirEntNameSize:])
	var inodeNumber int32
	if err := binary.Read(reader, binary.LittleEndian, &inodeNumber); err != nil {
		return DirEntry{}, err
	}

	return DirEntry{Name: string(nameBuf[:nul]), Inode: inodeNumber}, nil
}

// EntryIndex returns the one-past-last entry index for a directory of the
// given size, i.e. size / DirEntrySize.
func EntryIndex(size uint32) uint32 {
	return size / DirEntrySize
}
