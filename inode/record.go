// Package inode defines the on-disk inode and directory-entry record
// formats and their little-endian encode/decode routines. This replaces
// the raw struct reinterpretation the reference implementation uses
// (casting a block buffer directly to an inode_t*) with explicit
// marshaling, per the core's design notes.
package inode

import (
	"bytes"
	"encoding/binary"

	"github.com/blockwise/ufs"
	"github.com/noxer/bytewriter"
)

// RecordSize is the on-disk size, in bytes, of one inode record: a 4-byte
// type code, a 4-byte size, and ufs.DirectPtrs 4-byte block addresses.
const RecordSize = 4 + 4 + ufs.DirectPtrs*4

// Record is the in-memory form of one inode table entry.
type Record struct {
	Type   ufs.InodeType
	Size   uint32
	Direct [ufs.DirectPtrs]uint32
}

// IsDirectory reports whether the record describes a directory.
func (r *Record) IsDirectory() bool {
	return r.Type == ufs.TypeDirectory
}

// UsedBlocks returns ceil(Size / ufs.BlockSize), the number of direct
// pointers currently populated.
func (r *Record) UsedBlocks() uint32 {
	return ceilDiv(r.Size, ufs.BlockSize)
}

func ceilDiv(n, d uint32) uint32 {
	if n == 0 {
		return 0
	}
	return (n + d - 1) / d
}

// Encode serializes r into exactly RecordSize bytes, little-endian.
func Encode(r *Record) []byte {
	buf := make([]byte, RecordSize)
	w := bytewriter.New(buf)

	binary.Write(w, binary.LittleEndian, uint32(r.Type))
	binary.Write(w, binary.LittleEndian, r.Size)
	binary.Write(w, binary.LittleEndian, r.Direct)

	return buf
}

// Decode parses RecordSize bytes into a Record.
func Decode(buf []byte) (*Record, error) {
	if len(buf) != RecordSize {
		return nil, ufs.ErrInvalidSize.WithMessage(
			"inode record must be %d bytes, got %d", RecordSize, len(buf))
	}

	r := &Record{}
	reader := bytes.NewReader(buf)

	var rawType uint32
	if err := binary.Read(reader, binary.LittleEndian, &rawType); err != nil {
		return nil, err
	}
	r.Type = ufs.InodeType(rawType)

	if err := binary.Read(reader, binary.LittleEndian, &r.Size); err != nil {
		return nil, err
	}
	if err := binary.Read(reader, binary.LittleEndian, &r.Direct); err != nil {
		return nil, err
	}

	return r, nil
}

// PerBlock is the number of fixed-size inode records packed into one
// ufs.BlockSize block.
const PerBlock = ufs.BlockSize / RecordSize

// Location returns the block number (relative to the start of the inode
// region) and the byte offset within that block of inode number n.
func Location(n uint32) (block uint32, offset uint32) {
	return n / PerBlock, (n % PerBlock) * RecordSize
}
