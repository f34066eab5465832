// Package blockdev implements the block device port the UFS core sits on
// top of: fixed ufs.BlockSize blocks addressed by block number, plus a
// begin/commit/rollback transaction scope. This is the "external
// collaborator" of the core design (spec §6); it is implemented here so
// the rest of the module is runnable and testable, not because the core
// depends on any one device implementation.
package blockdev

import "github.com/blockwise/ufs"

// Device is the contract the filesystem layer requires of a block device.
// Reads and writes are infallible within a valid image: an out-of-range
// block number is a programming error, reported as an error return rather
// than a panic so callers (including the filesystem layer) can convert it
// into ufs.ErrInvalidInode-style failures without recovering from a panic.
//
// Begin/Commit/Rollback buffer writes so that a single public operation is
// all-or-nothing: every write the filesystem layer issues between Begin and
// Commit either lands atomically or, on Rollback, leaves the backing store
// exactly as it was before Begin was called.
type Device interface {
	// TotalBlocks returns the number of ufs.BlockSize blocks in the image.
	TotalBlocks() uint32

	// ReadBlock returns the contents of block n. If a transaction is in
	// progress and n has a pending write, the pending content is returned.
	ReadBlock(n uint32) ([]byte, error)

	// WriteBlock stages a write of len(buf) == ufs.BlockSize bytes to block
	// n. Outside of a transaction the write lands immediately.
	WriteBlock(n uint32, buf []byte) error

	// Begin starts buffering writes. Calling Begin while already inside a
	// transaction is an error.
	Begin() error

	// Commit flushes every buffered block to the backing store in ascending
	// block-number order (the last write staged for a block wins) and ends
	// the transaction.
	Commit() error

	// Rollback discards every buffered write and ends the transaction.
	Rollback() error
}

func checkBlockNumber(n, total uint32) error {
	if n >= total {
		return ufs.ErrInvalidInode.WithMessage("block %d not in [0, %d)", n, total)
	}
	return nil
}

func checkBlockSize(buf []byte) error {
	if len(buf) != ufs.BlockSize {
		return ufs.ErrInvalidSize.WithMessage(
			"block buffer must be exactly %d bytes, got %d", ufs.BlockSize, len(buf))
	}
	return nil
}
