package filesystem_test

import (
	"fmt"
	"testing"

	"github.com/blockwise/ufs"
	"github.com/blockwise/ufs/filesystem"
	"github.com/blockwise/ufs/fsfixture"
	"github.com/blockwise/ufs/inode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystem__Create__RegularFile(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	ino, err := fs.Create(ufs.RootInode, ufs.TypeRegular, "a.txt")
	require.NoError(t, err)
	assert.NotEqual(t, uint32(ufs.RootInode), ino)

	rec, err := fs.Stat(ino)
	require.NoError(t, err)
	assert.Equal(t, ufs.TypeRegular, rec.Type)
	assert.Equal(t, uint32(0), rec.Size)
}

func TestFilesystem__Create__Directory(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	ino, err := fs.Create(ufs.RootInode, ufs.TypeDirectory, "sub")
	require.NoError(t, err)

	self, err := fs.Lookup(ino, ".")
	require.NoError(t, err)
	assert.Equal(t, ino, self)

	parent, err := fs.Lookup(ino, "..")
	require.NoError(t, err)
	assert.Equal(t, uint32(ufs.RootInode), parent)
}

func TestFilesystem__Create__IsIdempotentForSameType(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	first, err := fs.Create(ufs.RootInode, ufs.TypeRegular, "x")
	require.NoError(t, err)

	second, err := fs.Create(ufs.RootInode, ufs.TypeRegular, "x")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFilesystem__Create__RejectsTypeMismatchOnCollision(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	_, err := fs.Create(ufs.RootInode, ufs.TypeRegular, "x")
	require.NoError(t, err)

	_, err = fs.Create(ufs.RootInode, ufs.TypeDirectory, "x")
	assert.ErrorIs(t, err, ufs.ErrInvalidType)
}

func TestFilesystem__Create__RejectsEmptyName(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	_, err := fs.Create(ufs.RootInode, ufs.TypeRegular, "")
	assert.ErrorIs(t, err, ufs.ErrInvalidName)
}

func TestFilesystem__Create__RejectsUnknownType(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	_, err := fs.Create(ufs.RootInode, ufs.InodeType(99), "x")
	assert.ErrorIs(t, err, ufs.ErrInvalidType)
}

func TestFilesystem__Create__NoFreeInodesRollsBackNothingPersisted(t *testing.T) {
	img := fsfixture.Build(t, 1, 32)
	fs := filesystem.New(img.Device)

	_, err := fs.Create(ufs.RootInode, ufs.TypeRegular, "x")
	assert.ErrorIs(t, err, ufs.ErrNotEnoughSpace)

	rec, err := fs.Stat(ufs.RootInode)
	require.NoError(t, err)
	assert.Equal(t, uint32(2*inode.DirEntrySize), rec.Size)
}

func TestFilesystem__Create__GrowsParentIntoSecondBlock(t *testing.T) {
	img := fsfixture.Build(t, 300, 300)
	fs := filesystem.New(img.Device)

	entriesPerBlock := ufs.BlockSize / inode.DirEntrySize
	// Root already holds "." and "..". Fill the rest of its first block.
	for i := 0; i < entriesPerBlock-2; i++ {
		_, err := fs.Create(ufs.RootInode, ufs.TypeRegular, fmt.Sprintf("f%d", i))
		require.NoError(t, err)
	}

	rec, err := fs.Stat(ufs.RootInode)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), rec.UsedBlocks())

	_, err = fs.Create(ufs.RootInode, ufs.TypeRegular, "overflow")
	require.NoError(t, err)

	rec, err = fs.Stat(ufs.RootInode)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), rec.UsedBlocks())

	n, err := fs.Lookup(ufs.RootInode, "overflow")
	require.NoError(t, err)
	assert.NotEqual(t, uint32(0), n)
}
