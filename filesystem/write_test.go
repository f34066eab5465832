package filesystem_test

import (
	"bytes"
	"testing"

	"github.com/blockwise/ufs"
	"github.com/blockwise/ufs/filesystem"
	"github.com/blockwise/ufs/fsfixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystem__Write__OverwritesNotAppends(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	ino, err := fs.Create(ufs.RootInode, ufs.TypeRegular, "f")
	require.NoError(t, err)

	_, err = fs.Write(ino, []byte("aaaaaaaaaa"))
	require.NoError(t, err)

	_, err = fs.Write(ino, []byte("bb"))
	require.NoError(t, err)

	got, err := fs.Read(ino, 100)
	require.NoError(t, err)
	assert.Equal(t, []byte("bb"), got)
}

func TestFilesystem__Write__GrowsAcrossMultipleBlocks(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	ino, err := fs.Create(ufs.RootInode, ufs.TypeRegular, "big")
	require.NoError(t, err)

	content := bytes.Repeat([]byte("x"), ufs.BlockSize*3+17)
	n, err := fs.Write(ino, content)
	require.NoError(t, err)
	assert.Equal(t, len(content), n)

	rec, err := fs.Stat(ino)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), rec.UsedBlocks())

	got, err := fs.Read(ino, uint32(len(content)))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestFilesystem__Write__ShrinkFreesBlocks(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	ino, err := fs.Create(ufs.RootInode, ufs.TypeRegular, "shrink")
	require.NoError(t, err)

	_, err = fs.Write(ino, bytes.Repeat([]byte("y"), ufs.BlockSize*2))
	require.NoError(t, err)

	_, err = fs.Write(ino, []byte("z"))
	require.NoError(t, err)

	rec, err := fs.Stat(ino)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), rec.UsedBlocks())
	assert.Equal(t, uint32(0), rec.Direct[1])
}

func TestFilesystem__Write__RejectsOversizedContent(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	ino, err := fs.Create(ufs.RootInode, ufs.TypeRegular, "huge")
	require.NoError(t, err)

	_, err = fs.Write(ino, make([]byte, ufs.MaxFileSize+1))
	assert.ErrorIs(t, err, ufs.ErrInvalidSize)
}

func TestFilesystem__Write__RejectsDirectory(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	_, err := fs.Write(ufs.RootInode, []byte("x"))
	assert.ErrorIs(t, err, ufs.ErrWriteToDir)
}

func TestFilesystem__Write__NotEnoughSpaceRollsBack(t *testing.T) {
	img := fsfixture.Build(t, 32, 2)
	fs := filesystem.New(img.Device)

	ino, err := fs.Create(ufs.RootInode, ufs.TypeRegular, "f")
	require.NoError(t, err)

	// Only one free data block remains (index 0 is the root directory's).
	_, err = fs.Write(ino, bytes.Repeat([]byte("a"), ufs.BlockSize*3))
	assert.ErrorIs(t, err, ufs.ErrNotEnoughSpace)

	rec, err := fs.Stat(ino)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), rec.Size)

	other, err := fs.Create(ufs.RootInode, ufs.TypeRegular, "g")
	require.NoError(t, err)
	_, err = fs.Write(other, []byte("fits"))
	require.NoError(t, err)
}
