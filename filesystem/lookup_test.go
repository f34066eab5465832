package filesystem_test

import (
	"testing"

	"github.com/blockwise/ufs"
	"github.com/blockwise/ufs/filesystem"
	"github.com/blockwise/ufs/fsfixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystem__Lookup__FindsDot(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	n, err := fs.Lookup(ufs.RootInode, ".")
	require.NoError(t, err)
	assert.Equal(t, uint32(ufs.RootInode), n)
}

func TestFilesystem__Lookup__FindsDotDotAtRoot(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	n, err := fs.Lookup(ufs.RootInode, "..")
	require.NoError(t, err)
	assert.Equal(t, uint32(ufs.RootInode), n)
}

func TestFilesystem__Lookup__MissingNameReturnsNotFound(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	_, err := fs.Lookup(ufs.RootInode, "nope")
	assert.ErrorIs(t, err, ufs.ErrNotFound)
}

func TestFilesystem__Lookup__RejectsEmptyName(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	_, err := fs.Lookup(ufs.RootInode, "")
	assert.ErrorIs(t, err, ufs.ErrInvalidName)
}

func TestFilesystem__Lookup__RejectsNonDirectoryParent(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	child, err := fs.Create(ufs.RootInode, ufs.TypeRegular, "file.txt")
	require.NoError(t, err)

	_, err = fs.Lookup(child, "anything")
	assert.ErrorIs(t, err, ufs.ErrInvalidInode)
}

func TestFilesystem__Lookup__FindsCreatedEntry(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	created, err := fs.Create(ufs.RootInode, ufs.TypeRegular, "hello.txt")
	require.NoError(t, err)

	found, err := fs.Lookup(ufs.RootInode, "hello.txt")
	require.NoError(t, err)
	assert.Equal(t, created, found)
}
