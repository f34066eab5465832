package filesystem_test

import (
	"testing"

	"github.com/blockwise/ufs"
	"github.com/blockwise/ufs/filesystem"
	"github.com/blockwise/ufs/fsfixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystem__Resolve__RootPath(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	ino, parent, err := fs.Resolve("/")
	require.NoError(t, err)
	assert.Equal(t, uint32(ufs.RootInode), ino)
	assert.Equal(t, uint32(ufs.RootInode), parent)
}

func TestFilesystem__Resolve__NestedPath(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	sub, err := fs.Create(ufs.RootInode, ufs.TypeDirectory, "a")
	require.NoError(t, err)
	file, err := fs.Create(sub, ufs.TypeRegular, "b.txt")
	require.NoError(t, err)

	ino, parent, err := fs.Resolve("/a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, file, ino)
	assert.Equal(t, sub, parent)
}

func TestFilesystem__Resolve__MissingComponentReturnsNotFound(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	_, _, err := fs.Resolve("/nope/file")
	assert.ErrorIs(t, err, ufs.ErrNotFound)
}
