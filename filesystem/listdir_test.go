package filesystem_test

import (
	"testing"

	"github.com/blockwise/ufs"
	"github.com/blockwise/ufs/filesystem"
	"github.com/blockwise/ufs/fsfixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystem__ListDir__SortedByName(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := fs.Create(ufs.RootInode, ufs.TypeRegular, name)
		require.NoError(t, err)
	}

	entries, err := fs.ListDir(ufs.RootInode)
	require.NoError(t, err)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	assert.Equal(t, []string{".", "..", "alpha", "mid", "zeta"}, names)
}

func TestFilesystem__ListDir__RejectsRegularFile(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)
	fs := filesystem.New(img.Device)

	ino, err := fs.Create(ufs.RootInode, ufs.TypeRegular, "f")
	require.NoError(t, err)

	_, err = fs.ListDir(ino)
	assert.ErrorIs(t, err, ufs.ErrInvalidInode)
}
