package fsfixture_test

import (
	"testing"

	"github.com/blockwise/ufs/fsfixture"
	"github.com/blockwise/ufs/inode"
	"github.com/blockwise/ufs/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild__ProducesValidSuperblock(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)

	sb, err := layout.Read(img.Device)
	require.NoError(t, err)
	assert.Equal(t, img.Super, sb)
}

func TestBuildNamed__UsesPresetGeometry(t *testing.T) {
	img := fsfixture.BuildNamed(t, "tiny")
	assert.Equal(t, uint32(32), img.Super.NumInodes)
	assert.Equal(t, uint32(32), img.Super.NumData)
}

func TestBuild__RootDirectoryAllocated(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)

	bitmapBlock, err := img.Device.ReadBlock(img.Super.InodeBitmapAddr)
	require.NoError(t, err)
	assert.Equal(t, byte(1), bitmapBlock[0]&1)

	dataBitmapBlock, err := img.Device.ReadBlock(img.Super.DataBitmapAddr)
	require.NoError(t, err)
	assert.Equal(t, byte(1), dataBitmapBlock[0]&1)
}

func TestBuild__RootDirectoryHasDotAndDotDot(t *testing.T) {
	img := fsfixture.Build(t, 32, 32)

	dirBlock, err := img.Device.ReadBlock(img.Super.DataBlockAddress(0))
	require.NoError(t, err)
	dot, err := inode.DecodeDirEntry(dirBlock[0:inode.DirEntrySize])
	require.NoError(t, err)
	assert.Equal(t, ".", dot.Name)

	dotDot, err := inode.DecodeDirEntry(dirBlock[inode.DirEntrySize : 2*inode.DirEntrySize])
	require.NoError(t, err)
	assert.Equal(t, "..", dotDot.Name)
}
