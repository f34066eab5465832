// Package fsfixture builds valid, minimal UFS images in memory for tests.
// It plays the role the teacher's own top-level "testing" package plays:
// an importable helper package, built on testify's require, that other
// packages' _test.go files pull in rather than re-deriving image layout
// math everywhere. Image creation ("mkfs") itself stays out of the core's
// scope; this package exists only to make the core testable.
package fsfixture

import (
	"testing"

	"github.com/blockwise/ufs"
	"github.com/blockwise/ufs/blockdev"
	"github.com/blockwise/ufs/layout"
	"github.com/blockwise/ufs/mkfs"
	"github.com/blockwise/ufs/presets"
	"github.com/stretchr/testify/require"
)

// Image is a freshly built UFS image along with the geometry used to build
// it, returned so tests can compute expected bitmap/table state directly.
type Image struct {
	Device *blockdev.MemDevice
	Super  *layout.Superblock
}

// Build constructs a fresh image with numInodes inodes and numData data
// blocks. Inode 0 (the root directory) is allocated with "." and ".."
// entries pointing to itself, per invariant I5. No other inode is
// allocated.
func Build(t *testing.T, numInodes, numData uint32) *Image {
	t.Helper()

	sb := mkfs.ComputeSuperblock(numInodes, numData)
	backing := make([]byte, uint64(mkfs.TotalBlocks(sb))*ufs.BlockSize)

	dev, err := blockdev.NewMemDevice(backing)
	require.NoError(t, err)
	require.NoError(t, mkfs.Format(dev, sb))

	return &Image{Device: dev, Super: sb}
}

// BuildNamed builds an image using a named preset geometry (see package
// presets).
func BuildNamed(t *testing.T, presetName string) *Image {
	t.Helper()
	g, err := presets.Get(presetName)
	require.NoError(t, err)
	return Build(t, uint32(g.NumInodes), uint32(g.NumData))
}
