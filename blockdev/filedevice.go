package blockdev

import (
	"fmt"
	"os"

	"github.com/blockwise/ufs"
)

// FileDevice is a Device backed by an *os.File holding a UFS disk image.
// It is what the CLI drivers (cmd/ucat, cmd/ucp, cmd/uls) open a disk image
// file with.
type FileDevice struct {
	*streamDevice
	file *os.File
}

// OpenFileDevice opens path for reading and writing and wraps it as a
// Device. The image's total block count is derived from the file size; the
// file size must be an exact multiple of ufs.BlockSize.
func OpenFileDevice(path string) (*FileDevice, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if info.Size()%ufs.BlockSize != 0 {
		file.Close()
		return nil, fmt.Errorf(
			"image %q is %d bytes, not a multiple of the %d-byte block size",
			path, info.Size(), ufs.BlockSize,
		)
	}

	totalBlocks := uint32(info.Size() / ufs.BlockSize)
	return &FileDevice{
		streamDevice: newStreamDevice(file, totalBlocks),
		file:         file,
	}, nil
}

// Close releases the underlying file handle. Any in-progress transaction is
// discarded, not committed.
func (d *FileDevice) Close() error {
	return d.file.Close()
}
