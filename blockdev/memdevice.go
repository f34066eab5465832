package blockdev

import (
	"github.com/blockwise/ufs"
	"github.com/xaionaro-go/bytesextra"
)

// MemDevice is a Device backed entirely by an in-memory byte slice,
// presented as a seekable stream via bytesextra.NewReadWriteSeeker — the
// same approach the teacher's own block cache and test helpers use to give
// a plain []byte the io.ReadWriteSeeker shape a stream-oriented device
// wants. It never touches the filesystem, so the whole filesystem-layer
// test suite runs against MemDevice.
type MemDevice struct {
	*streamDevice
	backing []byte
}

// NewMemDevice wraps backing as a Device. len(backing) must be an exact
// multiple of ufs.BlockSize.
func NewMemDevice(backing []byte) (*MemDevice, error) {
	if len(backing)%ufs.BlockSize != 0 {
		return nil, ufs.ErrInvalidSize.WithMessage(
			"image is %d bytes, not a multiple of the %d-byte block size",
			len(backing), ufs.BlockSize,
		)
	}

	stream := bytesextra.NewReadWriteSeeker(backing)
	totalBlocks := uint32(len(backing) / ufs.BlockSize)
	return &MemDevice{
		streamDevice: newStreamDevice(stream, totalBlocks),
		backing:      backing,
	}, nil
}

// Bytes returns the live backing slice. Mutating it outside of the Device
// API bypasses transaction buffering; tests use this only to snapshot state
// for comparison between operations.
func (d *MemDevice) Bytes() []byte {
	return d.backing
}
