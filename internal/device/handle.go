// internal/device/handle.go
package device

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tamzrod/lpc-eeprom/internal/block"
)

// ErrInvalidSeek covers an unknown whence and a negative resulting
// position. The position is left unchanged.
var ErrInvalidSeek = errors.New("device: invalid seek")

// Handle is one open session: it owns the file position and releases
// the device on Close. Not safe for concurrent use; a session issues
// one request at a time.
type Handle struct {
	dev    *Device
	pos    int64
	closed bool
}

var _ io.ReadWriteSeeker = (*Handle)(nil)
var _ io.Closer = (*Handle)(nil)

// Read fills p from the current position and advances it by the bytes
// transferred. At or past the device end it returns (0, io.EOF).
func (h *Handle) Read(p []byte) (int, error) {
	if h.closed {
		return 0, os.ErrClosed
	}

	n, err := h.dev.tr.ReadAt(p, h.pos)
	h.pos += int64(n)
	h.dev.debugf(3, "read: len=%d n=%d pos=%d err=%v", len(p), n, h.pos, err)
	if err != nil {
		return n, err
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write stores p at the current position and advances it by the bytes
// transferred. Writes clamped at the device end return
// io.ErrShortWrite alongside the short count.
func (h *Handle) Write(p []byte) (int, error) {
	if h.closed {
		return 0, os.ErrClosed
	}

	n, err := h.dev.tr.WriteAt(p, h.pos)
	h.pos += int64(n)
	h.dev.debugf(3, "write: len=%d n=%d pos=%d err=%v", len(p), n, h.pos, err)
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Seek moves the position. Seeking past the device end is allowed; the
// next read or write there transfers zero bytes.
func (h *Handle) Seek(offset int64, whence int) (int64, error) {
	if h.closed {
		return h.pos, os.ErrClosed
	}

	var newpos int64
	switch whence {
	case io.SeekStart:
		newpos = offset
	case io.SeekCurrent:
		newpos = h.pos + offset
	case io.SeekEnd:
		newpos = block.Size + offset
	default:
		return h.pos, fmt.Errorf("%w: whence %d", ErrInvalidSeek, whence)
	}

	if newpos < 0 {
		return h.pos, fmt.Errorf("%w: position %d", ErrInvalidSeek, newpos)
	}

	h.pos = newpos
	return newpos, nil
}

// Close releases the device. Further calls on the handle fail; Close
// itself is idempotent.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.dev.release()
	return nil
}
