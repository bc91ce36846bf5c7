// internal/stream/stream.go
package stream

import (
	"errors"

	"github.com/tamzrod/lpc-eeprom/internal/block"
)

// PageEngine is the exact contract the translator needs from the
// controller. Geometry only: spans never cross a page boundary.
type PageEngine interface {
	ReadPage(page, offset uint32, dst []byte) error
	WritePageRegister(offset uint32, src []byte) error
	EraseProgramPage(page uint32) error
}

// Translator maps byte-stream requests at arbitrary positions and
// lengths onto page-bounded engine calls. Requests are clamped at the
// device end; a request at or past the end transfers zero bytes.
type Translator struct {
	pe PageEngine
}

func New(pe PageEngine) (*Translator, error) {
	if pe == nil {
		return nil, errors.New("stream: page engine required")
	}
	return &Translator{pe: pe}, nil
}

// ReadAt fills p from the device starting at pos and returns the number
// of bytes read, which is less than len(p) only near the device end.
func (t *Translator) ReadAt(p []byte, pos int64) (int, error) {
	p = clamp(p, pos)

	n := 0
	for n < len(p) {
		page, offset, chunk := slice(pos, len(p)-n)
		if err := t.pe.ReadPage(page, offset, p[n:n+chunk]); err != nil {
			return n, err
		}
		n += chunk
		pos += int64(chunk)
	}
	return n, nil
}

// WriteAt writes p to the device starting at pos. Every touched page is
// erase-programmed, including partially covered ones; bytes of such a
// page outside the written range take whatever the page register held
// at program time.
func (t *Translator) WriteAt(p []byte, pos int64) (int, error) {
	p = clamp(p, pos)

	n := 0
	for n < len(p) {
		page, offset, chunk := slice(pos, len(p)-n)
		if err := t.pe.WritePageRegister(offset, p[n:n+chunk]); err != nil {
			return n, err
		}
		if err := t.pe.EraseProgramPage(page); err != nil {
			return n, err
		}
		n += chunk
		pos += int64(chunk)
	}
	return n, nil
}

// clamp trims p so that pos+len(p) never exceeds the device size.
func clamp(p []byte, pos int64) []byte {
	if pos >= block.Size {
		return nil
	}
	if remaining := block.Size - pos; int64(len(p)) > remaining {
		p = p[:remaining]
	}
	return p
}

// slice resolves pos into page coordinates and bounds the chunk at the
// page end.
func slice(pos int64, remaining int) (page, offset uint32, chunk int) {
	page = uint32(pos / block.PageSize)
	offset = uint32(pos % block.PageSize)
	chunk = block.PageSize - int(offset)
	if remaining < chunk {
		chunk = remaining
	}
	return page, offset, chunk
}
