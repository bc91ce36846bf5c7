// internal/device/device.go
package device

import (
	"errors"
	"log"
	"sync/atomic"
)

// ErrBusy is returned by Open while another handle holds the device.
var ErrBusy = errors.New("device: already open")

// translator is the exact contract the facade uses.
// IMPORTANT: There must be NO other version of this interface anywhere.
type translator interface {
	ReadAt(p []byte, pos int64) (int, error)
	WriteAt(p []byte, pos int64) (int, error)
}

// Device exposes the EEPROM as a byte-stream endpoint with
// single-opener exclusion. One handle at a time; a second Open fails
// with ErrBusy and has no effect on the device or the open session.
type Device struct {
	tr        translator
	held      atomic.Bool
	verbosity int
}

func New(tr translator, verbosity int) (*Device, error) {
	if tr == nil {
		return nil, errors.New("device: translator required")
	}
	if verbosity < 0 {
		return nil, errors.New("device: verbosity must be >= 0")
	}
	return &Device{tr: tr, verbosity: verbosity}, nil
}

// Open claims the device and returns a handle positioned at 0.
func (d *Device) Open() (*Handle, error) {
	if !d.held.CompareAndSwap(false, true) {
		d.debugf(2, "open: busy")
		return nil, ErrBusy
	}
	d.debugf(2, "open")
	return &Handle{dev: d}, nil
}

// release returns the device to the free state.
func (d *Device) release() {
	d.held.Store(false)
	d.debugf(2, "release")
}

func (d *Device) debugf(level int, format string, args ...any) {
	if d.verbosity >= level {
		log.Printf("eeprom: "+format, args...)
	}
}
