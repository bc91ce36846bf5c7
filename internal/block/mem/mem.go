// internal/block/mem/mem.go
//go:build linux

// Package mem maps the EEPROM register block from a physical-memory
// device file (normally /dev/mem) for use on the target board.
package mem

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"syscall"
	"unsafe"
)

// span covers the sparse register block: the interrupt registers end at
// base+0xFD8.
const span = 0xFD8

// Window is a live MMIO mapping of the register block. All accesses go
// through sync/atomic so each Load/Store is exactly one ordered 32-bit
// transaction; the compiler may not cache, merge or drop them.
type Window struct {
	f    *os.File
	mem  []byte
	base uintptr // virtual address of register offset 0
}

type Config struct {
	Device string // physical-memory device file, e.g. /dev/mem
	Base   uint32 // physical base of the register block
}

// Map opens the device file and maps the pages covering the register
// block. The base need not be page-aligned (the LPC base 0x00200080 is
// not); the enclosing pages are mapped and indexed at the base's offset
// within the first page.
func Map(cfg Config) (*Window, error) {
	if cfg.Device == "" {
		return nil, errors.New("mem: device file required")
	}
	if cfg.Base%4 != 0 {
		return nil, fmt.Errorf("mem: base %#x not 32-bit aligned", cfg.Base)
	}

	f, err := os.OpenFile(cfg.Device, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}

	page := uintptr(syscall.Getpagesize())
	phys := uintptr(cfg.Base)
	aligned := phys &^ (page - 1)
	skew := phys - aligned
	length := (skew + span + page - 1) &^ (page - 1)

	mem, err := syscall.Mmap(int(f.Fd()), int64(aligned), int(length),
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mem: mmap %s at %#x: %w", cfg.Device, aligned, err)
	}

	return &Window{
		f:    f,
		mem:  mem,
		base: uintptr(unsafe.Pointer(&mem[0])) + skew,
	}, nil
}

func (w *Window) Load(off uint32) (uint32, error) {
	return atomic.LoadUint32(w.word(off)), nil
}

func (w *Window) Store(off uint32, val uint32) error {
	atomic.StoreUint32(w.word(off), val)
	return nil
}

func (w *Window) word(off uint32) *uint32 {
	return (*uint32)(unsafe.Pointer(w.base + uintptr(off)))
}

// Close unmaps the window and closes the device file.
func (w *Window) Close() error {
	if w.mem == nil {
		return nil
	}
	err := syscall.Munmap(w.mem)
	w.mem = nil
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	return err
}
