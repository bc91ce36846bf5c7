// internal/block/mem/mem_nonlinux.go
//go:build !linux

package mem

import "errors"

type Window struct{}

type Config struct {
	Device string
	Base   uint32
}

func Map(cfg Config) (*Window, error) {
	return nil, errors.New("mem: physical-memory mapping requires linux")
}

func (w *Window) Load(off uint32) (uint32, error) {
	return 0, errors.New("mem: not mapped")
}

func (w *Window) Store(off uint32, val uint32) error {
	return errors.New("mem: not mapped")
}

func (w *Window) Close() error {
	return nil
}
