// internal/clock/clock.go
package clock

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Source supplies the peripheral clock (PCLK) rate. The driver queries
// it exactly once, at build time.
type Source interface {
	Rate() (uint32, error)
}

// Fixed is a constant rate in Hz, taken from configuration.
type Fixed uint32

func (f Fixed) Rate() (uint32, error) {
	if f == 0 {
		return 0, fmt.Errorf("clock: fixed rate is zero")
	}
	return uint32(f), nil
}

// File reads an ASCII decimal Hz value from a file, e.g. a clk_rate
// entry under the kernel's clock debugfs.
type File struct {
	Path string
}

func (f File) Rate() (uint32, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("clock: %s: %w", f.Path, err)
	}
	if v == 0 {
		return 0, fmt.Errorf("clock: %s reports zero rate", f.Path)
	}
	return uint32(v), nil
}
