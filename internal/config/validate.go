// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	e := cfg.EEPROM

	// ------------------------------------------------------------
	// CLOCK SOURCE
	// ------------------------------------------------------------

	if e.Clock.RateHz == 0 && e.Clock.RateFile == "" {
		return fmt.Errorf("clock: either rate_hz or rate_file is required")
	}
	if e.Clock.RateHz != 0 && e.Clock.RateFile != "" {
		return fmt.Errorf("clock: rate_hz and rate_file are mutually exclusive")
	}
	// The divider formula needs at least one full EEPROM clock per PCLK.
	if e.Clock.RateHz != 0 && e.Clock.RateHz < 375_000 {
		return fmt.Errorf("clock: rate_hz %d below the 375 kHz EEPROM clock", e.Clock.RateHz)
	}

	// ------------------------------------------------------------
	// REGISTER BLOCK DRIVER
	// ------------------------------------------------------------

	switch e.Block.Driver {
	case "", "mem":
		if e.Block.Mem.Base%4 != 0 {
			return fmt.Errorf("block mem: base %#x not 32-bit aligned", e.Block.Mem.Base)
		}

	case "modbus":
		if e.Block.Modbus.Endpoint == "" {
			return fmt.Errorf("block modbus: endpoint is required")
		}
		if e.Block.Modbus.TimeoutMs < 0 {
			return fmt.Errorf("block modbus: timeout_ms must be >= 0")
		}

	case "sim":
		// no options

	default:
		return fmt.Errorf("block: unknown driver %q (want mem, modbus or sim)", e.Block.Driver)
	}

	// ------------------------------------------------------------
	// MISC
	// ------------------------------------------------------------

	if e.Verbosity < 0 {
		return fmt.Errorf("verbosity must be >= 0")
	}
	if e.PollLimit < 0 {
		return fmt.Errorf("poll_limit must be >= 0")
	}

	return nil
}
