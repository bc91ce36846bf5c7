// internal/config/normalize.go
package config

import "github.com/tamzrod/lpc-eeprom/internal/block"

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	e := &cfg.EEPROM

	if e.Block.Driver == "" {
		e.Block.Driver = "mem"
	}

	if e.Block.Driver == "mem" {
		if e.Block.Mem.Device == "" {
			e.Block.Mem.Device = "/dev/mem"
		}
		if e.Block.Mem.Base == 0 {
			e.Block.Mem.Base = block.DefaultBase
		}
	}

	if e.Block.Driver == "modbus" && e.Block.Modbus.TimeoutMs == 0 {
		e.Block.Modbus.TimeoutMs = 1000
	}
}
