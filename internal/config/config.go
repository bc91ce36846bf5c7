// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	EEPROM EEPROMConfig `yaml:"eeprom"`
}

type EEPROMConfig struct {
	Clock ClockConfig `yaml:"clock"`
	Block BlockConfig `yaml:"block"`

	// Verbosity: 0 = silent, higher values enable debug logging.
	Verbosity int `yaml:"verbosity"`

	// PollLimit bounds each completion busy-wait; 0 = unbounded.
	PollLimit int `yaml:"poll_limit"`
}

// ---- CLOCK ----

// ClockConfig selects the PCLK source: a fixed rate or a file carrying
// an ASCII Hz value. Exactly one must be set.
type ClockConfig struct {
	RateHz   uint32 `yaml:"rate_hz"`
	RateFile string `yaml:"rate_file"`
}

// ---- REGISTER BLOCK ----

type BlockConfig struct {
	Driver string       `yaml:"driver"` // mem | modbus | sim
	Mem    MemConfig    `yaml:"mem"`
	Modbus ModbusConfig `yaml:"modbus"`
}

type MemConfig struct {
	Device string `yaml:"device"`
	Base   uint32 `yaml:"base"`
}

type ModbusConfig struct {
	Endpoint    string `yaml:"endpoint"`
	UnitID      uint8  `yaml:"unit_id"`
	BaseAddress uint16 `yaml:"base_address"`
	TimeoutMs   int    `yaml:"timeout_ms"`
}

// Load reads and decodes a YAML config file. Validate and Normalize are
// the caller's next steps.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
