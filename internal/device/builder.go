// internal/device/builder.go
package device

import (
	"fmt"
	"io"
	"time"

	"github.com/tamzrod/lpc-eeprom/internal/block"
	bmem "github.com/tamzrod/lpc-eeprom/internal/block/mem"
	bmodbus "github.com/tamzrod/lpc-eeprom/internal/block/modbus"
	"github.com/tamzrod/lpc-eeprom/internal/block/sim"
	"github.com/tamzrod/lpc-eeprom/internal/clock"
	cfg "github.com/tamzrod/lpc-eeprom/internal/config"
	"github.com/tamzrod/lpc-eeprom/internal/eeprom"
	"github.com/tamzrod/lpc-eeprom/internal/stream"
)

// Build wires the configured register block, clock source, controller
// and translator into a ready Device. The peripheral is initialized
// (power-down off, timing programmed) before Build returns.
// Assumes the config has already passed Validate and Normalize.
func Build(c *cfg.Config) (*Device, func() error, error) {
	e := c.EEPROM

	blk, closeBlk, err := buildBlock(e.Block)
	if err != nil {
		return nil, nil, err
	}

	fail := func(err error) (*Device, func() error, error) {
		_ = closeBlk()
		return nil, nil, err
	}

	rate, err := buildClock(e.Clock).Rate()
	if err != nil {
		return fail(err)
	}

	ctrl, err := eeprom.New(blk, eeprom.Config{RateHz: rate, PollLimit: e.PollLimit})
	if err != nil {
		return fail(err)
	}
	if err := ctrl.Init(); err != nil {
		return fail(fmt.Errorf("device: init failed: %w", err))
	}

	tr, err := stream.New(ctrl)
	if err != nil {
		return fail(err)
	}

	dev, err := New(tr, e.Verbosity)
	if err != nil {
		return fail(err)
	}

	return dev, closeBlk, nil
}

func buildBlock(bc cfg.BlockConfig) (block.Block, func() error, error) {
	noop := func() error { return nil }

	switch bc.Driver {
	case "mem":
		w, err := bmem.Map(bmem.Config{Device: bc.Mem.Device, Base: bc.Mem.Base})
		if err != nil {
			return nil, nil, err
		}
		return w, w.Close, nil

	case "modbus":
		cli, err := bmodbus.New(bmodbus.Config{
			Endpoint: bc.Modbus.Endpoint,
			UnitID:   bc.Modbus.UnitID,
			Base:     bc.Modbus.BaseAddress,
			Timeout:  time.Duration(bc.Modbus.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return nil, nil, err
		}
		return cli, cli.Close, nil

	case "sim":
		return sim.New(), noop, nil

	default:
		return nil, nil, fmt.Errorf("device: unknown block driver %q", bc.Driver)
	}
}

func buildClock(cc cfg.ClockConfig) clock.Source {
	if cc.RateFile != "" {
		return clock.File{Path: cc.RateFile}
	}
	return clock.Fixed(cc.RateHz)
}

var _ io.Closer = (*bmem.Window)(nil)
var _ io.Closer = (*bmodbus.Client)(nil)
