// internal/eeprom/eeprom.go
package eeprom

import (
	"errors"
	"fmt"

	"github.com/tamzrod/lpc-eeprom/internal/block"
)

// eepromClock is the EEPROM state-machine clock the divider targets.
const eepromClock = 375_000

// ErrTimeout is returned when a completion wait exceeds the configured
// poll bound.
var ErrTimeout = errors.New("eeprom: completion wait timed out")

// Config is the immutable controller configuration.
type Config struct {
	// RateHz is the peripheral clock (PCLK) in Hz, read once from the
	// clock service at build time.
	RateHz uint32

	// PollLimit bounds the number of INTSTAT polls per completion wait.
	// 0 means unbounded, matching the hardware contract that every
	// operation completes.
	PollLimit int
}

// Controller drives the peripheral's native operations: byte reads,
// page-register byte writes, and page erase-program. Each operation is
// synchronized against the matching INTSTAT completion bit before the
// next register access. Callers must serialize access; the device
// facade guarantees that.
type Controller struct {
	regs block.Regs
	cfg  Config
}

func New(b block.Block, cfg Config) (*Controller, error) {
	if b == nil {
		return nil, errors.New("eeprom: register block required")
	}
	if cfg.RateHz == 0 {
		return nil, errors.New("eeprom: clock rate required")
	}
	if cfg.PollLimit < 0 {
		return nil, errors.New("eeprom: poll limit must be >= 0")
	}
	return &Controller{regs: block.NewRegs(b), cfg: cfg}, nil
}

// Init takes the peripheral out of power-down and programs the clock
// divider for 375 kHz and the three phase wait states (15 ns, 55 ns,
// 35 ns) from the PCLK rate.
func (c *Controller) Init() error {
	if err := c.regs.DisablePowerDown(); err != nil {
		return err
	}
	if err := c.regs.SetClockDiv(c.cfg.RateHz/eepromClock - 1); err != nil {
		return err
	}
	return c.regs.SetWaitStates(WaitStates(c.cfg.RateHz))
}

// WaitStates derives the WSTATE register value for a PCLK rate. Integer
// math truncates, matching the hardware reference tables.
func WaitStates(rateHz uint32) uint32 {
	mhz := rateHz / 1_000_000
	ws := mhz*15/1000 + 1
	ws |= (mhz*55/1000 + 1) << 8
	ws |= (mhz*35/1000 + 1) << 16
	return ws
}

// ReadPage fills dst with bytes starting at (page, offset). The span
// must not cross the page boundary.
func (c *Controller) ReadPage(page, offset uint32, dst []byte) error {
	if err := checkSpan(page, offset, len(dst)); err != nil {
		return err
	}
	if err := c.regs.ClearIntStatus(block.IntEndOfRW); err != nil {
		return err
	}
	if err := c.regs.SetAddr(page, offset); err != nil {
		return err
	}
	if err := c.regs.SetCmd(block.CmdRead8 | block.CmdRdPrefetch); err != nil {
		return err
	}
	for i := range dst {
		v, err := c.regs.ReadData()
		if err != nil {
			return err
		}
		dst[i] = byte(v)
		if err := c.waitIntStatus(block.IntEndOfRW); err != nil {
			return err
		}
	}
	return nil
}

// WritePageRegister latches src into the peripheral's page register
// starting at offset. Nothing reaches non-volatile storage until
// EraseProgramPage commits the register.
func (c *Controller) WritePageRegister(offset uint32, src []byte) error {
	if err := checkSpan(0, offset, len(src)); err != nil {
		return err
	}
	if err := c.regs.ClearIntStatus(block.IntEndOfRW); err != nil {
		return err
	}
	if err := c.regs.SetCmd(block.CmdWrite8); err != nil {
		return err
	}
	if err := c.regs.SetAddr(0, offset); err != nil {
		return err
	}
	for _, b := range src {
		if err := c.regs.WriteData(uint32(b)); err != nil {
			return err
		}
		if err := c.waitIntStatus(block.IntEndOfRW); err != nil {
			return err
		}
	}
	return nil
}

// EraseProgramPage erases page and programs it from the page register.
func (c *Controller) EraseProgramPage(page uint32) error {
	if page >= block.PageCount {
		return fmt.Errorf("eeprom: page %d out of range", page)
	}
	if err := c.regs.ClearIntStatus(block.IntEndOfProg); err != nil {
		return err
	}
	if err := c.regs.SetAddr(page, 0); err != nil {
		return err
	}
	if err := c.regs.SetCmd(block.CmdEraseProgram); err != nil {
		return err
	}
	return c.waitIntStatus(block.IntEndOfProg)
}

// waitIntStatus busy-spins on INTSTAT until every bit in mask is set,
// then clears it.
func (c *Controller) waitIntStatus(mask uint32) error {
	for n := 0; ; n++ {
		st, err := c.regs.IntStatus()
		if err != nil {
			return err
		}
		if st&mask == mask {
			break
		}
		if c.cfg.PollLimit > 0 && n >= c.cfg.PollLimit {
			return fmt.Errorf("%w: mask %#x", ErrTimeout, mask)
		}
	}
	return c.regs.ClearIntStatus(mask)
}

func checkSpan(page, offset uint32, n int) error {
	if page >= block.PageCount {
		return fmt.Errorf("eeprom: page %d out of range", page)
	}
	if offset >= block.PageSize || n < 0 || int(offset)+n > block.PageSize {
		return fmt.Errorf("eeprom: span offset=%d len=%d exceeds page", offset, n)
	}
	return nil
}
