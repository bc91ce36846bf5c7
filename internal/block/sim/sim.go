// internal/block/sim/sim.go
package sim

import (
	"fmt"

	"github.com/tamzrod/lpc-eeprom/internal/block"
)

// Block simulates the LPC17xx EEPROM peripheral register block: a
// 63x64-byte array, the 64-byte page register, streaming RDATA/WDATA
// with address auto-increment, and END_OF_RW / END_OF_PROG latching
// with write-1-to-clear semantics.
//
// Completion bits are raised as soon as the corresponding transfer is
// observed, so a driver busy-spinning on INTSTAT terminates on the
// first poll. Not safe for concurrent use; the driver serializes
// access anyway.
type Block struct {
	flash   [block.PageCount][block.PageSize]byte
	pageReg [block.PageSize]byte

	cmd     uint32
	addr    uint32
	wstate  uint32
	clkdiv  uint32
	pwrdwn  uint32
	intStat uint32

	rwPage uint32
	rwOff  uint32

	programs []uint32 // pages committed by ERASE_PROGRAM, in order
}

var _ block.Block = (*Block)(nil)

// New returns a powered-down simulated peripheral with erased flash
// (all bytes 0xFF).
func New() *Block {
	b := &Block{pwrdwn: 1}
	for p := range b.flash {
		for i := range b.flash[p] {
			b.flash[p][i] = 0xFF
		}
	}
	return b
}

func (b *Block) Load(off uint32) (uint32, error) {
	switch off {
	case block.RegCmd:
		return b.cmd, nil
	case block.RegAddr:
		return b.addr, nil
	case block.RegRData:
		return b.readData(), nil
	case block.RegWState:
		return b.wstate, nil
	case block.RegClkDiv:
		return b.clkdiv, nil
	case block.RegPwrDwn:
		return b.pwrdwn, nil
	case block.RegIntStat:
		return b.intStat, nil
	case block.RegIntEn, block.RegWData:
		return 0, nil
	default:
		return 0, fmt.Errorf("sim: load from unknown register offset %#x", off)
	}
}

func (b *Block) Store(off uint32, val uint32) error {
	switch off {
	case block.RegCmd:
		b.cmd = val
		if val == block.CmdEraseProgram {
			b.eraseProgram()
		}
	case block.RegAddr:
		b.addr = val
		b.rwPage = val >> 6
		b.rwOff = val & (block.PageSize - 1)
	case block.RegWData:
		b.writeData(val)
	case block.RegWState:
		b.wstate = val
	case block.RegClkDiv:
		b.clkdiv = val
	case block.RegPwrDwn:
		b.pwrdwn = val
	case block.RegIntStatClr:
		b.intStat &^= val
	case block.RegIntStatSet:
		b.intStat |= val
	case block.RegIntEnClr, block.RegIntEnSet:
		// interrupts stay disabled; the driver polls
	default:
		return fmt.Errorf("sim: store to unknown register offset %#x", off)
	}
	return nil
}

// readData serves one byte from flash at the current address and
// advances it, raising END_OF_RW.
func (b *Block) readData() uint32 {
	var v byte
	if b.rwPage < block.PageCount {
		v = b.flash[b.rwPage][b.rwOff]
	}
	b.advance()
	b.intStat |= block.IntEndOfRW
	return uint32(v)
}

// writeData latches one byte into the page register at the current
// offset and advances it, raising END_OF_RW. The page register is not
// initialized from flash: bytes never written since reset keep their
// previous content.
func (b *Block) writeData(val uint32) {
	b.pageReg[b.rwOff] = byte(val)
	b.advance()
	b.intStat |= block.IntEndOfRW
}

func (b *Block) advance() {
	b.rwOff++
	if b.rwOff == block.PageSize {
		b.rwOff = 0
		b.rwPage++
	}
}

// eraseProgram commits the page register into the page selected by ADDR
// and raises END_OF_PROG.
func (b *Block) eraseProgram() {
	page := b.addr >> 6
	if page < block.PageCount {
		b.flash[page] = b.pageReg
	}
	b.programs = append(b.programs, page)
	b.intStat |= block.IntEndOfProg
}

// ---- test accessors ----

// Programs returns the pages committed by ERASE_PROGRAM commands, in
// issue order.
func (b *Block) Programs() []uint32 {
	return append([]uint32(nil), b.programs...)
}

// ResetTrace discards the recorded program trace.
func (b *Block) ResetTrace() {
	b.programs = nil
}

// PageBytes returns a copy of the flash content of one page.
func (b *Block) PageBytes(page int) []byte {
	out := make([]byte, block.PageSize)
	copy(out, b.flash[page][:])
	return out
}

// Seed overwrites flash content starting at page, bypassing the
// register protocol.
func (b *Block) Seed(page int, data []byte) {
	for i, v := range data {
		p := page + i/block.PageSize
		if p >= block.PageCount {
			return
		}
		b.flash[p][i%block.PageSize] = v
	}
}

// PoweredDown reports the power-down register state.
func (b *Block) PoweredDown() bool {
	return b.pwrdwn != 0
}

// ClkDiv returns the programmed clock divider.
func (b *Block) ClkDiv() uint32 {
	return b.clkdiv
}

// WaitStates returns the programmed wait-state register.
func (b *Block) WaitStates() uint32 {
	return b.wstate
}
