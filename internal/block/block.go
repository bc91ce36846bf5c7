// internal/block/block.go
package block

// Peripheral base address on LPC177x/8x parts.
const DefaultBase uint32 = 0x00200080

// Register byte offsets relative to the peripheral base.
// The block is sparse: the interrupt registers sit at the end of the
// 4 KiB window.
const (
	RegCmd        = 0x000 // command register
	RegAddr       = 0x004 // address register
	RegWData      = 0x008 // write data register
	RegRData      = 0x00C // read data register
	RegWState     = 0x010 // wait state register
	RegClkDiv     = 0x014 // clock divider register
	RegPwrDwn     = 0x018 // power-down register
	RegIntEnClr   = 0xFC0 // interrupt enable clear
	RegIntEnSet   = 0xFC4 // interrupt enable set
	RegIntStat    = 0xFC8 // interrupt status
	RegIntEn      = 0xFCC // interrupt enable
	RegIntStatClr = 0xFD0 // interrupt status clear (write 1 to clear)
	RegIntStatSet = 0xFD4 // interrupt status set (write 1 to set)
)

// Command register values.
const (
	CmdRead8        uint32 = 0 // 8-bit read
	CmdRead16       uint32 = 1 // 16-bit read
	CmdRead32       uint32 = 2 // 32-bit read
	CmdWrite8       uint32 = 3 // 8-bit write
	CmdWrite16      uint32 = 4 // 16-bit write
	CmdWrite32      uint32 = 5 // 32-bit write
	CmdEraseProgram uint32 = 6 // erase/program page

	CmdRdPrefetch uint32 = 1 << 3 // read pre-fetch enable, OR into a read command
)

// Interrupt status bits.
const (
	IntEndOfRW   uint32 = 1 << 26 // byte read/write finished
	IntEndOfProg uint32 = 1 << 28 // page erase/program finished
)

// Device geometry: 63 pages of 64 bytes, 4032 bytes total.
const (
	PageSize  = 64
	PageCount = 63
	Size      = PageSize * PageCount
)

// Block is a 32-bit-wide view of the register window. Accesses must hit
// the device in program order, one bus transaction per call: no caching,
// no widening, no elimination.
// IMPORTANT: There must be NO other version of this interface anywhere.
type Block interface {
	Load(off uint32) (uint32, error)
	Store(off uint32, val uint32) error
}

// Regs exposes the peripheral's primitive operations over a Block.
type Regs struct {
	b Block
}

func NewRegs(b Block) Regs {
	return Regs{b: b}
}

func (r Regs) SetCmd(cmd uint32) error {
	return r.b.Store(RegCmd, cmd)
}

// SetAddr programs the address register with (page<<6)|offset.
func (r Regs) SetAddr(page, offset uint32) error {
	return r.b.Store(RegAddr, page<<6|offset)
}

func (r Regs) WriteData(v uint32) error {
	return r.b.Store(RegWData, v)
}

func (r Regs) ReadData() (uint32, error) {
	return r.b.Load(RegRData)
}

func (r Regs) SetWaitStates(ws uint32) error {
	return r.b.Store(RegWState, ws)
}

func (r Regs) SetClockDiv(div uint32) error {
	return r.b.Store(RegClkDiv, div)
}

// DisablePowerDown takes the peripheral out of power-down.
func (r Regs) DisablePowerDown() error {
	return r.b.Store(RegPwrDwn, 0)
}

func (r Regs) IntStatus() (uint32, error) {
	return r.b.Load(RegIntStat)
}

func (r Regs) ClearIntStatus(mask uint32) error {
	return r.b.Store(RegIntStatClr, mask)
}

func (r Regs) SetIntStatus(mask uint32) error {
	return r.b.Store(RegIntStatSet, mask)
}
