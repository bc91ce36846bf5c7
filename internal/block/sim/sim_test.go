// internal/block/sim/sim_test.go
package sim

import (
	"testing"

	"github.com/tamzrod/lpc-eeprom/internal/block"
)

func mustStore(t *testing.T, b *Block, off, val uint32) {
	t.Helper()
	if err := b.Store(off, val); err != nil {
		t.Fatalf("Store(%#x, %#x) err=%v", off, val, err)
	}
}

func mustLoad(t *testing.T, b *Block, off uint32) uint32 {
	t.Helper()
	v, err := b.Load(off)
	if err != nil {
		t.Fatalf("Load(%#x) err=%v", off, err)
	}
	return v
}

func TestWriteEraseReadSequence(t *testing.T) {
	b := New()

	// Fill the page register at offset 4 with two bytes.
	mustStore(t, b, block.RegIntStatClr, block.IntEndOfRW)
	mustStore(t, b, block.RegCmd, block.CmdWrite8)
	mustStore(t, b, block.RegAddr, 0<<6|4)
	mustStore(t, b, block.RegWData, 0xAA)
	mustStore(t, b, block.RegWData, 0xBB)

	if st := mustLoad(t, b, block.RegIntStat); st&block.IntEndOfRW == 0 {
		t.Fatalf("END_OF_RW not set after WDATA, status=%#x", st)
	}

	// Commit into page 7.
	mustStore(t, b, block.RegIntStatClr, block.IntEndOfProg)
	mustStore(t, b, block.RegAddr, 7<<6|0)
	mustStore(t, b, block.RegCmd, block.CmdEraseProgram)

	if st := mustLoad(t, b, block.RegIntStat); st&block.IntEndOfProg == 0 {
		t.Fatalf("END_OF_PROG not set after erase-program, status=%#x", st)
	}
	if got := b.Programs(); len(got) != 1 || got[0] != 7 {
		t.Fatalf("programs=%v want [7]", got)
	}

	// Stream the two bytes back.
	mustStore(t, b, block.RegIntStatClr, block.IntEndOfRW)
	mustStore(t, b, block.RegAddr, 7<<6|4)
	mustStore(t, b, block.RegCmd, block.CmdRead8|block.CmdRdPrefetch)

	if v := mustLoad(t, b, block.RegRData); v != 0xAA {
		t.Fatalf("RDATA[0]=%#x want 0xAA", v)
	}
	if v := mustLoad(t, b, block.RegRData); v != 0xBB {
		t.Fatalf("RDATA[1]=%#x want 0xBB", v)
	}
}

func TestIntStatusWriteOneToClear(t *testing.T) {
	b := New()

	mustStore(t, b, block.RegIntStatSet, block.IntEndOfRW|block.IntEndOfProg)
	mustStore(t, b, block.RegIntStatClr, block.IntEndOfRW)

	st := mustLoad(t, b, block.RegIntStat)
	if st&block.IntEndOfRW != 0 {
		t.Fatalf("END_OF_RW still set after clear, status=%#x", st)
	}
	if st&block.IntEndOfProg == 0 {
		t.Fatalf("END_OF_PROG cleared by unrelated mask, status=%#x", st)
	}
}

func TestReadCrossesPageBoundary(t *testing.T) {
	b := New()
	b.Seed(0, make([]byte, 64)) // page 0 zeroed
	b.Seed(1, []byte{0x11})

	mustStore(t, b, block.RegAddr, 0<<6|63)
	mustStore(t, b, block.RegCmd, block.CmdRead8|block.CmdRdPrefetch)

	if v := mustLoad(t, b, block.RegRData); v != 0 {
		t.Fatalf("last byte of page 0 = %#x want 0", v)
	}
	if v := mustLoad(t, b, block.RegRData); v != 0x11 {
		t.Fatalf("first byte of page 1 = %#x want 0x11", v)
	}
}

func TestUnknownOffsetRejected(t *testing.T) {
	b := New()
	if err := b.Store(0x20, 1); err == nil {
		t.Fatal("expected error for unknown store offset")
	}
	if _, err := b.Load(0x20); err == nil {
		t.Fatal("expected error for unknown load offset")
	}
}

func TestErasedFlashReadsFF(t *testing.T) {
	b := New()

	mustStore(t, b, block.RegAddr, 3<<6|0)
	mustStore(t, b, block.RegCmd, block.CmdRead8|block.CmdRdPrefetch)

	if v := mustLoad(t, b, block.RegRData); v != 0xFF {
		t.Fatalf("erased byte=%#x want 0xFF", v)
	}
}
