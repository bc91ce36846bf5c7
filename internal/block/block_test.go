// internal/block/block_test.go
package block

import "testing"

// ---- fake block ----

type fakeBlock struct {
	regs  map[uint32]uint32
	loads []uint32
}

func newFakeBlock() *fakeBlock {
	return &fakeBlock{regs: map[uint32]uint32{}}
}

func (f *fakeBlock) Load(off uint32) (uint32, error) {
	f.loads = append(f.loads, off)
	return f.regs[off], nil
}

func (f *fakeBlock) Store(off uint32, val uint32) error {
	f.regs[off] = val
	return nil
}

// ---- tests ----

func TestRegs_AddrEncoding(t *testing.T) {
	f := newFakeBlock()
	r := NewRegs(f)

	if err := r.SetAddr(5, 17); err != nil {
		t.Fatalf("SetAddr err=%v", err)
	}
	if got, want := f.regs[RegAddr], uint32(5<<6|17); got != want {
		t.Fatalf("ADDR=%#x want %#x", got, want)
	}
}

func TestRegs_PowerDownWritesZero(t *testing.T) {
	f := newFakeBlock()
	f.regs[RegPwrDwn] = 1
	r := NewRegs(f)

	if err := r.DisablePowerDown(); err != nil {
		t.Fatalf("DisablePowerDown err=%v", err)
	}
	if f.regs[RegPwrDwn] != 0 {
		t.Fatalf("PWRDWN=%d want 0", f.regs[RegPwrDwn])
	}
}

func TestRegs_IntStatusUsesStatusRegisters(t *testing.T) {
	f := newFakeBlock()
	f.regs[RegIntStat] = IntEndOfRW
	r := NewRegs(f)

	st, err := r.IntStatus()
	if err != nil {
		t.Fatalf("IntStatus err=%v", err)
	}
	if st != IntEndOfRW {
		t.Fatalf("status=%#x want %#x", st, IntEndOfRW)
	}
	if len(f.loads) != 1 || f.loads[0] != RegIntStat {
		t.Fatalf("loads=%v want [%#x]", f.loads, RegIntStat)
	}

	if err := r.ClearIntStatus(IntEndOfProg); err != nil {
		t.Fatalf("ClearIntStatus err=%v", err)
	}
	if f.regs[RegIntStatClr] != IntEndOfProg {
		t.Fatalf("INTSTATCLR=%#x want %#x", f.regs[RegIntStatClr], IntEndOfProg)
	}
}

func TestGeometry(t *testing.T) {
	if Size != PageSize*PageCount {
		t.Fatalf("Size=%d want %d", Size, PageSize*PageCount)
	}
	if Size != 4032 {
		t.Fatalf("Size=%d want 4032", Size)
	}
}
