// internal/stream/stream_test.go
package stream

import (
	"testing"

	"github.com/tamzrod/lpc-eeprom/internal/block"
)

// ---- fake page engine ----

type engineCall struct {
	op     string // "read", "fill", "program"
	page   uint32
	offset uint32
	n      int
}

type fakeEngine struct {
	calls []engineCall
}

func (f *fakeEngine) ReadPage(page, offset uint32, dst []byte) error {
	f.calls = append(f.calls, engineCall{op: "read", page: page, offset: offset, n: len(dst)})
	return nil
}

func (f *fakeEngine) WritePageRegister(offset uint32, src []byte) error {
	f.calls = append(f.calls, engineCall{op: "fill", offset: offset, n: len(src)})
	return nil
}

func (f *fakeEngine) EraseProgramPage(page uint32) error {
	f.calls = append(f.calls, engineCall{op: "program", page: page})
	return nil
}

func newTranslator(t *testing.T) (*Translator, *fakeEngine) {
	t.Helper()
	fe := &fakeEngine{}
	tr, err := New(fe)
	if err != nil {
		t.Fatalf("New err=%v", err)
	}
	return tr, fe
}

// ---- tests ----

func TestReadAt_AlignedSinglePage(t *testing.T) {
	tr, fe := newTranslator(t)

	n, err := tr.ReadAt(make([]byte, 64), 64)
	if err != nil || n != 64 {
		t.Fatalf("n=%d err=%v want 64,nil", n, err)
	}
	want := []engineCall{{op: "read", page: 1, offset: 0, n: 64}}
	assertCalls(t, fe.calls, want)
}

func TestReadAt_UnalignedSplit(t *testing.T) {
	tr, fe := newTranslator(t)

	// 8 bytes starting at 60: 4 from page 0, 4 from page 1.
	n, err := tr.ReadAt(make([]byte, 8), 60)
	if err != nil || n != 8 {
		t.Fatalf("n=%d err=%v want 8,nil", n, err)
	}
	want := []engineCall{
		{op: "read", page: 0, offset: 60, n: 4},
		{op: "read", page: 1, offset: 0, n: 4},
	}
	assertCalls(t, fe.calls, want)
}

func TestReadAt_ClampedAtEnd(t *testing.T) {
	tr, _ := newTranslator(t)

	n, err := tr.ReadAt(make([]byte, 16), block.Size-4)
	if err != nil || n != 4 {
		t.Fatalf("n=%d err=%v want 4,nil", n, err)
	}
}

func TestReadAt_AtEndTransfersNothing(t *testing.T) {
	tr, fe := newTranslator(t)

	n, err := tr.ReadAt(make([]byte, 16), block.Size)
	if err != nil || n != 0 {
		t.Fatalf("n=%d err=%v want 0,nil", n, err)
	}
	if len(fe.calls) != 0 {
		t.Fatalf("engine touched on empty transfer: %v", fe.calls)
	}
}

func TestWriteAt_ProgramsEveryTouchedPage(t *testing.T) {
	tr, fe := newTranslator(t)

	n, err := tr.WriteAt(make([]byte, 8), 60)
	if err != nil || n != 8 {
		t.Fatalf("n=%d err=%v want 8,nil", n, err)
	}
	want := []engineCall{
		{op: "fill", offset: 60, n: 4},
		{op: "program", page: 0},
		{op: "fill", offset: 0, n: 4},
		{op: "program", page: 1},
	}
	assertCalls(t, fe.calls, want)
}

func TestWriteAt_ClampedAtEnd(t *testing.T) {
	tr, fe := newTranslator(t)

	n, err := tr.WriteAt(make([]byte, 16), block.Size-4)
	if err != nil || n != 4 {
		t.Fatalf("n=%d err=%v want 4,nil", n, err)
	}
	want := []engineCall{
		{op: "fill", offset: 60, n: 4},
		{op: "program", page: 62},
	}
	assertCalls(t, fe.calls, want)
}

func assertCalls(t *testing.T, got, want []engineCall) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("calls=%v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("call %d = %v want %v", i, got[i], want[i])
		}
	}
}
