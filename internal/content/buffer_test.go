package content

import (
	"fmt"
	"reflect"
	"testing"
)

func TestAppendKeepsLastLinesInOrder(t *testing.T) {
	for _, capacity := range []int{1, 2, 3, 7} {
		for n := 0; n <= 12; n++ {
			b := New(capacity)
			var all []string
			for i := 0; i < n; i++ {
				line := fmt.Sprintf("line %d", i)
				all = append(all, line)
				b.Append(line)
				if b.Len() > capacity {
					t.Fatalf("cap %d: length %d exceeds capacity after %d appends", capacity, b.Len(), i+1)
				}
			}
			keep := n
			if keep > capacity {
				keep = capacity
			}
			want := all[len(all)-keep:]
			if keep == 0 {
				want = []string{}
			}
			if got := b.Lines(); !reflect.DeepEqual(got, want) {
				t.Fatalf("cap %d, n %d: expected %v, got %v", capacity, n, want, got)
			}
		}
	}
}

func TestAppendEvictsOldestFirst(t *testing.T) {
	b := New(3)
	b.Load([]string{"1", "2", "3"})
	b.Append("4")
	if got := b.Line(0); got != "2" {
		t.Fatalf("expected oldest retained line 2, got %q", got)
	}
	b.Append("5")
	want := []string{"3", "4", "5"}
	if got := b.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestLoadSelectsNewestLine(t *testing.T) {
	b := New(2)
	b.Load([]string{"a", "b", "c"})
	if got := b.Lines(); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Fatalf("expected [b c], got %v", got)
	}
	idx, ok := b.Selected()
	if !ok || idx != 1 {
		t.Fatalf("expected selection 1, got %d (ok=%v)", idx, ok)
	}
}

func TestAppendFollowsTailWhenSelectionAtNewest(t *testing.T) {
	b := New(3)
	for i := 0; i < 10; i++ {
		b.Append(fmt.Sprint(i))
		idx, ok := b.Selected()
		if !ok || idx != b.Len()-1 {
			t.Fatalf("after %d appends expected selection at tail %d, got %d", i+1, b.Len()-1, idx)
		}
	}
}

func TestAppendPinsScrolledSelection(t *testing.T) {
	b := New(4)
	b.Load([]string{"a", "b", "c", "d"})
	b.MoveSelection(false)
	b.MoveSelection(false) // on "b"
	b.Append("e")
	idx, _ := b.Selected()
	if got := b.Line(idx); got != "b" {
		t.Fatalf("expected selection to stay on b, got %q (idx %d)", got, idx)
	}

	// Evicting the selected line clamps to the oldest retained one.
	b.Append("f")
	idx, _ = b.Selected()
	if idx != 0 || b.Line(idx) != "c" {
		t.Fatalf("expected clamp to oldest line c at 0, got %q at %d", b.Line(idx), idx)
	}
}

func TestAppendBelowCapacityKeepsScrolledSelection(t *testing.T) {
	b := New(10)
	b.Load([]string{"a", "b", "c"})
	b.SelectFirst()
	b.Append("d")
	idx, _ := b.Selected()
	if idx != 0 {
		t.Fatalf("expected selection to remain at 0, got %d", idx)
	}
}

func TestMoveSelectionClampsAtBoundaries(t *testing.T) {
	b := New(5)
	b.Load([]string{"a", "b", "c"})

	for i := 0; i < 5; i++ {
		b.MoveSelection(false)
	}
	if idx, _ := b.Selected(); idx != 0 {
		t.Fatalf("expected clamp at 0, got %d", idx)
	}
	if b.MoveSelection(false) {
		t.Fatalf("expected no movement at first line")
	}

	for i := 0; i < 5; i++ {
		b.MoveSelection(true)
	}
	if idx, _ := b.Selected(); idx != 2 {
		t.Fatalf("expected clamp at 2, got %d", idx)
	}
	if b.MoveSelection(true) {
		t.Fatalf("expected no movement at last line")
	}
}

func TestMoveSelectionWithoutSelection(t *testing.T) {
	empty := New(3)
	if empty.MoveSelection(true) || empty.MoveSelection(false) {
		t.Fatalf("expected no movement on empty buffer")
	}
	if _, ok := empty.Selected(); ok {
		t.Fatalf("expected no selection on empty buffer")
	}

	b := &Buffer{lines: []string{"a", "b", "c"}, capacity: 3, cursor: -1}
	if !b.MoveSelection(false) {
		t.Fatalf("expected movement from no selection")
	}
	if idx, _ := b.Selected(); idx != 2 {
		t.Fatalf("expected newest line selected, got %d", idx)
	}
}

func TestPageSelection(t *testing.T) {
	b := New(20)
	for i := 0; i < 12; i++ {
		b.Append(fmt.Sprint(i))
	}
	b.PageSelection(-5)
	if idx, _ := b.Selected(); idx != 6 {
		t.Fatalf("expected 6 after page up, got %d", idx)
	}
	b.PageSelection(-50)
	if idx, _ := b.Selected(); idx != 0 {
		t.Fatalf("expected 0 after large page up, got %d", idx)
	}
	b.PageSelection(50)
	if idx, _ := b.Selected(); idx != 11 {
		t.Fatalf("expected 11 after large page down, got %d", idx)
	}
}

func TestSelectFirstAndLast(t *testing.T) {
	b := New(3)
	if b.SelectFirst() || b.SelectLast() {
		t.Fatalf("expected no movement on empty buffer")
	}
	b.Load([]string{"a", "b", "c"})
	if !b.SelectFirst() {
		t.Fatalf("expected movement to first line")
	}
	if !b.SelectLast() {
		t.Fatalf("expected movement to last line")
	}
	if idx, _ := b.Selected(); idx != 2 {
		t.Fatalf("expected 2, got %d", idx)
	}
}

func TestNewClampsCapacity(t *testing.T) {
	b := New(0)
	if b.Cap() != 1 {
		t.Fatalf("expected capacity 1, got %d", b.Cap())
	}
	b.Append("a")
	b.Append("b")
	if got := b.Lines(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("expected [b], got %v", got)
	}
}

func TestAppendToFullBufferDoesNotAllocate(t *testing.T) {
	b := New(100)
	for i := 0; i < 101; i++ {
		b.Append("warm")
	}
	allocs := testing.AllocsPerRun(1000, func() { b.Append("steady") })
	if allocs != 0 {
		t.Fatalf("expected no allocations per append at capacity, got %v", allocs)
	}
	if b.Len() != 100 {
		t.Fatalf("expected length 100, got %d", b.Len())
	}
}

func TestLinesCopyIsStableAcrossEviction(t *testing.T) {
	b := New(2)
	b.Load([]string{"a", "b"})
	snapshot := b.Lines()
	b.Append("c")
	if !reflect.DeepEqual(snapshot, []string{"a", "b"}) {
		t.Fatalf("expected snapshot unchanged, got %v", snapshot)
	}
}
