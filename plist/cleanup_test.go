package plist

import (
	"runtime"
	"testing"
	"time"

	"github.com/signadot/plist-format/go-plist/native"
)

// waitStats collects garbage until cond holds for the heap's store or a
// deadline passes.
func waitStats(t *testing.T, h *Heap, cond func(native.Stats) bool) native.Stats {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		runtime.GC()
		st := h.Store().Stats()
		if cond(st) {
			return st
		}
		if time.Now().After(deadline) {
			t.Fatalf("stats never settled: %+v", st)
		}
		time.Sleep(time.Millisecond)
	}
}

func buildDropped(t *testing.T, h *Heap) {
	d := h.NewDict()
	a := h.NewArray()
	if err := a.ArrayAppendItem(h.NewUint(1)); err != nil {
		t.Fatal(err)
	}
	if err := d.DictSetItem("a", a); err != nil {
		t.Fatal(err)
	}
	if err := d.DictSetItem("b", h.NewBool(true)); err != nil {
		t.Fatal(err)
	}
	it := d.Iter()
	if _, ok := it.Next(); !ok {
		t.Fatal("no first item")
	}
	if st := h.Store().Stats(); st.Live == 0 || st.Cursors != 1 {
		t.Fatalf("before collection: %+v", st)
	}
	runtime.KeepAlive(it)
}

func TestCleanupDroppedTree(t *testing.T) {
	h := NewHeap()
	buildDropped(t, h)
	st := waitStats(t, h, func(st native.Stats) bool {
		return st.Live == 0 && st.Cursors == 0
	})
	if st.Frees != st.Allocs {
		t.Errorf("allocs %d, frees %d", st.Allocs, st.Frees)
	}
}

func extractChild(t *testing.T, h *Heap) *Node {
	d := h.NewDict()
	s, err := h.NewString("kept")
	if err != nil {
		t.Fatal(err)
	}
	if err := d.DictSetItem("k", s); err != nil {
		t.Fatal(err)
	}
	c, err := d.DictItem("k")
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCleanupBorrowedKeepsRoot(t *testing.T) {
	h := NewHeap()
	child := extractChild(t, h)
	for range 5 {
		runtime.GC()
		time.Sleep(time.Millisecond)
	}
	if !child.Valid() {
		t.Fatal("child released while still reachable")
	}
	v, err := child.StringVal()
	if err != nil || v != "kept" {
		t.Errorf("child = %q, %v", v, err)
	}
	if child.Ownership() != Borrowed {
		t.Errorf("ownership = %v", child.Ownership())
	}
	runtime.KeepAlive(child)
	child = nil
	waitStats(t, h, func(st native.Stats) bool { return st.Live == 0 })
}
