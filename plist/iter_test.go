package plist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func cursors(h *Heap) int { return h.Store().Stats().Cursors }

func TestIterEmpty(t *testing.T) {
	h := NewHeap()
	for _, n := range []*Node{h.NewArray(), h.NewDict()} {
		t.Run(n.Kind().String(), func(t *testing.T) {
			defer n.Free()
			it := n.Iter()
			if _, ok := it.Next(); ok {
				t.Error("empty container yielded an item")
			}
			if _, ok := it.Next(); ok {
				t.Error("exhausted iterator restarted")
			}
			if c := cursors(h); c != 0 {
				t.Errorf("%d cursors open after exhaustion", c)
			}
			it.Close()
		})
	}
}

func TestIterArray(t *testing.T) {
	h := NewHeap()
	a := h.NewArray()
	defer a.Free()
	for _, v := range []uint64{10, 20, 30} {
		if err := a.ArrayAppendItem(h.NewUint(v)); err != nil {
			t.Fatal(err)
		}
	}
	var got []uint64
	it := a.Iter()
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		if e.Key != "" || e.Node.Ownership() != Borrowed {
			t.Errorf("entry = %q %s", e.Key, e.Node.Ownership())
		}
		u, _ := e.Node.UintVal()
		got = append(got, u)
	}
	if diff := cmp.Diff([]uint64{10, 20, 30}, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if c := cursors(h); c != 0 {
		t.Errorf("%d cursors open", c)
	}
}

func TestIterDict(t *testing.T) {
	h := NewHeap()
	d := h.NewDict()
	defer d.Free()
	for _, k := range []string{"z", "y", "x"} {
		if err := d.DictSetItem(k, mustString(t, h, k+k)); err != nil {
			t.Fatal(err)
		}
	}
	got := map[string]string{}
	var order []string
	for k, v := range d.All() {
		s, err := v.StringVal()
		if err != nil {
			t.Fatal(err)
		}
		got[k] = s
		order = append(order, k)
	}
	want := map[string]string{"z": "zz", "y": "yy", "x": "xx"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"z", "y", "x"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestIterEarlyBreakReleasesCursor(t *testing.T) {
	h := NewHeap()
	a := h.NewArray()
	defer a.Free()
	for range 5 {
		if err := a.ArrayAppendItem(h.NewBool(true)); err != nil {
			t.Fatal(err)
		}
	}
	n := 0
	for range a.Values() {
		n++
		if n == 2 {
			break
		}
	}
	if c := cursors(h); c != 0 {
		t.Errorf("%d cursors open after break", c)
	}

	it := a.Iter()
	it.Next()
	if c := cursors(h); c != 1 {
		t.Errorf("%d cursors open during iteration", c)
	}
	it.Close()
	it.Close()
	if c := cursors(h); c != 0 {
		t.Errorf("%d cursors open after Close", c)
	}
	if _, ok := it.Next(); ok {
		t.Error("closed iterator yielded an item")
	}
}

func TestIterPanicsOnScalar(t *testing.T) {
	h := NewHeap()
	n := h.NewBool(true)
	defer n.Free()
	defer func() {
		if recover() == nil {
			t.Error("Iter on a bool did not panic")
		}
	}()
	n.Iter()
}

func TestIterReleasedContainer(t *testing.T) {
	h := NewHeap()
	a := h.NewArray()
	a.Free()
	it := a.Iter()
	if _, ok := it.Next(); ok {
		t.Error("released container yielded an item")
	}
	if c := cursors(h); c != 0 {
		t.Errorf("%d cursors open", c)
	}
}
