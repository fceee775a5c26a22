package plist

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func arrayStrings(t *testing.T, a *Node) []string {
	t.Helper()
	sz, err := a.ArraySize()
	if err != nil {
		t.Fatal(err)
	}
	res := []string{}
	for i := range sz {
		item, err := a.ArrayItem(i)
		if err != nil {
			t.Fatal(err)
		}
		s, err := item.StringVal()
		if err != nil {
			t.Fatal(err)
		}
		res = append(res, s)
	}
	return res
}

func TestArrayAppendOrder(t *testing.T) {
	h := NewHeap()
	a := h.NewArray()
	defer a.Free()
	for _, s := range []string{"1", "2", "3"} {
		if err := a.ArrayAppendItem(mustString(t, h, s)); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, arrayStrings(t, a)); diff != "" {
		t.Errorf("array mismatch (-want +got):\n%s", diff)
	}
}

func TestArrayOps(t *testing.T) {
	tests := []struct {
		name    string
		op      func(h *Heap, a *Node) error
		want    []string
		wantErr error
	}{
		{
			name: "insert front",
			op: func(h *Heap, a *Node) error {
				return a.ArrayInsertItem(mustString(t, h, "x"), 0)
			},
			want: []string{"x", "a", "b", "c"},
		},
		{
			name: "insert at end",
			op: func(h *Heap, a *Node) error {
				return a.ArrayInsertItem(mustString(t, h, "x"), 3)
			},
			want: []string{"a", "b", "c", "x"},
		},
		{
			name: "insert past end",
			op: func(h *Heap, a *Node) error {
				x := mustString(t, h, "x")
				defer x.Free()
				return a.ArrayInsertItem(x, 4)
			},
			want:    []string{"a", "b", "c"},
			wantErr: ErrInvalidArg,
		},
		{
			name: "set",
			op: func(h *Heap, a *Node) error {
				return a.ArraySetItem(mustString(t, h, "x"), 1)
			},
			want: []string{"a", "x", "c"},
		},
		{
			name: "set out of range",
			op: func(h *Heap, a *Node) error {
				x := mustString(t, h, "x")
				defer x.Free()
				return a.ArraySetItem(x, 3)
			},
			want:    []string{"a", "b", "c"},
			wantErr: ErrInvalidArg,
		},
		{
			name: "remove",
			op: func(h *Heap, a *Node) error {
				return a.ArrayRemoveItem(0)
			},
			want: []string{"b", "c"},
		},
		{
			name: "remove self",
			op: func(h *Heap, a *Node) error {
				item, err := a.ArrayItem(2)
				if err != nil {
					return err
				}
				return item.RemoveFromArray()
			},
			want: []string{"a", "b"},
		},
		{
			name: "remove out of range",
			op: func(h *Heap, a *Node) error {
				return a.ArrayRemoveItem(3)
			},
			want:    []string{"a", "b", "c"},
			wantErr: ErrInvalidArg,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeap()
			a := h.NewArray()
			for _, s := range []string{"a", "b", "c"} {
				if err := a.ArrayAppendItem(mustString(t, h, s)); err != nil {
					t.Fatal(err)
				}
			}
			err := tt.op(h, a)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, arrayStrings(t, a)); diff != "" {
				t.Errorf("array mismatch (-want +got):\n%s", diff)
			}
			a.Free()
			if n := live(h); n != 0 {
				t.Errorf("live = %d after free", n)
			}
		})
	}
}

func TestArrayItemMissing(t *testing.T) {
	h := NewHeap()
	a := h.NewArray()
	defer a.Free()
	_, err := a.ArrayItem(0)
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, ErrInvalidArg) {
		t.Errorf("ArrayItem on empty array: err = %v", err)
	}
	d := h.NewDict()
	defer d.Free()
	if _, err := d.ArrayItem(0); !errors.Is(err, ErrInvalidArg) || errors.Is(err, ErrNotFound) {
		t.Errorf("ArrayItem on dict: err = %v", err)
	}
	if _, err := d.ArraySize(); !errors.Is(err, ErrInvalidArg) {
		t.Errorf("ArraySize on dict: err = %v", err)
	}
}

func TestArrayItemIndex(t *testing.T) {
	h := NewHeap()
	a := h.NewArray()
	defer a.Free()
	b := h.NewBool(true)
	for range 2 {
		if err := a.ArrayAppendItem(h.NewBool(false)); err != nil {
			t.Fatal(err)
		}
	}
	if err := a.ArrayAppendItem(b); err != nil {
		t.Fatal(err)
	}
	if i, err := b.ArrayItemIndex(); err != nil || i != 2 {
		t.Errorf("ArrayItemIndex = %d, %v", i, err)
	}
}

func TestRemovedElementIsStale(t *testing.T) {
	h := NewHeap()
	a := h.NewArray()
	defer a.Free()
	s := mustString(t, h, "gone")
	if err := a.ArrayAppendItem(s); err != nil {
		t.Fatal(err)
	}
	if err := a.ArrayRemoveItem(0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.StringVal(); !errors.Is(err, ErrInvalidArg) {
		t.Errorf("read removed element: err = %v", err)
	}
	s.Free()
	if n := live(h); n != 1 {
		t.Errorf("live = %d", n)
	}
}

func TestDictSetGet(t *testing.T) {
	h := NewHeap()
	d := h.NewDict()
	defer d.Free()
	if err := d.DictSetItem("b", h.NewBool(false)); err != nil {
		t.Fatal(err)
	}
	v, err := d.DictItem("b")
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != BoolKind {
		t.Fatalf("kind = %s", v.Kind())
	}
	if b, err := v.BoolVal(); err != nil || b {
		t.Errorf("BoolVal = %v, %v", b, err)
	}
	if sz, err := d.DictSize(); err != nil || sz != 1 {
		t.Errorf("DictSize = %d, %v", sz, err)
	}
	if _, err := d.DictItem("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing key: err = %v", err)
	}
	if err := d.DictSetItem("bad\x00key", h.NewBool(true)); !errors.Is(err, ErrInvalidArg) {
		t.Errorf("NUL key: err = %v", err)
	}
}

func TestDictReplaceReleasesOld(t *testing.T) {
	h := NewHeap()
	d := h.NewDict()
	defer d.Free()
	old := h.NewUint(1)
	if err := d.DictSetItem("a", old); err != nil {
		t.Fatal(err)
	}
	if err := d.DictInsertItem("a", h.NewUint(2)); err != nil {
		t.Fatal(err)
	}
	if old.Valid() {
		t.Error("replaced value still live")
	}
	if n := live(h); n != 3 {
		t.Errorf("live = %d, want dict, key and value", n)
	}
	v, _ := d.DictItem("a")
	if u, _ := v.UintVal(); u != 2 {
		t.Errorf("value = %d", u)
	}
}

func TestDictRemoveAndKeys(t *testing.T) {
	h := NewHeap()
	d := h.NewDict()
	defer d.Free()
	for _, k := range []string{"c", "a", "b"} {
		if err := d.DictSetItem(k, mustString(t, h, k)); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.DictRemoveItem("a"); err != nil {
		t.Fatal(err)
	}
	if err := d.DictRemoveItem("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("remove twice: err = %v", err)
	}
	keys, err := d.DictKeys()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"c", "b"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if n := live(h); n != 5 {
		t.Errorf("live = %d", n)
	}
}

func dictOf(t *testing.T, h *Heap, kv map[string]uint64) *Node {
	t.Helper()
	d := h.NewDict()
	for k, v := range kv {
		if err := d.DictSetItem(k, h.NewUint(v)); err != nil {
			t.Fatal(err)
		}
	}
	return d
}

func TestDictMerge(t *testing.T) {
	tests := []struct {
		name      string
		dst, src  map[string]uint64
		want      map[string]uint64
		wantFrees uint64
	}{
		{
			name:      "disjoint",
			dst:       map[string]uint64{"b": 2},
			src:       map[string]uint64{"a": 1},
			want:      map[string]uint64{"a": 1, "b": 2},
			wantFrees: 2,
		},
		{
			name:      "overwrite",
			dst:       map[string]uint64{"a": 1, "b": 2},
			src:       map[string]uint64{"a": 1},
			want:      map[string]uint64{"a": 1, "b": 2},
			wantFrees: 3,
		},
		{
			name:      "empty source",
			dst:       map[string]uint64{"a": 1},
			src:       map[string]uint64{},
			want:      map[string]uint64{"a": 1},
			wantFrees: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeap()
			dst := dictOf(t, h, tt.dst)
			defer dst.Free()
			src := dictOf(t, h, tt.src)
			before := h.Store().Stats()
			if err := dst.DictMerge(src); err != nil {
				t.Fatal(err)
			}
			if got := h.Store().Stats().Frees - before.Frees; got != tt.wantFrees {
				t.Errorf("merge released %d nodes, want %d", got, tt.wantFrees)
			}
			if src.Ownership() != Borrowed || src.Valid() {
				t.Errorf("merged source is %s, valid %v", src.Ownership(), src.Valid())
			}
			src.Free()
			want := dictOf(t, h, tt.want)
			defer want.Free()
			if !Equal(want, dst) {
				got, _ := dst.Display()
				t.Errorf("merged dict = %s", got)
			}
		})
	}
}

func TestDictMergeRejects(t *testing.T) {
	h := NewHeap()
	d := h.NewDict()
	defer d.Free()
	a := h.NewArray()
	defer a.Free()
	if err := d.DictMerge(a); !errors.Is(err, ErrInvalidArg) {
		t.Errorf("merge array: err = %v", err)
	}
	if err := d.DictMerge(d); !errors.Is(err, ErrInvalidArg) {
		t.Errorf("merge self: err = %v", err)
	}
	if err := d.DictMerge(nil); !errors.Is(err, ErrInvalidArg) {
		t.Errorf("merge nil: err = %v", err)
	}
	if !d.Valid() || d.Ownership() != Owning {
		t.Error("rejected merge changed the receiver")
	}
}
