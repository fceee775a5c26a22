package native

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func must(t *testing.T) func(Ref, Status) Ref {
	return func(r Ref, st Status) Ref {
		t.Helper()
		if st != Success {
			t.Fatalf("status %v", st)
		}
		return r
	}
}

func TestRefGeneration(t *testing.T) {
	s := NewStore()
	a := must(t)(s.NewBool(true))
	if st := s.Free(a); st != Success {
		t.Fatal(st)
	}
	b := must(t)(s.NewBool(false))
	if a.index() != b.index() {
		t.Fatalf("slot not reused: %d %d", a.index(), b.index())
	}
	if a == b {
		t.Fatal("reused slot has the same ref")
	}
	if _, st := s.GetBool(a); st != ErrInvalidArg {
		t.Errorf("stale ref read: %v", st)
	}
	if st := s.Free(a); st != ErrInvalidArg {
		t.Errorf("stale free: %v", st)
	}
	if v, st := s.GetBool(b); st != Success || v {
		t.Errorf("new node = %v, %v", v, st)
	}
	if s.NodeType(a) != None {
		t.Errorf("stale type = %v", s.NodeType(a))
	}
	if !Null.IsNull() || s.Valid(Null) {
		t.Error("null ref")
	}
}

func TestFreeReleasesSubtree(t *testing.T) {
	s := NewStore()
	d := must(t)(s.NewDict())
	a := must(t)(s.NewArray())
	for range 3 {
		if st := s.ArrayAppend(a, must(t)(s.NewUint(1))); st != Success {
			t.Fatal(st)
		}
	}
	if st := s.DictSet(d, "a", a); st != Success {
		t.Fatal(st)
	}
	want := Stats{Allocs: 6, Live: 6}
	if diff := cmp.Diff(want, s.Stats()); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	if st := s.Free(a); st != Success {
		t.Fatal(st)
	}
	if n, _ := s.DictSize(d); n != 0 {
		t.Errorf("freeing a dict value left %d entries", n)
	}
	if st := s.Free(d); st != Success {
		t.Fatal(st)
	}
	want = Stats{Allocs: 6, Frees: 6}
	if diff := cmp.Diff(want, s.Stats()); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestMaxNodes(t *testing.T) {
	s := NewStore(MaxNodes(2))
	d := must(t)(s.NewDict())
	v := must(t)(s.NewBool(true))
	if _, st := s.NewBool(true); st != ErrNoMem {
		t.Errorf("alloc past limit: %v", st)
	}
	if st := s.DictSet(d, "k", v); st != ErrNoMem {
		t.Errorf("key alloc past limit: %v", st)
	}
	if s.Parent(v) != Null {
		t.Error("failed insert attached the value")
	}
}

func TestAdoptable(t *testing.T) {
	s := NewStore()
	outer := must(t)(s.NewArray())
	inner := must(t)(s.NewArray())
	if st := s.ArrayAppend(outer, inner); st != Success {
		t.Fatal(st)
	}
	tests := []struct {
		name string
		c    Ref
		item Ref
	}{
		{"self", outer, outer},
		{"ancestor", inner, outer},
		{"attached", outer, inner},
		{"null", outer, Null},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if st := s.ArrayAppend(tt.c, tt.item); st != ErrInvalidArg {
				t.Errorf("status = %v", st)
			}
		})
	}
	k := s.DictItemKeyNode(inner)
	if k != Null {
		t.Errorf("array element has a key node")
	}
}

func TestCopy(t *testing.T) {
	s := NewStore()
	d := must(t)(s.NewDict())
	data := must(t)(s.NewData([]byte{1, 2}))
	if st := s.DictSet(d, "x", data); st != Success {
		t.Fatal(st)
	}
	c := must(t)(s.Copy(d))
	if s.Parent(c) != Null {
		t.Error("copy has a parent")
	}
	if !s.Compare(d, c) {
		t.Fatal("copy differs")
	}
	cx := s.DictItem(c, "x")
	if st := s.SetData(cx, []byte{3}); st != Success {
		t.Fatal(st)
	}
	if got, _ := s.GetData(data); !cmp.Equal(got, []byte{1, 2}) {
		t.Errorf("copy shares data: %v", got)
	}
}

func TestIterCursors(t *testing.T) {
	s := NewStore()
	d := must(t)(s.NewDict())
	for _, k := range []string{"b", "a"} {
		if st := s.DictSet(d, k, must(t)(s.NewString(k))); st != Success {
			t.Fatal(st)
		}
	}
	c, st := s.DictNewIter(d)
	if st != Success {
		t.Fatal(st)
	}
	if _, st := s.ArrayNewIter(d); st != ErrInvalidArg {
		t.Errorf("array iter on dict: %v", st)
	}
	var keys []string
	for {
		k, v := s.DictNextItem(d, c)
		if v == Null {
			break
		}
		keys = append(keys, k)
	}
	if diff := cmp.Diff([]string{"b", "a"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if s.ArrayNextItem(d, c) != Null {
		t.Error("dict cursor used as array cursor")
	}
	if s.Stats().Cursors != 1 {
		t.Errorf("cursors = %d", s.Stats().Cursors)
	}
	if st := s.FreeIter(c); st != Success {
		t.Fatal(st)
	}
	if st := s.FreeIter(c); st != ErrInvalidArg {
		t.Errorf("double FreeIter: %v", st)
	}
}

func TestDictMergeNative(t *testing.T) {
	s := NewStore()
	dst := must(t)(s.NewDict())
	src := must(t)(s.NewDict())
	if st := s.DictSet(dst, "a", must(t)(s.NewUint(1))); st != Success {
		t.Fatal(st)
	}
	if st := s.DictSet(src, "a", must(t)(s.NewUint(2))); st != Success {
		t.Fatal(st)
	}
	if st := s.DictSet(src, "b", must(t)(s.NewUint(3))); st != Success {
		t.Fatal(st)
	}
	if st := s.DictMerge(dst, src); st != Success {
		t.Fatal(st)
	}
	if s.Valid(src) {
		t.Error("merged source still live")
	}
	keys, _ := s.DictKeys(dst)
	if diff := cmp.Diff([]string{"a", "b"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if v, _, _ := s.GetUint(s.DictItem(dst, "a")); v != 2 {
		t.Errorf("a = %d", v)
	}
	if got := s.Stats().Live; got != 5 {
		t.Errorf("live = %d", got)
	}
}

func TestCompare(t *testing.T) {
	s := NewStore()
	nan1 := must(t)(s.NewReal(nan()))
	nan2 := must(t)(s.NewReal(nan()))
	u := must(t)(s.NewUint(1))
	uid := must(t)(s.NewUID(1))
	neg := must(t)(s.NewInt(-1))
	maxU := must(t)(s.NewUint(math.MaxUint64))
	three := must(t)(s.NewInt(3))
	tests := []struct {
		name string
		a, b Ref
		want bool
	}{
		{"nan", nan1, nan2, true},
		{"type", u, uid, false},
		{"null", Null, Null, false},
		{"sign", neg, maxU, false},
		{"non-negative int", three, must(t)(s.NewUint(3)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare = %v", got)
			}
		})
	}
}
