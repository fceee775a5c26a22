package plist

import (
	"errors"
	"math"
	"testing"
	"time"
	"unsafe"

	"github.com/google/go-cmp/cmp"
)

// accessors calls every typed getter on n and reports which ones succeed.
func accessors(n *Node) map[string]error {
	res := map[string]error{}
	_, res["bool"] = n.BoolVal()
	_, res["uint"] = n.UintVal()
	_, res["int"] = n.IntVal()
	_, res["real"] = n.RealVal()
	_, res["string"] = n.StringVal()
	_, res["data"] = n.DataVal()
	_, res["date"] = n.DateVal()
	_, res["uid"] = n.UIDVal()
	_, res["key"] = n.KeyVal()
	res["set bool"] = n.SetBoolVal(true)
	res["set uint"] = n.SetUintVal(1)
	res["set real"] = n.SetRealVal(1)
	res["set string"] = n.SetStringVal("x")
	res["set data"] = n.SetDataVal([]byte("x"))
	res["set date"] = n.SetDateVal(time.Second)
	res["set uid"] = n.SetUIDVal(1)
	return res
}

func TestTypeGuard(t *testing.T) {
	h := NewHeap()
	tests := []struct {
		name string
		node *Node
		ok   []string
	}{
		{"bool", h.NewBool(false), []string{"bool", "set bool"}},
		{"uint", h.NewUint(7), []string{"uint", "int", "set uint"}},
		{"real", h.NewReal(2.5), []string{"real", "set real"}},
		{"string", mustString(t, h, "s"), []string{"string", "set string"}},
		{"data", h.NewData([]byte{1}), []string{"data", "set data"}},
		{"date", h.NewDate(time.Hour), []string{"date", "set date"}},
		{"uid", h.NewUID(3), []string{"uid", "set uid"}},
		{"array", h.NewArray(), nil},
		{"dict", h.NewDict(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.node.Free()
			ok := map[string]bool{}
			for _, k := range tt.ok {
				ok[k] = true
			}
			for acc, err := range accessors(tt.node) {
				if ok[acc] {
					if err != nil {
						t.Errorf("%s: %v", acc, err)
					}
					continue
				}
				if !errors.Is(err, ErrInvalidArg) {
					t.Errorf("%s on %s node: err = %v, want ErrInvalidArg", acc, tt.node.Kind(), err)
				}
			}
		})
	}
}

func TestScalarSetGet(t *testing.T) {
	h := NewHeap()

	b := h.NewBool(false)
	defer b.Free()
	if err := b.SetBoolVal(true); err != nil {
		t.Fatal(err)
	}
	if v, _ := b.BoolVal(); !v {
		t.Error("bool not updated")
	}

	r := h.NewReal(0)
	defer r.Free()
	if err := r.SetRealVal(math.Pi); err != nil {
		t.Fatal(err)
	}
	if v, _ := r.RealVal(); v != math.Pi {
		t.Errorf("real = %v", v)
	}

	s := mustString(t, h, "old")
	defer s.Free()
	if err := s.SetStringVal("new"); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.StringVal(); v != "new" {
		t.Errorf("string = %q", v)
	}
	if err := s.SetStringVal("a\x00b"); !errors.Is(err, ErrInvalidArg) {
		t.Errorf("NUL string set: err = %v", err)
	}

	d := h.NewData([]byte{1, 2, 3})
	defer d.Free()
	got, _ := d.DataVal()
	got[0] = 9
	again, _ := d.DataVal()
	if diff := cmp.Diff([]byte{1, 2, 3}, again); diff != "" {
		t.Errorf("DataVal aliased storage (-want +got):\n%s", diff)
	}

	u := h.NewUID(1)
	defer u.Free()
	if err := u.SetUIDVal(42); err != nil {
		t.Fatal(err)
	}
	if v, _ := u.UIDVal(); v != 42 {
		t.Errorf("uid = %d", v)
	}
}

func TestNewStringNUL(t *testing.T) {
	h := NewHeap()
	n, err := h.NewString("a\x00")
	if !errors.Is(err, ErrInvalidArg) || n != nil {
		t.Errorf("NewString with NUL = %v, %v", n, err)
	}
	if live(h) != 0 {
		t.Errorf("rejected string allocated storage")
	}
}

func TestIntegers(t *testing.T) {
	h := NewHeap()
	tests := []struct {
		name     string
		node     *Node
		wantUint uint64
		wantInt  int64
		intErr   bool
		signed   bool
	}{
		{"small", h.NewUint(5), 5, 5, false, false},
		{"negative", h.NewInt(-5), math.MaxUint64 - 4, -5, false, true},
		{"max uint", h.NewUint(math.MaxUint64), math.MaxUint64, 0, true, false},
		{"min int", h.NewInt(math.MinInt64), 1 << 63, math.MinInt64, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.node.Free()
			u, err := tt.node.UintVal()
			if err != nil || u != tt.wantUint {
				t.Errorf("UintVal = %d, %v", u, err)
			}
			i, err := tt.node.IntVal()
			if tt.intErr {
				if !errors.Is(err, ErrInvalidArg) {
					t.Errorf("IntVal err = %v", err)
				}
			} else if err != nil || i != tt.wantInt {
				t.Errorf("IntVal = %d, %v", i, err)
			}
			if s, _ := tt.node.IsSigned(); s != tt.signed {
				t.Errorf("IsSigned = %v", s)
			}
		})
	}
	n := h.NewUint(1)
	defer n.Free()
	if err := n.SetIntVal(-1); err != nil {
		t.Fatal(err)
	}
	if v, _ := n.IntVal(); v != -1 {
		t.Errorf("after SetIntVal(-1): %d", v)
	}
}

func TestDates(t *testing.T) {
	h := NewHeap()
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"mac epoch", 978307200 * time.Second, 978307200 * time.Second},
		{"microseconds", 1700000000*time.Second + 123456*time.Microsecond, 1700000000*time.Second + 123456*time.Microsecond},
		{"truncates nanoseconds", 1700000000*time.Second + 999*time.Nanosecond, 1700000000 * time.Second},
		{"truncates below a microsecond", 1700000000*time.Second + 5*time.Microsecond + 999*time.Nanosecond, 1700000000*time.Second + 5*time.Microsecond},
		{"before mac epoch", 100*time.Second + 500*time.Microsecond, 100*time.Second + 500*time.Microsecond},
		{"before unix epoch", -3*time.Second - 250*time.Microsecond, -3*time.Second - 250*time.Microsecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := h.NewDate(tt.in)
			defer n.Free()
			got, err := n.DateVal()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("DateVal = %v, want %v", got, tt.want)
			}
			if err := n.SetDateVal(tt.in); err != nil {
				t.Fatal(err)
			}
			if got, _ := n.DateVal(); got != tt.want {
				t.Errorf("after SetDateVal: %v, want %v", got, tt.want)
			}
			tm, err := n.TimeVal()
			if err != nil {
				t.Fatal(err)
			}
			if !tm.Equal(time.Unix(0, 0).Add(tt.want)) {
				t.Errorf("TimeVal = %v", tm)
			}
		})
	}

	when := time.Date(2024, 2, 29, 12, 30, 15, 250_000_000, time.FixedZone("x", 3600))
	n := h.NewDateTime(when)
	defer n.Free()
	tm, _ := n.TimeVal()
	if !tm.Equal(when) || tm.Location() != time.UTC {
		t.Errorf("NewDateTime round trip = %v", tm)
	}
	if !MacEpoch.Equal(time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("MacEpoch = %v", MacEpoch)
	}
}

func TestKeyNode(t *testing.T) {
	h := NewHeap()
	d := h.NewDict()
	defer d.Free()
	for _, k := range []string{"a", "b"} {
		if err := d.DictSetItem(k, h.NewBool(true)); err != nil {
			t.Fatal(err)
		}
	}
	v, _ := d.DictItem("a")
	kn, err := v.DictItemKeyNode()
	if err != nil {
		t.Fatal(err)
	}
	if kn.Kind() != KeyKind {
		t.Fatalf("key node kind = %s", kn.Kind())
	}
	if k, _ := kn.KeyVal(); k != "a" {
		t.Errorf("KeyVal = %q", k)
	}
	if err := kn.SetKeyVal("b"); !errors.Is(err, ErrInvalidArg) {
		t.Errorf("rename onto existing key: err = %v", err)
	}
	if err := kn.SetKeyVal("z"); err != nil {
		t.Fatal(err)
	}
	if k, _ := v.DictItemKey(); k != "z" {
		t.Errorf("DictItemKey after rename = %q", k)
	}
	if _, err := d.DictItem("z"); err != nil {
		t.Errorf("renamed entry: %v", err)
	}
	if _, err := d.DictItemKeyNode(); !errors.Is(err, ErrInvalidArg) {
		t.Errorf("key node of root: err = %v", err)
	}
}

func TestUnsafeStringPtr(t *testing.T) {
	h := NewHeap()
	s := mustString(t, h, "hello")
	defer s.Free()
	p := s.UnsafeStringPtr()
	if p == nil {
		t.Fatal("nil pointer for string node")
	}
	if got := unsafe.String(p, 5); got != "hello" {
		t.Errorf("string at pointer = %q", got)
	}
	b := h.NewBool(true)
	defer b.Free()
	if b.UnsafeStringPtr() != nil {
		t.Error("pointer for bool node")
	}
}
