package plist

import (
	"errors"
	"testing"
	"time"
)

func TestDisplay(t *testing.T) {
	h := NewHeap()
	arr := func(items ...*Node) *Node {
		a := h.NewArray()
		for _, it := range items {
			if err := a.ArrayAppendItem(it); err != nil {
				t.Fatal(err)
			}
		}
		return a
	}
	dict := func(kv ...any) *Node {
		d := h.NewDict()
		for i := 0; i < len(kv); i += 2 {
			if err := d.DictSetItem(kv[i].(string), kv[i+1].(*Node)); err != nil {
				t.Fatal(err)
			}
		}
		return d
	}
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{"bool", h.NewBool(true), "true"},
		{"uint", h.NewUint(18446744073709551615), "18446744073709551615"},
		{"negative", h.NewInt(-3), "-3"},
		{"real", h.NewReal(1.5), "1.5"},
		{"whole real", h.NewReal(2), "2"},
		{"string", mustString(t, h, "hi there"), "hi there"},
		{"data", h.NewData([]byte{1, 2, 255}), "[1, 2, 255]"},
		{"empty data", h.NewData(nil), "[]"},
		{"date", h.NewDateTime(MacEpoch.Add(90 * time.Second)), "2001-01-01T00:01:30Z"},
		{"uid", h.NewUID(7), "UID(7)"},
		{"empty array", h.NewArray(), "[]"},
		{"array without separators", arr(h.NewUint(1), h.NewUint(2), h.NewUint(3)), "[123]"},
		{"empty dict", h.NewDict(), "{ }"},
		{"dict", dict("b", h.NewUint(1), "a", h.NewBool(false)), "{ b: 1, a: false }"},
		{
			"nested",
			dict("list", arr(mustString(t, h, "x"), mustString(t, h, "y")), "d", dict("k", h.NewUID(1))),
			"{ list: [xy], d: { k: UID(1) } }",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.node.Free()
			got, err := tt.node.Display()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayKeyAndReleased(t *testing.T) {
	h := NewHeap()
	d := h.NewDict()
	if err := d.DictSetItem("name", h.NewBool(true)); err != nil {
		t.Fatal(err)
	}
	v, _ := d.DictItem("name")
	k, err := v.DictItemKeyNode()
	if err != nil {
		t.Fatal(err)
	}
	if s, err := k.Display(); err != nil || s != "name" {
		t.Errorf("key Display() = %q, %v", s, err)
	}
	d.Free()
	if _, err := d.Display(); !errors.Is(err, ErrInvalidArg) {
		t.Errorf("Display of released dict: err = %v", err)
	}
	if _, err := v.Display(); !errors.Is(err, ErrInvalidArg) {
		t.Errorf("Display of released value: err = %v", err)
	}
}
