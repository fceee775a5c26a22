package plist

import (
	"fmt"
	"math"
	"strings"
	"unsafe"
)

func (n *Node) BoolVal() (bool, error) {
	if err := n.expect(BoolKind); err != nil {
		return false, err
	}
	v, st := n.heap.store.GetBool(n.ref)
	return v, statusErr("bool value", st)
}

func (n *Node) SetBoolVal(v bool) error {
	if err := n.expect(BoolKind); err != nil {
		return err
	}
	return statusErr("set bool value", n.heap.store.SetBool(n.ref, v))
}

// UintVal returns the integer as unsigned 64 bits. Negative integers read
// back as their two's complement.
func (n *Node) UintVal() (uint64, error) {
	if err := n.expect(IntegerKind); err != nil {
		return 0, err
	}
	v, _, st := n.heap.store.GetUint(n.ref)
	return v, statusErr("uint value", st)
}

func (n *Node) SetUintVal(v uint64) error {
	if err := n.expect(IntegerKind); err != nil {
		return err
	}
	return statusErr("set uint value", n.heap.store.SetUint(n.ref, v))
}

// IntVal returns the integer as signed 64 bits. Unsigned values above
// math.MaxInt64 fail with ErrInvalidArg.
func (n *Node) IntVal() (int64, error) {
	if err := n.expect(IntegerKind); err != nil {
		return 0, err
	}
	v, signed, st := n.heap.store.GetUint(n.ref)
	if err := statusErr("int value", st); err != nil {
		return 0, err
	}
	if !signed && v > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d overflows int64", ErrInvalidArg, v)
	}
	return int64(v), nil
}

func (n *Node) SetIntVal(v int64) error {
	if err := n.expect(IntegerKind); err != nil {
		return err
	}
	return statusErr("set int value", n.heap.store.SetInt(n.ref, v))
}

// IsSigned reports whether an integer node holds a negative value.
func (n *Node) IsSigned() (bool, error) {
	if err := n.expect(IntegerKind); err != nil {
		return false, err
	}
	_, signed, st := n.heap.store.GetUint(n.ref)
	return signed, statusErr("int value", st)
}

func (n *Node) RealVal() (float64, error) {
	if err := n.expect(RealKind); err != nil {
		return 0, err
	}
	v, st := n.heap.store.GetReal(n.ref)
	return v, statusErr("real value", st)
}

func (n *Node) SetRealVal(v float64) error {
	if err := n.expect(RealKind); err != nil {
		return err
	}
	return statusErr("set real value", n.heap.store.SetReal(n.ref, v))
}

func (n *Node) StringVal() (string, error) {
	if err := n.expect(StringKind); err != nil {
		return "", err
	}
	v, st := n.heap.store.GetString(n.ref)
	return v, statusErr("string value", st)
}

func (n *Node) SetStringVal(v string) error {
	if err := n.expect(StringKind); err != nil {
		return err
	}
	if strings.IndexByte(v, 0) >= 0 {
		return fmt.Errorf("%w: string contains NUL", ErrInvalidArg)
	}
	return statusErr("set string value", n.heap.store.SetString(n.ref, v))
}

// UnsafeStringPtr returns a pointer to the bytes of a string node without
// copying, or nil if n is not a string. The pointer is valid only while
// the owning node is alive and the string is not modified, and must never
// be written through.
func (n *Node) UnsafeStringPtr() *byte {
	if n.kind != StringKind {
		return nil
	}
	v, st := n.heap.store.GetString(n.ref)
	if st != 0 || v == "" {
		return nil
	}
	return unsafe.StringData(v)
}

// DataVal returns a copy of the bytes of a data node.
func (n *Node) DataVal() ([]byte, error) {
	if err := n.expect(DataKind); err != nil {
		return nil, err
	}
	v, st := n.heap.store.GetData(n.ref)
	return v, statusErr("data value", st)
}

func (n *Node) SetDataVal(v []byte) error {
	if err := n.expect(DataKind); err != nil {
		return err
	}
	return statusErr("set data value", n.heap.store.SetData(n.ref, v))
}

func (n *Node) UIDVal() (uint64, error) {
	if err := n.expect(UIDKind); err != nil {
		return 0, err
	}
	v, st := n.heap.store.GetUID(n.ref)
	return v, statusErr("uid value", st)
}

func (n *Node) SetUIDVal(v uint64) error {
	if err := n.expect(UIDKind); err != nil {
		return err
	}
	return statusErr("set uid value", n.heap.store.SetUID(n.ref, v))
}

// KeyVal returns the text of a dictionary key node (see DictItemKeyNode).
func (n *Node) KeyVal() (string, error) {
	if err := n.expect(KeyKind); err != nil {
		return "", err
	}
	v, st := n.heap.store.GetKey(n.ref)
	return v, statusErr("key value", st)
}

// SetKeyVal renames the dictionary entry of a key node. It fails if the
// dictionary already has an entry named v.
func (n *Node) SetKeyVal(v string) error {
	if err := n.expect(KeyKind); err != nil {
		return err
	}
	return statusErr("set key value", n.heap.store.SetKey(n.ref, v))
}
