package plist

import (
	"fmt"

	"github.com/signadot/plist-format/go-plist/native"
)

func (n *Node) ArraySize() (uint32, error) {
	if err := n.expect(ArrayKind); err != nil {
		return 0, err
	}
	sz, st := n.heap.store.ArraySize(n.ref)
	return sz, statusErr("array size", st)
}

// ArrayItem returns a Borrowed handle to element i. An index past the end
// fails with ErrNotFound.
func (n *Node) ArrayItem(i uint32) (*Node, error) {
	if err := n.expect(ArrayKind); err != nil {
		return nil, err
	}
	r := n.heap.store.ArrayItem(n.ref, i)
	if r == native.Null {
		if !n.Valid() {
			return nil, fmt.Errorf("%w: array released", ErrInvalidArg)
		}
		return nil, fmt.Errorf("%w: index %d", ErrNotFound, i)
	}
	return n.borrowed(r), nil
}

// ArrayItemIndex returns the position of n within the array holding it.
func (n *Node) ArrayItemIndex() (uint32, error) {
	i, st := n.heap.store.ArrayItemIndex(n.ref)
	return i, statusErr("array item index", st)
}

// ArraySetItem replaces element i with item, releasing the old element.
// The array takes ownership of item, which must be Owning.
func (n *Node) ArraySetItem(item *Node, i uint32) error {
	if err := n.expect(ArrayKind); err != nil {
		return err
	}
	if err := n.adopt(item); err != nil {
		return err
	}
	if err := statusErr("array set item", n.heap.store.ArraySet(n.ref, item.ref, i)); err != nil {
		return err
	}
	item.adoptedBy(n)
	return nil
}

// ArrayAppendItem adds item at the end of the array, taking ownership.
func (n *Node) ArrayAppendItem(item *Node) error {
	if err := n.expect(ArrayKind); err != nil {
		return err
	}
	if err := n.adopt(item); err != nil {
		return err
	}
	if err := statusErr("array append item", n.heap.store.ArrayAppend(n.ref, item.ref)); err != nil {
		return err
	}
	item.adoptedBy(n)
	return nil
}

// ArrayInsertItem inserts item before element i, taking ownership. i may
// equal the array size.
func (n *Node) ArrayInsertItem(item *Node, i uint32) error {
	if err := n.expect(ArrayKind); err != nil {
		return err
	}
	if err := n.adopt(item); err != nil {
		return err
	}
	if err := statusErr("array insert item", n.heap.store.ArrayInsert(n.ref, item.ref, i)); err != nil {
		return err
	}
	item.adoptedBy(n)
	return nil
}

// ArrayRemoveItem detaches and releases element i. Handles to it become
// stale.
func (n *Node) ArrayRemoveItem(i uint32) error {
	if err := n.expect(ArrayKind); err != nil {
		return err
	}
	return statusErr("array remove item", n.heap.store.ArrayRemove(n.ref, i))
}

// RemoveFromArray detaches n from the array holding it and releases it.
func (n *Node) RemoveFromArray() error {
	if err := statusErr("remove from array", n.heap.store.ArrayItemRemove(n.ref)); err != nil {
		return err
	}
	n.lease.freed.Store(true)
	return nil
}
