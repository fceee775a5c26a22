package plist

import (
	"fmt"

	"github.com/signadot/plist-format/go-plist/native"
)

func (n *Node) DictSize() (uint32, error) {
	if err := n.expect(DictKind); err != nil {
		return 0, err
	}
	sz, st := n.heap.store.DictSize(n.ref)
	return sz, statusErr("dict size", st)
}

// DictItem returns a Borrowed handle to the value stored under key. A
// missing key fails with ErrNotFound.
func (n *Node) DictItem(key string) (*Node, error) {
	if err := n.expect(DictKind); err != nil {
		return nil, err
	}
	r := n.heap.store.DictItem(n.ref, key)
	if r == native.Null {
		if !n.Valid() {
			return nil, fmt.Errorf("%w: dict released", ErrInvalidArg)
		}
		return nil, fmt.Errorf("%w: key %q", ErrNotFound, key)
	}
	return n.borrowed(r), nil
}

// DictKeys returns the keys in storage order.
func (n *Node) DictKeys() ([]string, error) {
	if err := n.expect(DictKind); err != nil {
		return nil, err
	}
	keys, st := n.heap.store.DictKeys(n.ref)
	return keys, statusErr("dict keys", st)
}

// DictItemKey returns the key under which n is stored in its dictionary.
func (n *Node) DictItemKey() (string, error) {
	k, st := n.heap.store.DictItemKey(n.ref)
	return k, statusErr("dict item key", st)
}

// DictItemKeyNode returns a Borrowed KeyKind handle for the key paired with
// n in its dictionary.
func (n *Node) DictItemKeyNode() (*Node, error) {
	r := n.heap.store.DictItemKeyNode(n.ref)
	if r == native.Null {
		return nil, fmt.Errorf("%w: node is not a dict value", ErrInvalidArg)
	}
	return n.borrowed(r), nil
}

// DictSetItem stores item under key, taking ownership of item. A value
// already stored under key is released.
func (n *Node) DictSetItem(key string, item *Node) error {
	if err := n.expect(DictKind); err != nil {
		return err
	}
	if err := n.adopt(item); err != nil {
		return err
	}
	if err := statusErr("dict set item", n.heap.store.DictSet(n.ref, key, item.ref)); err != nil {
		return err
	}
	item.adoptedBy(n)
	return nil
}

// DictInsertItem is DictSetItem.
func (n *Node) DictInsertItem(key string, item *Node) error {
	return n.DictSetItem(key, item)
}

// DictRemoveItem detaches and releases the entry under key.
func (n *Node) DictRemoveItem(key string) error {
	if err := n.expect(DictKind); err != nil {
		return err
	}
	if err := statusErr("dict remove item", n.heap.store.DictRemove(n.ref, key)); err != nil {
		if n.Valid() {
			return fmt.Errorf("%w: key %q", ErrNotFound, key)
		}
		return err
	}
	return nil
}

// DictMerge moves every entry of other into n, replacing the values of
// keys present in both. other must be an Owning dictionary; it is consumed
// and its handle is left stale.
func (n *Node) DictMerge(other *Node) error {
	if err := n.expect(DictKind); err != nil {
		return err
	}
	if err := n.adopt(other); err != nil {
		return err
	}
	if err := other.expect(DictKind); err != nil {
		return err
	}
	if err := statusErr("dict merge", n.heap.store.DictMerge(n.ref, other.ref)); err != nil {
		return err
	}
	other.Disown()
	other.lease.freed.Store(true)
	n.heap.log.Debug("plist: merged", "into", n.id, "from", other.id)
	return nil
}
