package plist

import (
	"fmt"

	"github.com/signadot/plist-format/go-plist/native"
)

// Ownership tells whether dropping a handle releases the storage it names.
type Ownership int32

const (
	// Owning handles release their subtree on Free.
	Owning Ownership = iota
	// Borrowed handles observe storage owned by a container or by the
	// handle they were extracted from. Free is a no-op on them.
	Borrowed
)

func (o Ownership) String() string {
	switch o {
	case Owning:
		return "owning"
	case Borrowed:
		return "borrowed"
	}
	return fmt.Sprintf("ownership(%d)", int32(o))
}

// Node is a handle to a property-list node held in a Heap.
//
// A Node is either Owning, for roots created by a constructor, a decoder
// or Clone, or Borrowed, for nodes extracted from a container or inserted
// into one. Only Owning nodes release storage. A Borrowed node keeps the
// handle it depends on reachable, but it does not keep the storage alive
// after an explicit Free of that handle or removal from its container; use
// of such a node fails with ErrInvalidArg.
type Node struct {
	heap  *Heap
	ref   native.Ref
	kind  Kind
	id    uint64
	lease *lease

	// anchor is the handle whose storage this node observes.
	anchor *Node
}

// borrowed returns a Borrowed handle for r, which must be storage reachable
// from n.
func (n *Node) borrowed(r native.Ref) *Node {
	res := &Node{
		heap:   n.heap,
		ref:    r,
		kind:   kindOf(n.heap.store.NodeType(r)),
		id:     n.heap.ids.Add(1),
		lease:  &lease{store: n.heap.store, ref: r},
		anchor: n.root(),
	}
	res.lease.state.Store(int32(Borrowed))
	return res
}

func (n *Node) root() *Node {
	if n.anchor != nil {
		return n.anchor
	}
	return n
}

// Kind returns the kind recorded when the handle was created.
func (n *Node) Kind() Kind { return n.kind }

// NodeKind reads the kind from storage. It is NoneKind once the storage
// has been released.
func (n *Node) NodeKind() Kind {
	return kindOf(n.heap.store.NodeType(n.ref))
}

// ID is a diagnostic identifier, unique within the heap.
func (n *Node) ID() uint64 { return n.id }

func (n *Node) Heap() *Heap { return n.heap }

// Ref returns the raw store handle for use with other code working on the
// same native.Store. It does not transfer ownership.
func (n *Node) Ref() native.Ref { return n.ref }

func (n *Node) Ownership() Ownership {
	return Ownership(n.lease.state.Load())
}

// Valid reports whether the storage named by n is still live.
func (n *Node) Valid() bool {
	return n.heap.store.Valid(n.ref)
}

// Disown turns n into a Borrowed handle without releasing its storage. It
// is used when another owner adopts the storage and is idempotent.
func (n *Node) Disown() {
	if n.lease.state.Swap(int32(Borrowed)) == int32(Owning) {
		n.heap.log.Debug("plist: disowned", "id", n.id)
	}
}

// adoptedBy records that owner now holds n's storage.
func (n *Node) adoptedBy(owner *Node) {
	n.Disown()
	n.anchor = owner.root()
}

// Free releases the storage of an Owning node, including its subtree. On a
// Borrowed node it does nothing. Freeing twice, or freeing storage that
// was already released through another path, is logged and ignored.
func (n *Node) Free() {
	if n == nil {
		return
	}
	log := n.heap.log
	if !n.lease.state.CompareAndSwap(int32(Owning), int32(Borrowed)) {
		if n.lease.freed.Load() {
			log.Warn("plist: node already freed", "id", n.id, "kind", n.kind)
			return
		}
		log.Debug("plist: skip free of borrowed node", "id", n.id, "kind", n.kind)
		return
	}
	n.lease.freed.Store(true)
	if st := n.heap.store.Free(n.ref); st != native.Success {
		log.Warn("plist: node storage already released", "id", n.id, "kind", n.kind, "status", st)
		return
	}
	log.Debug("plist: freed", "id", n.id, "kind", n.kind)
}

// Clone returns an Owning deep copy of n.
func (n *Node) Clone() (*Node, error) {
	r, st := n.heap.store.Copy(n.ref)
	if err := statusErr("clone", st); err != nil {
		return nil, err
	}
	return n.heap.owned(r, "clone"), nil
}

// Equal reports whether a and b hold structurally equal values.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.heap.store == b.heap.store {
		return a.heap.store.Compare(a.ref, b.ref)
	}
	// Different stores: compare through a copy in a's store.
	d, err := b.ToBinary()
	if err != nil {
		return false
	}
	c, err := a.heap.FromBinary(d)
	if err != nil {
		return false
	}
	defer c.Free()
	return a.heap.store.Compare(a.ref, c.ref)
}

func (n *Node) Equal(o *Node) bool { return Equal(n, o) }

// Parent returns a Borrowed handle to the array or dictionary containing n.
func (n *Node) Parent() (*Node, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("%w: node released", ErrInvalidArg)
	}
	p := n.heap.store.Parent(n.ref)
	if p == native.Null {
		return nil, fmt.Errorf("%w: root node has no parent", ErrNotFound)
	}
	return n.borrowed(p), nil
}

func (n *Node) expect(k Kind) error {
	if n.kind != k {
		return fmt.Errorf("%w: %s node, want %s", ErrInvalidArg, n.kind, k)
	}
	return nil
}

// adopt checks that item can be handed to container n.
func (n *Node) adopt(item *Node) error {
	if item == nil {
		return fmt.Errorf("%w: nil item", ErrInvalidArg)
	}
	if item.heap != n.heap {
		return fmt.Errorf("%w: item belongs to another heap", ErrInvalidArg)
	}
	if item.Ownership() != Owning {
		return fmt.Errorf("%w: item %d is not owning; clone it first", ErrInvalidArg, item.id)
	}
	return nil
}
