package plist

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/signadot/plist-format/go-plist/native"
)

// Heap binds nodes to the native store that holds their storage and to the
// logger used for ownership diagnostics. Nodes from different heaps cannot
// be combined.
type Heap struct {
	store *native.Store
	log   *slog.Logger
	ids   atomic.Uint64
}

type HeapOption func(*Heap)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) HeapOption {
	return func(h *Heap) { h.log = l }
}

// WithStore sets the native store. The default is a new unbounded store.
func WithStore(s *native.Store) HeapOption {
	return func(h *Heap) { h.store = s }
}

func NewHeap(opts ...HeapOption) *Heap {
	h := &Heap{}
	for _, opt := range opts {
		opt(h)
	}
	if h.store == nil {
		h.store = native.NewStore()
	}
	if h.log == nil {
		h.log = slog.New(slog.DiscardHandler)
	}
	return h
}

var (
	defaultHeap     *Heap
	defaultHeapOnce sync.Once
)

// Default returns the heap used by the package-level constructors.
func Default() *Heap {
	defaultHeapOnce.Do(func() {
		defaultHeap = NewHeap()
	})
	return defaultHeap
}

func (h *Heap) Store() *native.Store { return h.store }

func (h *Heap) Logger() *slog.Logger { return h.log }

// lease carries the ownership state of a handle. It is kept apart from the
// Node so that a cleanup attached to the Node can reach it.
type lease struct {
	state atomic.Int32
	freed atomic.Bool
	store *native.Store
	ref   native.Ref
}

func releaseLease(l *lease) {
	if l.state.CompareAndSwap(int32(Owning), int32(Borrowed)) {
		l.store.Free(l.ref)
	}
}

// owned wraps a fresh root as an Owning node. If the node is dropped
// without Free its storage is released when it is garbage collected.
func (h *Heap) owned(r native.Ref, op string) *Node {
	n := &Node{
		heap:  h,
		ref:   r,
		kind:  kindOf(h.store.NodeType(r)),
		id:    h.ids.Add(1),
		lease: &lease{store: h.store, ref: r},
	}
	n.lease.state.Store(int32(Owning))
	runtime.AddCleanup(n, releaseLease, n.lease)
	h.log.Debug("plist: new node", "op", op, "id", n.id, "kind", n.kind)
	return n
}

func (h *Heap) mustOwned(r native.Ref, st native.Status, op string) *Node {
	if st != native.Success {
		panic(statusErr(op, st))
	}
	return h.owned(r, op)
}

// NewBool and the other scalar constructors panic only if the store is out
// of capacity (see native.MaxNodes).
func (h *Heap) NewBool(v bool) *Node {
	r, st := h.store.NewBool(v)
	return h.mustOwned(r, st, "new bool")
}

func (h *Heap) NewUint(v uint64) *Node {
	r, st := h.store.NewUint(v)
	return h.mustOwned(r, st, "new uint")
}

func (h *Heap) NewInt(v int64) *Node {
	r, st := h.store.NewInt(v)
	return h.mustOwned(r, st, "new int")
}

func (h *Heap) NewReal(v float64) *Node {
	r, st := h.store.NewReal(v)
	return h.mustOwned(r, st, "new real")
}

// NewString fails with ErrInvalidArg if v contains a NUL byte.
func (h *Heap) NewString(v string) (*Node, error) {
	r, st := h.store.NewString(v)
	if st == native.ErrInvalidArg {
		return nil, fmt.Errorf("%w: string contains NUL", ErrInvalidArg)
	}
	return h.mustOwned(r, st, "new string"), nil
}

func (h *Heap) NewData(v []byte) *Node {
	r, st := h.store.NewData(v)
	return h.mustOwned(r, st, "new data")
}

func (h *Heap) NewUID(v uint64) *Node {
	r, st := h.store.NewUID(v)
	return h.mustOwned(r, st, "new uid")
}

func (h *Heap) NewArray() *Node {
	r, st := h.store.NewArray()
	return h.mustOwned(r, st, "new array")
}

func (h *Heap) NewDict() *Node {
	r, st := h.store.NewDict()
	return h.mustOwned(r, st, "new dict")
}

func NewBool(v bool) *Node { return Default().NewBool(v) }
func NewUint(v uint64) *Node { return Default().NewUint(v) }
func NewInt(v int64) *Node { return Default().NewInt(v) }
func NewReal(v float64) *Node { return Default().NewReal(v) }
func NewString(v string) (*Node, error) { return Default().NewString(v) }
func NewData(v []byte) *Node { return Default().NewData(v) }
func NewUID(v uint64) *Node { return Default().NewUID(v) }
func NewArray() *Node { return Default().NewArray() }
func NewDict() *Node { return Default().NewDict() }
func NewDate(d time.Duration) *Node { return Default().NewDate(d) }
func NewDateTime(t time.Time) *Node { return Default().NewDateTime(t) }
func FromXML(text string) (*Node, error) { return Default().FromXML(text) }
func FromBinary(d []byte) (*Node, error) { return Default().FromBinary(d) }
func FromMemory(d []byte) (*Node, error) { return Default().FromMemory(d) }
