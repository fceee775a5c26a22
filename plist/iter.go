package plist

import (
	"fmt"
	"iter"
	"runtime"
	"sync/atomic"

	"github.com/signadot/plist-format/go-plist/native"
)

// Entry is one step of an Iterator. Key is empty for array elements.
type Entry struct {
	Key  string
	Node *Node
}

// Iterator walks the children of an array or dictionary in storage order.
// It holds a store cursor until it is exhausted or closed.
type Iterator struct {
	n      *Node
	cursor native.Cursor
	dict   bool
	done   *atomic.Bool
}

type iterCursor struct {
	store  *native.Store
	cursor native.Cursor
	done   *atomic.Bool
}

func releaseCursor(c iterCursor) {
	if c.done.CompareAndSwap(false, true) {
		c.store.FreeIter(c.cursor)
	}
}

// Iter starts an iteration over the children of n. It panics if n is not
// an array or a dictionary; check Kind first.
func (n *Node) Iter() *Iterator {
	var (
		c  native.Cursor
		st native.Status
	)
	switch n.kind {
	case ArrayKind:
		c, st = n.heap.store.ArrayNewIter(n.ref)
	case DictKind:
		c, st = n.heap.store.DictNewIter(n.ref)
	default:
		panic(fmt.Sprintf("plist: Iter on %s node", n.kind))
	}
	it := &Iterator{n: n, dict: n.kind == DictKind, done: &atomic.Bool{}}
	if st != native.Success {
		n.heap.log.Warn("plist: iterator on released node", "id", n.id, "status", st)
		it.done.Store(true)
		return it
	}
	it.cursor = c
	runtime.AddCleanup(it, releaseCursor, iterCursor{store: n.heap.store, cursor: c, done: it.done})
	return it
}

// Next returns the next child. The second result is false once the
// iteration is exhausted, at which point the cursor has been released.
func (it *Iterator) Next() (Entry, bool) {
	if it.done.Load() {
		return Entry{}, false
	}
	var (
		key string
		r   native.Ref
	)
	if it.dict {
		key, r = it.n.heap.store.DictNextItem(it.n.ref, it.cursor)
	} else {
		r = it.n.heap.store.ArrayNextItem(it.n.ref, it.cursor)
	}
	if r == native.Null {
		it.Close()
		return Entry{}, false
	}
	return Entry{Key: key, Node: it.n.borrowed(r)}, true
}

// Close releases the cursor. It is safe to call more than once.
func (it *Iterator) Close() {
	if it.done.CompareAndSwap(false, true) {
		it.n.heap.store.FreeIter(it.cursor)
	}
}

// All returns a sequence of key and child pairs. Keys are empty for array
// elements. The cursor is released when the loop ends, including on break.
func (n *Node) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		it := n.Iter()
		defer it.Close()
		for {
			e, ok := it.Next()
			if !ok || !yield(e.Key, e.Node) {
				return
			}
		}
	}
}

// Values returns a sequence of the children of n.
func (n *Node) Values() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, v := range n.All() {
			if !yield(v) {
				return
			}
		}
	}
}
