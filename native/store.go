package native

import (
	"sync"
)

// Ref names a node in a Store. The zero Ref is the null node.
type Ref uint64

// Null is the Ref returned when there is no node.
const Null Ref = 0

func mkRef(idx, gen uint32) Ref {
	return Ref(uint64(gen)<<32 | uint64(idx))
}

func (r Ref) index() uint32 { return uint32(r) }
func (r Ref) gen() uint32   { return uint32(r >> 32) }

// IsNull reports whether r is the null node.
func (r Ref) IsNull() bool { return r == Null }

type node struct {
	typ    Type
	parent Ref

	b      bool
	u      uint64
	signed bool
	f      float64
	s      string
	data   []byte
	sec    int64
	usec   int32

	// Array: elements. Dict: alternating key and value nodes.
	children []Ref
}

type slot struct {
	gen  uint32
	live bool
	n    node
}

// Stats reports allocation counters of a Store.
type Stats struct {
	Allocs  uint64
	Frees   uint64
	Live    int
	Cursors int
}

// Store holds property-list nodes.
type Store struct {
	mu    sync.Mutex
	slots []slot
	free  []uint32

	limit   int
	allocs  uint64
	frees   uint64
	live    int
	cursors map[Cursor]*cursor
	nextCur Cursor
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// MaxNodes bounds the number of live nodes; allocations past the bound
// fail with ErrNoMem. Zero means unbounded.
func MaxNodes(n int) StoreOption {
	return func(s *Store) { s.limit = n }
}

// NewStore returns an empty Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		slots:   make([]slot, 1, 64),
		cursors: map[Cursor]*cursor{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns the current counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Allocs:  s.allocs,
		Frees:   s.frees,
		Live:    s.live,
		Cursors: len(s.cursors),
	}
}

func (s *Store) alloc(n node) (Ref, Status) {
	if s.limit > 0 && s.live >= s.limit {
		return Null, ErrNoMem
	}
	var idx uint32
	if k := len(s.free); k > 0 {
		idx = s.free[k-1]
		s.free = s.free[:k-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, slot{})
	}
	sl := &s.slots[idx]
	sl.gen++
	if sl.gen == 0 {
		sl.gen = 1
	}
	sl.live = true
	sl.n = n
	s.allocs++
	s.live++
	return mkRef(idx, sl.gen), Success
}

func (s *Store) get(r Ref) *node {
	idx := r.index()
	if r == Null || int(idx) >= len(s.slots) {
		return nil
	}
	sl := &s.slots[idx]
	if !sl.live || sl.gen != r.gen() {
		return nil
	}
	return &sl.n
}

// release frees r and its descendants without touching the parent.
func (s *Store) release(r Ref) {
	n := s.get(r)
	if n == nil {
		return
	}
	for _, c := range n.children {
		s.release(c)
	}
	sl := &s.slots[r.index()]
	sl.live = false
	sl.n = node{}
	s.free = append(s.free, r.index())
	s.frees++
	s.live--
}

// detach removes r from its parent's children. For a dictionary value the
// key node is released as well.
func (s *Store) detach(r Ref) {
	n := s.get(r)
	if n == nil || n.parent == Null {
		return
	}
	p := s.get(n.parent)
	n.parent = Null
	if p == nil {
		return
	}
	i := indexOf(p.children, r)
	if i < 0 {
		return
	}
	switch p.typ {
	case Array:
		p.children = removeAt(p.children, i, 1)
	case Dict:
		key := p.children[i-1]
		p.children = removeAt(p.children, i-1, 2)
		s.release(key)
	}
}

// Free detaches r from its parent, if any, and releases r and all of its
// descendants. Freeing a Ref that is null or already released returns
// ErrInvalidArg and changes nothing.
func (s *Store) Free(r Ref) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.get(r) == nil {
		return ErrInvalidArg
	}
	s.detach(r)
	s.release(r)
	return Success
}

// Valid reports whether r names a live node.
func (s *Store) Valid(r Ref) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(r) != nil
}

// NodeType returns the type of r, or None if r is not a live node.
func (s *Store) NodeType(r Ref) Type {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.get(r)
	if n == nil {
		return None
	}
	return n.typ
}

// Parent returns the container holding r, or Null for a root.
func (s *Store) Parent(r Ref) Ref {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.get(r)
	if n == nil {
		return Null
	}
	return n.parent
}

// Copy returns a new root holding a deep copy of r.
func (s *Store) Copy(r Ref) (Ref, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.get(r) == nil {
		return Null, ErrInvalidArg
	}
	return s.copy(r, Null)
}

func (s *Store) copy(r Ref, parent Ref) (Ref, Status) {
	src := *s.get(r)
	dst := src
	dst.parent = parent
	dst.children = nil
	if src.data != nil {
		dst.data = append([]byte(nil), src.data...)
	}
	res, st := s.alloc(dst)
	if st != Success {
		return Null, st
	}
	if len(src.children) == 0 {
		return res, Success
	}
	children := make([]Ref, 0, len(src.children))
	for _, c := range src.children {
		cc, st := s.copy(c, res)
		if st != Success {
			s.get(res).children = children
			s.release(res)
			return Null, st
		}
		children = append(children, cc)
	}
	s.get(res).children = children
	return res, Success
}

func indexOf(refs []Ref, r Ref) int {
	for i, x := range refs {
		if x == r {
			return i
		}
	}
	return -1
}

func removeAt(refs []Ref, i, n int) []Ref {
	return append(refs[:i], refs[i+n:]...)
}
