package native

import "strings"

// adoptable checks that item may be attached under container c: item must
// be a live root that is not c itself nor one of c's ancestors.
func (s *Store) adoptable(c Ref, item Ref) *node {
	in := s.get(item)
	if in == nil || in.parent != Null || in.typ == Key {
		return nil
	}
	for x := c; x != Null; {
		if x == item {
			return nil
		}
		xn := s.get(x)
		if xn == nil {
			return nil
		}
		x = xn.parent
	}
	return in
}

func (s *Store) ArraySize(r Ref) (uint32, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Array)
	if n == nil {
		return 0, ErrInvalidArg
	}
	return uint32(len(n.children)), Success
}

// ArrayItem returns element i of r, or Null if r is not an array or i is
// out of range.
func (s *Store) ArrayItem(r Ref, i uint32) Ref {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Array)
	if n == nil || int(i) >= len(n.children) {
		return Null
	}
	return n.children[i]
}

// ArrayItemIndex returns the position of item within its parent array.
func (s *Store) ArrayItemIndex(item Ref) (uint32, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.get(item)
	if n == nil {
		return 0, ErrInvalidArg
	}
	p := s.typed(n.parent, Array)
	if p == nil {
		return 0, ErrInvalidArg
	}
	i := indexOf(p.children, item)
	if i < 0 {
		return 0, ErrUnknown
	}
	return uint32(i), Success
}

// ArraySet replaces element i of r with item, releasing the previous
// element.
func (s *Store) ArraySet(r Ref, item Ref, i uint32) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Array)
	if n == nil || int(i) >= len(n.children) {
		return ErrInvalidArg
	}
	in := s.adoptable(r, item)
	if in == nil {
		return ErrInvalidArg
	}
	old := n.children[i]
	n.children[i] = item
	in.parent = r
	s.release(old)
	return Success
}

func (s *Store) ArrayAppend(r Ref, item Ref) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Array)
	if n == nil {
		return ErrInvalidArg
	}
	in := s.adoptable(r, item)
	if in == nil {
		return ErrInvalidArg
	}
	n.children = append(n.children, item)
	in.parent = r
	return Success
}

// ArrayInsert inserts item before element i; i may equal the array size.
func (s *Store) ArrayInsert(r Ref, item Ref, i uint32) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Array)
	if n == nil || int(i) > len(n.children) {
		return ErrInvalidArg
	}
	in := s.adoptable(r, item)
	if in == nil {
		return ErrInvalidArg
	}
	n.children = append(n.children, Null)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = item
	in.parent = r
	return Success
}

// ArrayRemove detaches and releases element i of r.
func (s *Store) ArrayRemove(r Ref, i uint32) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Array)
	if n == nil || int(i) >= len(n.children) {
		return ErrInvalidArg
	}
	item := n.children[i]
	n.children = removeAt(n.children, int(i), 1)
	s.release(item)
	return Success
}

// ArrayItemRemove detaches item from the array holding it and releases it.
func (s *Store) ArrayItemRemove(item Ref) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.get(item)
	if n == nil || s.typed(n.parent, Array) == nil {
		return ErrInvalidArg
	}
	s.detach(item)
	s.release(item)
	return Success
}

func (s *Store) DictSize(r Ref) (uint32, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Dict)
	if n == nil {
		return 0, ErrInvalidArg
	}
	return uint32(len(n.children) / 2), Success
}

// dictIndex returns the position of the key node named key in d.children,
// or -1.
func (s *Store) dictIndex(d *node, key string) int {
	for i := 0; i+1 < len(d.children); i += 2 {
		if k := s.get(d.children[i]); k != nil && k.s == key {
			return i
		}
	}
	return -1
}

// DictItem returns the value stored under key, or Null.
func (s *Store) DictItem(r Ref, key string) Ref {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Dict)
	if n == nil {
		return Null
	}
	i := s.dictIndex(n, key)
	if i < 0 {
		return Null
	}
	return n.children[i+1]
}

// DictKeys returns the keys of r in storage order.
func (s *Store) DictKeys(r Ref) ([]string, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Dict)
	if n == nil {
		return nil, ErrInvalidArg
	}
	keys := make([]string, 0, len(n.children)/2)
	for i := 0; i+1 < len(n.children); i += 2 {
		keys = append(keys, s.get(n.children[i]).s)
	}
	return keys, Success
}

func (s *Store) itemKeyNode(item Ref) Ref {
	n := s.get(item)
	if n == nil {
		return Null
	}
	p := s.typed(n.parent, Dict)
	if p == nil {
		return Null
	}
	i := indexOf(p.children, item)
	if i < 1 || i%2 == 0 {
		return Null
	}
	return p.children[i-1]
}

// DictItemKey returns the key under which item is stored in its parent
// dictionary.
func (s *Store) DictItemKey(item Ref) (string, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := s.itemKeyNode(item)
	if k == Null {
		return "", ErrInvalidArg
	}
	return s.get(k).s, Success
}

// DictItemKeyNode returns the key node paired with item.
func (s *Store) DictItemKeyNode(item Ref) Ref {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemKeyNode(item)
}

// DictSet stores item under key, releasing any value previously stored
// there.
func (s *Store) DictSet(r Ref, key string, item Ref) Status {
	if strings.IndexByte(key, 0) >= 0 {
		return ErrInvalidArg
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Dict)
	if n == nil {
		return ErrInvalidArg
	}
	in := s.adoptable(r, item)
	if in == nil {
		return ErrInvalidArg
	}
	return s.dictSet(r, key, item)
}

// dictSet assumes item has been checked with adoptable.
func (s *Store) dictSet(r Ref, key string, item Ref) Status {
	n := s.get(r)
	if i := s.dictIndex(n, key); i >= 0 {
		old := n.children[i+1]
		n.children[i+1] = item
		s.get(item).parent = r
		s.release(old)
		return Success
	}
	k, st := s.alloc(node{typ: Key, s: key, parent: r})
	if st != Success {
		return st
	}
	// alloc may have moved the slot table.
	n = s.get(r)
	n.children = append(n.children, k, item)
	s.get(item).parent = r
	return Success
}

// DictRemove detaches and releases the entry stored under key.
func (s *Store) DictRemove(r Ref, key string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Dict)
	if n == nil {
		return ErrInvalidArg
	}
	i := s.dictIndex(n, key)
	if i < 0 {
		return ErrInvalidArg
	}
	k, v := n.children[i], n.children[i+1]
	n.children = removeAt(n.children, i, 2)
	s.release(k)
	s.release(v)
	return Success
}

// DictMerge moves every entry of src into dst, replacing values of keys
// present in both, and then releases the emptied src. src must be a root
// dictionary.
func (s *Store) DictMerge(dst, src Ref) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dst == src || s.typed(dst, Dict) == nil {
		return ErrInvalidArg
	}
	sn := s.typed(src, Dict)
	if sn == nil || s.adoptable(dst, src) == nil {
		return ErrInvalidArg
	}
	entries := sn.children
	sn.children = nil
	for i := 0; i+1 < len(entries); i += 2 {
		k, v := entries[i], entries[i+1]
		key := s.get(k).s
		s.get(v).parent = Null
		s.release(k)
		if st := s.dictSet(dst, key, v); st != Success {
			s.release(v)
			for j := i + 2; j < len(entries); j++ {
				s.release(entries[j])
			}
			s.release(src)
			return st
		}
	}
	s.release(src)
	return Success
}
