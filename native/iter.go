package native

// Cursor is an opaque traversal state over the children of an array or
// dictionary. Cursors must be released with FreeIter.
type Cursor uint64

type cursor struct {
	container Ref
	typ       Type
	pos       int
}

func (s *Store) newIter(r Ref, t Type) (Cursor, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.typed(r, t) == nil {
		return 0, ErrInvalidArg
	}
	s.nextCur++
	c := s.nextCur
	s.cursors[c] = &cursor{container: r, typ: t}
	return c, Success
}

func (s *Store) ArrayNewIter(r Ref) (Cursor, Status) {
	return s.newIter(r, Array)
}

func (s *Store) DictNewIter(r Ref) (Cursor, Status) {
	return s.newIter(r, Dict)
}

// ArrayNextItem advances c and returns the next element, or Null when the
// array is exhausted.
func (s *Store) ArrayNextItem(r Ref, c Cursor) Ref {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.cursors[c]
	if cur == nil || cur.container != r || cur.typ != Array {
		return Null
	}
	n := s.typed(r, Array)
	if n == nil || cur.pos >= len(n.children) {
		return Null
	}
	item := n.children[cur.pos]
	cur.pos++
	return item
}

// DictNextItem advances c and returns the next key and value, or a Null
// value when the dictionary is exhausted.
func (s *Store) DictNextItem(r Ref, c Cursor) (string, Ref) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.cursors[c]
	if cur == nil || cur.container != r || cur.typ != Dict {
		return "", Null
	}
	n := s.typed(r, Dict)
	if n == nil || cur.pos+1 >= len(n.children) {
		return "", Null
	}
	k, v := n.children[cur.pos], n.children[cur.pos+1]
	cur.pos += 2
	return s.get(k).s, v
}

// FreeIter releases c. Releasing an unknown cursor returns ErrInvalidArg.
func (s *Store) FreeIter(c Cursor) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cursors[c]; !ok {
		return ErrInvalidArg
	}
	delete(s.cursors, c)
	return Success
}
