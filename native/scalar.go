package native

import "strings"

func (s *Store) newNode(n node) (Ref, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alloc(n)
}

func (s *Store) NewBool(v bool) (Ref, Status) {
	return s.newNode(node{typ: Boolean, b: v})
}

func (s *Store) NewUint(v uint64) (Ref, Status) {
	return s.newNode(node{typ: Uint, u: v})
}

// NewInt stores a signed integer. It shares the integer type with NewUint;
// the sign only affects how the value is read back and encoded.
func (s *Store) NewInt(v int64) (Ref, Status) {
	return s.newNode(node{typ: Uint, u: uint64(v), signed: v < 0})
}

func (s *Store) NewReal(v float64) (Ref, Status) {
	return s.newNode(node{typ: Real, f: v})
}

// NewString stores v. Strings may not contain NUL bytes.
func (s *Store) NewString(v string) (Ref, Status) {
	if strings.IndexByte(v, 0) >= 0 {
		return Null, ErrInvalidArg
	}
	return s.newNode(node{typ: String, s: v})
}

// NewData stores a copy of v.
func (s *Store) NewData(v []byte) (Ref, Status) {
	return s.newNode(node{typ: Data, data: append([]byte{}, v...)})
}

// NewDate stores a date as seconds and microseconds since
// 2001-01-01T00:00:00Z.
func (s *Store) NewDate(sec int64, usec int32) (Ref, Status) {
	if usec <= -1e6 || usec >= 1e6 {
		return Null, ErrInvalidArg
	}
	return s.newNode(node{typ: Date, sec: sec, usec: usec})
}

func (s *Store) NewUID(v uint64) (Ref, Status) {
	return s.newNode(node{typ: UID, u: v})
}

func (s *Store) NewArray() (Ref, Status) {
	return s.newNode(node{typ: Array})
}

func (s *Store) NewDict() (Ref, Status) {
	return s.newNode(node{typ: Dict})
}

// typed returns the node for r if it is live and of type t.
func (s *Store) typed(r Ref, t Type) *node {
	n := s.get(r)
	if n == nil || n.typ != t {
		return nil
	}
	return n
}

func (s *Store) GetBool(r Ref) (bool, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Boolean)
	if n == nil {
		return false, ErrInvalidArg
	}
	return n.b, Success
}

func (s *Store) SetBool(r Ref, v bool) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Boolean)
	if n == nil {
		return ErrInvalidArg
	}
	n.b = v
	return Success
}

// GetUint returns the integer bits of r and whether they were stored signed.
func (s *Store) GetUint(r Ref) (uint64, bool, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Uint)
	if n == nil {
		return 0, false, ErrInvalidArg
	}
	return n.u, n.signed, Success
}

func (s *Store) SetUint(r Ref, v uint64) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Uint)
	if n == nil {
		return ErrInvalidArg
	}
	n.u = v
	n.signed = false
	return Success
}

func (s *Store) SetInt(r Ref, v int64) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Uint)
	if n == nil {
		return ErrInvalidArg
	}
	n.u = uint64(v)
	n.signed = v < 0
	return Success
}

func (s *Store) GetReal(r Ref) (float64, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Real)
	if n == nil {
		return 0, ErrInvalidArg
	}
	return n.f, Success
}

func (s *Store) SetReal(r Ref, v float64) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Real)
	if n == nil {
		return ErrInvalidArg
	}
	n.f = v
	return Success
}

func (s *Store) GetString(r Ref) (string, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, String)
	if n == nil {
		return "", ErrInvalidArg
	}
	return n.s, Success
}

func (s *Store) SetString(r Ref, v string) Status {
	if strings.IndexByte(v, 0) >= 0 {
		return ErrInvalidArg
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, String)
	if n == nil {
		return ErrInvalidArg
	}
	n.s = v
	return Success
}

// GetKey returns the text of a dictionary key node.
func (s *Store) GetKey(r Ref) (string, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Key)
	if n == nil {
		return "", ErrInvalidArg
	}
	return n.s, Success
}

// SetKey renames a dictionary key. Renaming onto a key already present in
// the same dictionary fails.
func (s *Store) SetKey(r Ref, v string) Status {
	if strings.IndexByte(v, 0) >= 0 {
		return ErrInvalidArg
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Key)
	if n == nil {
		return ErrInvalidArg
	}
	if n.s == v {
		return Success
	}
	if p := s.get(n.parent); p != nil {
		if i := s.dictIndex(p, v); i >= 0 {
			return ErrInvalidArg
		}
	}
	n.s = v
	return Success
}

// GetData returns a copy of the bytes held by r.
func (s *Store) GetData(r Ref) ([]byte, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Data)
	if n == nil {
		return nil, ErrInvalidArg
	}
	return append([]byte{}, n.data...), Success
}

func (s *Store) SetData(r Ref, v []byte) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Data)
	if n == nil {
		return ErrInvalidArg
	}
	n.data = append([]byte{}, v...)
	return Success
}

func (s *Store) GetDate(r Ref) (int64, int32, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Date)
	if n == nil {
		return 0, 0, ErrInvalidArg
	}
	return n.sec, n.usec, Success
}

func (s *Store) SetDate(r Ref, sec int64, usec int32) Status {
	if usec <= -1e6 || usec >= 1e6 {
		return ErrInvalidArg
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, Date)
	if n == nil {
		return ErrInvalidArg
	}
	n.sec, n.usec = sec, usec
	return Success
}

func (s *Store) GetUID(r Ref) (uint64, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, UID)
	if n == nil {
		return 0, ErrInvalidArg
	}
	return n.u, Success
}

func (s *Store) SetUID(r Ref, v uint64) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.typed(r, UID)
	if n == nil {
		return ErrInvalidArg
	}
	n.u = v
	return Success
}
