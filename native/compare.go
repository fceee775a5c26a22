package native

import (
	"bytes"
	"math"
)

// Compare reports whether a and b hold equal values. Dictionaries are
// equal when they hold the same keys mapped to equal values, regardless of
// entry order. Two dead or null Refs are not equal to anything.
func (s *Store) Compare(a, b Ref) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compare(a, b)
}

func (s *Store) compare(a, b Ref) bool {
	an, bn := s.get(a), s.get(b)
	if an == nil || bn == nil {
		return false
	}
	if a == b {
		return true
	}
	if an.typ != bn.typ {
		return false
	}
	switch an.typ {
	case Boolean:
		return an.b == bn.b
	case Uint:
		return an.u == bn.u && an.signed == bn.signed
	case UID:
		return an.u == bn.u
	case Real:
		if math.IsNaN(an.f) && math.IsNaN(bn.f) {
			return true
		}
		return an.f == bn.f
	case String, Key:
		return an.s == bn.s
	case Data:
		return bytes.Equal(an.data, bn.data)
	case Date:
		return an.sec == bn.sec && an.usec == bn.usec
	case Array:
		if len(an.children) != len(bn.children) {
			return false
		}
		for i := range an.children {
			if !s.compare(an.children[i], bn.children[i]) {
				return false
			}
		}
		return true
	case Dict:
		if len(an.children) != len(bn.children) {
			return false
		}
		for i := 0; i+1 < len(an.children); i += 2 {
			key := s.get(an.children[i]).s
			j := s.dictIndex(bn, key)
			if j < 0 {
				return false
			}
			if !s.compare(an.children[i+1], bn.children[j+1]) {
				return false
			}
		}
		return true
	}
	return false
}
