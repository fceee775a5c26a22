package native

import (
	"bytes"
	"maps"
	"slices"
	"time"

	"howett.net/plist"
)

// MacEpochUnix is 2001-01-01T00:00:00Z in seconds since the Unix epoch.
// Dates are stored relative to it.
const MacEpochUnix = 978307200

const binaryMagic = "bplist00"

// uidKey is the single key of the dictionary form of a UID in text formats.
const uidKey = "CF$UID"

// IsBinary reports whether d starts like a binary property list.
func IsBinary(d []byte) bool {
	return len(d) >= len(binaryMagic) && bytes.HasPrefix(d, []byte(binaryMagic))
}

// FromXML decodes an XML property list into a new root node.
func (s *Store) FromXML(d []byte) (Ref, Status) {
	if len(d) == 0 {
		return Null, ErrInvalidArg
	}
	if IsBinary(d) {
		return Null, ErrFormat
	}
	return s.decode(d, plist.XMLFormat)
}

// FromBin decodes a binary property list into a new root node.
func (s *Store) FromBin(d []byte) (Ref, Status) {
	if len(d) < len(binaryMagic) {
		return Null, ErrInvalidArg
	}
	if !IsBinary(d) {
		return Null, ErrParse
	}
	return s.decode(d, plist.BinaryFormat)
}

// FromMemory decodes a property list in any supported format.
func (s *Store) FromMemory(d []byte) (Ref, Status) {
	if len(d) == 0 {
		return Null, ErrInvalidArg
	}
	return s.decode(d, plist.InvalidFormat)
}

// decode unmarshals d and checks the detected format against want, unless
// want is InvalidFormat.
func (s *Store) decode(d []byte, want int) (Ref, Status) {
	var v any
	got, err := plist.Unmarshal(d, &v)
	if err != nil {
		return Null, ErrParse
	}
	if want != plist.InvalidFormat && got != want {
		return Null, ErrFormat
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fromValue(v, Null)
}

func (s *Store) ToXML(r Ref) ([]byte, Status) {
	return s.encode(r, plist.XMLFormat)
}

func (s *Store) ToBin(r Ref) ([]byte, Status) {
	return s.encode(r, plist.BinaryFormat)
}

// ToOpenStep encodes r as OpenStep text. Types without an OpenStep
// spelling are written the way howett.net/plist writes them.
func (s *Store) ToOpenStep(r Ref) ([]byte, Status) {
	return s.encode(r, plist.OpenStepFormat)
}

func (s *Store) encode(r Ref, format int) ([]byte, Status) {
	s.mu.Lock()
	v, st := s.toValue(r)
	s.mu.Unlock()
	if st != Success {
		return nil, st
	}
	var (
		d   []byte
		err error
	)
	if format == plist.BinaryFormat {
		d, err = plist.Marshal(v, format)
	} else {
		d, err = plist.MarshalIndent(v, format, "\t")
	}
	if err != nil {
		return nil, ErrFormat
	}
	return d, Success
}

func (s *Store) toValue(r Ref) (any, Status) {
	n := s.get(r)
	if n == nil {
		return nil, ErrInvalidArg
	}
	switch n.typ {
	case Boolean:
		return n.b, Success
	case Uint:
		if n.signed {
			return int64(n.u), Success
		}
		return n.u, Success
	case Real:
		return n.f, Success
	case String, Key:
		return n.s, Success
	case Data:
		return n.data, Success
	case Date:
		return DateTime(n.sec, n.usec), Success
	case UID:
		return plist.UID(n.u), Success
	case Array:
		res := make([]any, 0, len(n.children))
		for _, c := range n.children {
			v, st := s.toValue(c)
			if st != Success {
				return nil, st
			}
			res = append(res, v)
		}
		return res, Success
	case Dict:
		res := make(map[string]any, len(n.children)/2)
		for i := 0; i+1 < len(n.children); i += 2 {
			v, st := s.toValue(n.children[i+1])
			if st != Success {
				return nil, st
			}
			res[s.get(n.children[i]).s] = v
		}
		return res, Success
	}
	return nil, ErrUnknown
}

func (s *Store) fromValue(v any, parent Ref) (Ref, Status) {
	var n node
	switch x := v.(type) {
	case bool:
		n = node{typ: Boolean, b: x}
	case uint64:
		n = node{typ: Uint, u: x}
	case int64:
		n = node{typ: Uint, u: uint64(x), signed: x < 0}
	case int:
		n = node{typ: Uint, u: uint64(x), signed: x < 0}
	case uint32:
		n = node{typ: Uint, u: uint64(x)}
	case float64:
		n = node{typ: Real, f: x}
	case float32:
		n = node{typ: Real, f: float64(x)}
	case string:
		n = node{typ: String, s: x}
	case []byte:
		n = node{typ: Data, data: append([]byte{}, x...)}
	case time.Time:
		sec, usec := DateParts(x)
		n = node{typ: Date, sec: sec, usec: usec}
	case plist.UID:
		n = node{typ: UID, u: uint64(x)}
	case []any:
		n = node{typ: Array}
	case map[string]any:
		if u, ok := uidValue(x); ok {
			n = node{typ: UID, u: u}
			break
		}
		n = node{typ: Dict}
	default:
		return Null, ErrParse
	}
	n.parent = parent
	r, st := s.alloc(n)
	if st != Success {
		return Null, st
	}
	var children []Ref
	switch x := v.(type) {
	case []any:
		children = make([]Ref, 0, len(x))
		for _, e := range x {
			c, st := s.fromValue(e, r)
			if st != Success {
				s.get(r).children = children
				s.release(r)
				return Null, st
			}
			children = append(children, c)
		}
	case map[string]any:
		if n.typ != Dict {
			break
		}
		children = make([]Ref, 0, 2*len(x))
		for _, key := range slices.Sorted(maps.Keys(x)) {
			k, st := s.alloc(node{typ: Key, s: key, parent: r})
			if st != Success {
				s.get(r).children = children
				s.release(r)
				return Null, st
			}
			children = append(children, k)
			c, st := s.fromValue(x[key], r)
			if st != Success {
				s.get(r).children = children
				s.release(r)
				return Null, st
			}
			children = append(children, c)
		}
	}
	if children != nil {
		s.get(r).children = children
	}
	return r, Success
}

func uidValue(m map[string]any) (uint64, bool) {
	if len(m) != 1 {
		return 0, false
	}
	switch x := m[uidKey].(type) {
	case uint64:
		return x, true
	case int64:
		if x >= 0 {
			return uint64(x), true
		}
	}
	return 0, false
}

// DateTime converts stored date parts to a time.Time in UTC.
func DateTime(sec int64, usec int32) time.Time {
	return time.Unix(MacEpochUnix+sec, int64(usec)*int64(time.Microsecond)).UTC()
}

// DateParts converts t to stored date parts, rounding to the nearest
// microsecond to absorb float error from the binary encoding. The parts
// share the sign of the offset from the epoch.
func DateParts(t time.Time) (int64, int32) {
	us := t.Round(time.Microsecond).UnixMicro() - MacEpochUnix*1e6
	return us / 1e6, int32(us % 1e6)
}
