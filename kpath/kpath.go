package kpath

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrSyntax = errors.New("kpath syntax error")

// KPath is one segment of a path, linked to the rest of the path by Next.
// Exactly one of Field, FieldAll, Index and IndexAll is set.
type KPath struct {
	Field    *string // dictionary key
	FieldAll bool    // .* - every key
	Index    *int    // array index
	IndexAll bool    // [*] - every element
	Next     *KPath
}

// Field returns a single dictionary key segment.
func Field(name string) *KPath { return &KPath{Field: &name} }

// Index returns a single array index segment.
func Index(i int) *KPath { return &KPath{Index: &i} }

// String returns the path text, quoting keys that would not parse back.
//
//	a.b      KPath{Field: "a", Next: {Field: "b"}}
//	a[0]     KPath{Field: "a", Next: {Index: 0}}
//	a.*      KPath{Field: "a", Next: {FieldAll: true}}
//	"x.y"[*] KPath{Field: "x.y", Next: {IndexAll: true}}
func (p *KPath) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		if x.Field != nil || x.FieldAll {
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
		}
		buf.WriteString(x.SegmentString())
	}
	return buf.String()
}

// SegmentString returns the text of the first segment only.
func (p *KPath) SegmentString() string {
	switch {
	case p == nil:
		return ""
	case p.FieldAll:
		return "*"
	case p.Field != nil:
		return quoteField(*p.Field)
	case p.IndexAll:
		return "[*]"
	case p.Index != nil:
		return fmt.Sprintf("[%d]", *p.Index)
	}
	return ""
}

// quoteField quotes a key containing characters that would otherwise end
// or change the segment.
func quoteField(f string) string {
	if f == "" || f == "*" || strings.ContainsAny(f, ".[]\"' \t\n\\") {
		return strconv.Quote(f)
	}
	return f
}

// Parse parses path text. The empty string is the root path and parses to
// nil.
func Parse(kpath string) (*KPath, error) {
	if kpath == "" {
		return nil, nil
	}
	root := &KPath{}
	if err := parseFrag(kpath, root); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrSyntax, kpath, err)
	}
	return root, nil
}

// MustParse is Parse that panics on error.
func MustParse(kpath string) *KPath {
	kp, err := Parse(kpath)
	if err != nil {
		panic(err)
	}
	return kp
}

func parseFrag(frag string, seg *KPath) error {
	var rest string
	switch frag[0] {
	case '.':
		if len(frag) > 1 && frag[1] == '*' {
			seg.FieldAll = true
			rest = frag[2:]
			break
		}
		field, r, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		seg.Field = &field
		rest = r
	case '[':
		i := strings.IndexByte(frag, ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		is := frag[1:i]
		if is == "*" {
			seg.IndexAll = true
		} else {
			u, err := strconv.ParseUint(is, 10, 31)
			if err != nil {
				return fmt.Errorf("invalid array index %q", is)
			}
			idx := int(u)
			seg.Index = &idx
		}
		rest = frag[i+1:]
	case '*':
		if len(frag) == 1 || frag[1] == '.' || frag[1] == '[' {
			seg.FieldAll = true
			rest = frag[1:]
			break
		}
		fallthrough
	default:
		field, r, err := parseField(frag)
		if err != nil {
			return err
		}
		seg.Field = &field
		rest = r
	}
	if rest == "" {
		return nil
	}
	if rest[0] != '.' && rest[0] != '[' {
		return fmt.Errorf("unexpected %q after segment", rest[0])
	}
	seg.Next = &KPath{}
	return parseFrag(rest, seg.Next)
}

// parseField reads a dictionary key, stopping at '.' or '['. A key starting
// with '"' is a Go-syntax quoted string.
func parseField(frag string) (field, rest string, err error) {
	if frag == "" {
		return "", "", fmt.Errorf("expected field at end of path")
	}
	if frag[0] == '"' {
		q, err := strconv.QuotedPrefix(frag)
		if err != nil {
			return "", "", fmt.Errorf("invalid quoted field: %w", err)
		}
		field, err := strconv.Unquote(q)
		if err != nil {
			return "", "", fmt.Errorf("invalid quoted field: %w", err)
		}
		return field, frag[len(q):], nil
	}
	i := strings.IndexAny(frag, ".[")
	if i == -1 {
		return frag, "", nil
	}
	if i == 0 {
		return "", "", fmt.Errorf("empty field")
	}
	return frag[:i], frag[i:], nil
}

// Segments returns the plain key and decimal index strings of p. Wildcards
// are returned as "*".
func (p *KPath) Segments() []string {
	var res []string
	for x := p; x != nil; x = x.Next {
		switch {
		case x.Field != nil:
			res = append(res, *x.Field)
		case x.Index != nil:
			res = append(res, strconv.Itoa(*x.Index))
		default:
			res = append(res, "*")
		}
	}
	return res
}

// HasWildcard reports whether any segment of p is a wildcard.
func (p *KPath) HasWildcard() bool {
	for x := p; x != nil; x = x.Next {
		if x.FieldAll || x.IndexAll {
			return true
		}
	}
	return false
}

func (p *KPath) copySegment() *KPath {
	res := &KPath{FieldAll: p.FieldAll, IndexAll: p.IndexAll}
	if p.Field != nil {
		f := *p.Field
		res.Field = &f
	}
	if p.Index != nil {
		i := *p.Index
		res.Index = &i
	}
	return res
}

// Parent returns the path without its last segment, or nil for a path of
// one segment.
func (p *KPath) Parent() *KPath {
	if p == nil || p.Next == nil {
		return nil
	}
	res := p.copySegment()
	res.Next = p.Next.Parent()
	return res
}

// Last returns the last segment of p.
func (p *KPath) Last() *KPath {
	if p == nil {
		return nil
	}
	x := p
	for x.Next != nil {
		x = x.Next
	}
	return x
}

// Append returns a copy of p followed by q.
func (p *KPath) Append(q *KPath) *KPath {
	if p == nil {
		return q
	}
	res := p.copySegment()
	res.Next = p.Next.Append(q)
	return res
}

func segmentsEqual(a, b *KPath) bool {
	if (a.Field == nil) != (b.Field == nil) || (a.Index == nil) != (b.Index == nil) {
		return false
	}
	if a.Field != nil && *a.Field != *b.Field {
		return false
	}
	if a.Index != nil && *a.Index != *b.Index {
		return false
	}
	return a.FieldAll == b.FieldAll && a.IndexAll == b.IndexAll
}

// IsChildOf reports whether parent is a proper prefix of p.
func (p *KPath) IsChildOf(parent *KPath) bool {
	if parent == nil {
		return p != nil
	}
	x, y := p, parent
	for y != nil {
		if x == nil || !segmentsEqual(x, y) {
			return false
		}
		x, y = x.Next, y.Next
	}
	return x != nil
}

// Compare orders paths segment by segment. Keys sort first, then .*, then
// indices and finally [*].
func (p *KPath) Compare(other *KPath) int {
	a, b := p, other
	for a != nil && b != nil {
		if c := compareSegment(a, b); c != 0 {
			return c
		}
		a, b = a.Next, b.Next
	}
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	}
	return 1
}

func segmentRank(p *KPath) int {
	switch {
	case p.Field != nil:
		return 0
	case p.FieldAll:
		return 1
	case p.Index != nil:
		return 2
	}
	return 3
}

func compareSegment(a, b *KPath) int {
	ra, rb := segmentRank(a), segmentRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch {
	case a.Field != nil:
		return strings.Compare(*a.Field, *b.Field)
	case a.Index != nil:
		return cmp.Compare(*a.Index, *b.Index)
	}
	return 0
}

func (p *KPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *KPath) UnmarshalText(d []byte) error {
	pp, err := Parse(string(d))
	if err != nil {
		return err
	}
	if pp == nil {
		*p = KPath{}
		return nil
	}
	*p = *pp
	return nil
}
