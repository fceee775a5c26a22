package plist

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Display renders n for humans. Scalars render as their value, data as a
// list of byte values, dates in RFC 3339 UTC and uids as UID(n). Array
// elements are concatenated inside brackets without a separator, so
// [1 2] renders as "[12]". Dictionaries render as "{ k: v, k2: v2 }".
func (n *Node) Display() (string, error) {
	var b strings.Builder
	if err := n.display(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (n *Node) display(b *strings.Builder) error {
	switch n.kind {
	case BoolKind:
		v, err := n.BoolVal()
		if err != nil {
			return err
		}
		b.WriteString(strconv.FormatBool(v))
	case IntegerKind:
		signed, err := n.IsSigned()
		if err != nil {
			return err
		}
		if signed {
			v, err := n.IntVal()
			if err != nil {
				return err
			}
			b.WriteString(strconv.FormatInt(v, 10))
			break
		}
		v, err := n.UintVal()
		if err != nil {
			return err
		}
		b.WriteString(strconv.FormatUint(v, 10))
	case RealKind:
		v, err := n.RealVal()
		if err != nil {
			return err
		}
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	case DataKind:
		v, err := n.DataVal()
		if err != nil {
			return err
		}
		b.WriteByte('[')
		for i, c := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Itoa(int(c)))
		}
		b.WriteByte(']')
	case DateKind:
		v, err := n.TimeVal()
		if err != nil {
			return err
		}
		b.WriteString(v.Format(time.RFC3339Nano))
	case StringKind:
		v, err := n.StringVal()
		if err != nil {
			return err
		}
		b.WriteString(v)
	case KeyKind:
		v, err := n.KeyVal()
		if err != nil {
			return err
		}
		b.WriteString(v)
	case UIDKind:
		v, err := n.UIDVal()
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "UID(%d)", v)
	case ArrayKind:
		if !n.Valid() {
			return fmt.Errorf("%w: array released", ErrInvalidArg)
		}
		b.WriteByte('[')
		for v := range n.Values() {
			if err := v.display(b); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case DictKind:
		if !n.Valid() {
			return fmt.Errorf("%w: dict released", ErrInvalidArg)
		}
		b.WriteString("{ ")
		first := true
		for k, v := range n.All() {
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(k)
			b.WriteString(": ")
			if err := v.display(b); err != nil {
				return err
			}
		}
		if !first {
			b.WriteByte(' ')
		}
		b.WriteByte('}')
	case UnknownKind:
		b.WriteString("Unknown")
	default:
		b.WriteString("None")
	}
	return nil
}
