package encode

import (
	"fmt"

	"github.com/signadot/plist-format/go-plist/plist"
)

// Value converts node to plain Go values: map[string]any, []any, bool,
// int64, uint64, float64, string, []byte, time.Time, and uint64 for uids.
// Dictionary order is lost.
func Value(node *plist.Node) (any, error) {
	switch node.Kind() {
	case plist.ArrayKind:
		if !node.Valid() {
			return nil, fmt.Errorf("%w: array released", plist.ErrInvalidArg)
		}
		res := []any{}
		for v := range node.Values() {
			x, err := Value(v)
			if err != nil {
				return nil, err
			}
			res = append(res, x)
		}
		return res, nil
	case plist.DictKind:
		if !node.Valid() {
			return nil, fmt.Errorf("%w: dict released", plist.ErrInvalidArg)
		}
		res := map[string]any{}
		for k, v := range node.All() {
			x, err := Value(v)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", k, err)
			}
			res[k] = x
		}
		return res, nil
	case plist.DateKind:
		return node.TimeVal()
	case plist.DataKind:
		return node.DataVal()
	case plist.UIDKind:
		return node.UIDVal()
	}
	return scalarValue(node)
}
