package parse

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/signadot/plist-format/go-plist/plist"

	"github.com/goccy/go-yaml"
)

func parseYAML(d []byte, opts *parseOpts) (*plist.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, parseErr(err)
	}
	return yamlNode(v, opts)
}

func yamlNode(v any, opts *parseOpts) (*plist.Node, error) {
	h := opts.heap
	switch x := v.(type) {
	case nil:
		return nil, ErrNull
	case bool:
		return h.NewBool(x), nil
	case int:
		return intNode(h, int64(x)), nil
	case int64:
		return intNode(h, x), nil
	case uint64:
		return h.NewUint(x), nil
	case uint:
		return h.NewUint(uint64(x)), nil
	case float64:
		return h.NewReal(x), nil
	case float32:
		return h.NewReal(float64(x)), nil
	case string:
		return stringNode(h, x, opts)
	case []byte:
		return h.NewData(x), nil
	case time.Time:
		return h.NewDateTime(x), nil
	case []any:
		a := h.NewArray()
		for i, e := range x {
			n, err := yamlNode(e, opts)
			if err != nil {
				a.Free()
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			if err := a.ArrayAppendItem(n); err != nil {
				n.Free()
				a.Free()
				return nil, err
			}
		}
		return a, nil
	case yaml.MapSlice:
		d := h.NewDict()
		for _, item := range x {
			if err := yamlSet(d, fmt.Sprint(item.Key), item.Value, opts); err != nil {
				d.Free()
				return nil, err
			}
		}
		return uidFromDict(d, opts)
	case map[string]any:
		d := h.NewDict()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			if err := yamlSet(d, k, x[k], opts); err != nil {
				d.Free()
				return nil, err
			}
		}
		return uidFromDict(d, opts)
	}
	return nil, fmt.Errorf("%w: unsupported yaml value %T", plist.ErrFormat, v)
}

func yamlSet(d *plist.Node, k string, v any, opts *parseOpts) error {
	n, err := yamlNode(v, opts)
	if err != nil {
		return fmt.Errorf("%q: %w", k, err)
	}
	if err := d.DictSetItem(k, n); err != nil {
		n.Free()
		return err
	}
	return nil
}

func intNode(h *plist.Heap, v int64) *plist.Node {
	if v < 0 {
		return h.NewInt(v)
	}
	return h.NewUint(uint64(v))
}
