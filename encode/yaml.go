package encode

import (
	"encoding/base64"
	"fmt"

	"github.com/signadot/plist-format/go-plist/plist"

	"github.com/goccy/go-yaml"
)

func encodeYAML(node *plist.Node, es *EncState) ([]byte, error) {
	v, err := yamlValue(node, es)
	if err != nil {
		return nil, err
	}
	indent := es.indent
	if indent <= 0 {
		indent = 2
	}
	d, err := yaml.MarshalWithOptions(v, yaml.Indent(indent))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return d, nil
}

func yamlValue(node *plist.Node, es *EncState) (any, error) {
	switch node.Kind() {
	case plist.ArrayKind:
		ents, err := entries(node, es)
		if err != nil {
			return nil, err
		}
		res := make([]any, 0, len(ents))
		for _, e := range ents {
			v, err := yamlValue(e.node, es)
			if err != nil {
				return nil, err
			}
			res = append(res, v)
		}
		return res, nil
	case plist.DictKind:
		ents, err := entries(node, es)
		if err != nil {
			return nil, err
		}
		res := make(yaml.MapSlice, 0, len(ents))
		for _, e := range ents {
			v, err := yamlValue(e.node, es)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", e.key, err)
			}
			res = append(res, yaml.MapItem{Key: e.key, Value: v})
		}
		return res, nil
	case plist.DateKind:
		return node.TimeVal()
	case plist.DataKind:
		v, err := node.DataVal()
		if err != nil {
			return nil, err
		}
		return base64.StdEncoding.EncodeToString(v), nil
	case plist.UIDKind:
		v, err := node.UIDVal()
		if err != nil {
			return nil, err
		}
		return yaml.MapSlice{{Key: UIDKey, Value: v}}, nil
	}
	return scalarValue(node)
}
