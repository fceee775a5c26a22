package encode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/signadot/plist-format/go-plist/plist"

	j "github.com/goccy/go-json"
)

// UIDKey is the single key of the map a uid is written as in JSON and
// YAML, matching the XML keyed-archiver spelling.
const UIDKey = "CF$UID"

type jsonField struct {
	key string
	val any
}

// jsonObject keeps dictionary entries in order.
type jsonObject []jsonField

func (o jsonObject) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := j.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := j.Marshal(f.val)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeJSON(node *plist.Node, es *EncState) ([]byte, error) {
	v, err := jsonValue(node, es)
	if err != nil {
		return nil, err
	}
	if es.indent <= 0 {
		return j.Marshal(v)
	}
	return j.MarshalIndent(v, "", strings.Repeat(" ", es.indent))
}

func jsonValue(node *plist.Node, es *EncState) (any, error) {
	switch node.Kind() {
	case plist.ArrayKind:
		ents, err := entries(node, es)
		if err != nil {
			return nil, err
		}
		res := make([]any, 0, len(ents))
		for _, e := range ents {
			v, err := jsonValue(e.node, es)
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
		res := make(jsonObject, 0, len(ents))
		for _, e := range ents {
			v, err := jsonValue(e.node, es)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", e.key, err)
			}
			res = append(res, jsonField{key: e.key, val: v})
		}
		return res, nil
	case plist.RealKind:
		v, err := node.RealVal()
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %v has no JSON representation", ErrEncoding, v)
		}
		return v, nil
	case plist.DateKind:
		v, err := node.TimeVal()
		if err != nil {
			return nil, err
		}
		return v.Format(time.RFC3339Nano), nil
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
		return jsonObject{{key: UIDKey, val: v}}, nil
	}
	return scalarValue(node)
}

// scalarValue returns the Go value of a kind that JSON and YAML share.
func scalarValue(node *plist.Node) (any, error) {
	switch node.Kind() {
	case plist.BoolKind:
		return node.BoolVal()
	case plist.IntegerKind:
		signed, err := node.IsSigned()
		if err != nil {
			return nil, err
		}
		if signed {
			return node.IntVal()
		}
		return node.UintVal()
	case plist.RealKind:
		return node.RealVal()
	case plist.StringKind:
		return node.StringVal()
	case plist.KeyKind:
		return node.KeyVal()
	}
	return nil, fmt.Errorf("%w: cannot encode %s", ErrEncoding, node.Kind())
}
