package gomap

import (
	"github.com/signadot/plist-format/go-plist/encode"
	"github.com/signadot/plist-format/go-plist/parse"
	"github.com/signadot/plist-format/go-plist/plist"

	j "github.com/goccy/go-json"
)

// PlistToer is implemented by values that encode themselves.
type PlistToer interface {
	ToPlist(*plist.Heap) (*plist.Node, error)
}

// ToNode builds a tree on h from v. time.Time values become dates;
// []byte values become base64 strings. A nil h means plist.Default().
func ToNode(h *plist.Heap, v any) (*plist.Node, error) {
	if h == nil {
		h = plist.Default()
	}
	if x, ok := v.(PlistToer); ok {
		return x.ToPlist(h)
	}
	d, err := j.Marshal(v)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d, parse.ParseJSON(), parse.ParseHeap(h), parse.ParseDates(true))
}

// Dump encodes v, XML unless opts select another format.
func Dump(v any, opts ...encode.EncodeOption) ([]byte, error) {
	h := plist.NewHeap()
	node, err := ToNode(h, v)
	if err != nil {
		return nil, err
	}
	defer node.Free()
	return encode.Bytes(node, opts...)
}
