// Package gomap maps property lists to and from Go values through their
// JSON view, so encoding/json style struct tags apply.
package gomap

import (
	"github.com/signadot/plist-format/go-plist/encode"
	"github.com/signadot/plist-format/go-plist/format"
	"github.com/signadot/plist-format/go-plist/parse"
	"github.com/signadot/plist-format/go-plist/plist"

	j "github.com/goccy/go-json"
)

type fromOpts struct {
	format *format.Format
	heap   *plist.Heap
}

func (do *fromOpts) parseOpts() []parse.ParseOption {
	res := []parse.ParseOption{parse.ParseHeap(do.heap)}
	if do.format != nil {
		res = append(res, parse.ParseFormat(*do.format))
	}
	return res
}

type FromOption func(*fromOpts)

func LoadFormat(f format.Format) FromOption { return func(o *fromOpts) { o.format = &f } }
func LoadHeap(h *plist.Heap) FromOption     { return func(o *fromOpts) { o.heap = h } }

// PlistFromer is implemented by values that decode themselves.
type PlistFromer interface {
	FromPlist(*plist.Node) error
}

// Load parses d and stores the result in the value pointed to by p.
func Load(d []byte, p any, opts ...FromOption) error {
	do := &fromOpts{heap: plist.Default()}
	for _, f := range opts {
		f(do)
	}
	node, err := parse.Parse(d, do.parseOpts()...)
	if err != nil {
		return err
	}
	defer node.Free()
	return FromNode(node, p)
}

// FromNode stores node in the value pointed to by p. Data arrives as
// base64 text, which decodes into []byte fields, and dates as RFC 3339
// text, which decodes into time.Time fields.
func FromNode(node *plist.Node, p any) error {
	if x, ok := p.(PlistFromer); ok {
		return x.FromPlist(node)
	}
	d, err := encode.Bytes(node, encode.EncodeFormat(format.JSONFormat), encode.Indent(0))
	if err != nil {
		return err
	}
	return j.Unmarshal(d, p)
}
