package parse

import (
	"github.com/signadot/plist-format/go-plist/format"
	"github.com/signadot/plist-format/go-plist/plist"
)

type parseOpts struct {
	format  format.Format
	detect  bool
	heap    *plist.Heap
	dates   bool
	uidMaps bool
}

type ParseOption func(*parseOpts)

func ParseXML() ParseOption {
	return ParseFormat(format.XMLFormat)
}
func ParseBinary() ParseOption {
	return ParseFormat(format.BinaryFormat)
}
func ParseOpenStep() ParseOption {
	return ParseFormat(format.OpenStepFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) {
		o.format = f
		o.detect = false
	}
}

// ParseHeap allocates the result on h instead of plist.Default().
func ParseHeap(h *plist.Heap) ParseOption {
	return func(o *parseOpts) { o.heap = h }
}

// ParseDates turns JSON and YAML strings holding an RFC 3339 timestamp
// into dates.
func ParseDates(v bool) ParseOption {
	return func(o *parseOpts) { o.dates = v }
}

// ParseUIDMaps controls whether a JSON or YAML map whose only key is
// encode.UIDKey with a non-negative integer value becomes a uid. It is on
// by default.
func ParseUIDMaps(v bool) ParseOption {
	return func(o *parseOpts) { o.uidMaps = v }
}

// FormatFromOpts reports the format selected by opts and whether it is
// detected from the input instead.
func FormatFromOpts(opts ...ParseOption) (format.Format, bool) {
	pOpts := newOpts(opts)
	return pOpts.format, pOpts.detect
}

func newOpts(opts []ParseOption) *parseOpts {
	pOpts := &parseOpts{detect: true, uidMaps: true}
	for _, f := range opts {
		f(pOpts)
	}
	if pOpts.heap == nil {
		pOpts.heap = plist.Default()
	}
	return pOpts
}
