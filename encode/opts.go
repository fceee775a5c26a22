package encode

import "github.com/signadot/plist-format/go-plist/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// Indent sets the indentation width of JSON, YAML and pretty output.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// SortKeys writes dictionary entries in key order instead of storage
// order. It does not apply to the wire formats, which always sort.
func SortKeys(v bool) EncodeOption {
	return func(es *EncState) { es.sortKeys = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
