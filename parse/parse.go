package parse

import (
	"bytes"
	"fmt"

	"github.com/signadot/plist-format/go-plist/format"
	"github.com/signadot/plist-format/go-plist/native"
	"github.com/signadot/plist-format/go-plist/plist"

	j "github.com/goccy/go-json"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Parse decodes d into a new owning tree. Without a format option the
// format is chosen by Detect.
func Parse(d []byte, opts ...ParseOption) (*plist.Node, error) {
	pOpts := newOpts(opts)
	if !pOpts.detect {
		return parseAs(d, pOpts.format, pOpts)
	}
	f := Detect(d)
	res, err := parseAs(d, f, pOpts)
	if err != nil && f == format.OpenStepFormat {
		// YAML flow sequences and bare scalars land here too.
		if yres, yerr := parseAs(d, format.YAMLFormat, pOpts); yerr == nil {
			return yres, nil
		}
	}
	return res, err
}

func ParseString(s string, opts ...ParseOption) (*plist.Node, error) {
	return Parse([]byte(s), opts...)
}

func parseAs(d []byte, f format.Format, pOpts *parseOpts) (*plist.Node, error) {
	h := pOpts.heap
	switch f {
	case format.XMLFormat:
		return h.FromXML(string(d))
	case format.BinaryFormat:
		return h.FromBinary(d)
	case format.OpenStepFormat:
		return h.FromMemory(d)
	case format.JSONFormat:
		return parseJSON(d, pOpts)
	case format.YAMLFormat:
		return parseYAML(d, pOpts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnparseable, f)
}

// Detect guesses the format of d. Binary and XML are recognised by their
// leading bytes, JSON by validity. Input starting with '{' or '(' is
// taken as OpenStep and anything else as YAML.
func Detect(d []byte) format.Format {
	if native.IsBinary(d) {
		return format.BinaryFormat
	}
	t := bytes.TrimSpace(bytes.TrimPrefix(d, utf8BOM))
	if len(t) == 0 || t[0] == '<' {
		return format.XMLFormat
	}
	if j.Valid(t) {
		return format.JSONFormat
	}
	switch t[0] {
	case '{', '(':
		return format.OpenStepFormat
	}
	return format.YAMLFormat
}
