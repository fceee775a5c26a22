package encode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/signadot/plist-format/go-plist/format"
	"github.com/signadot/plist-format/go-plist/plist"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	indent   int
	sortKeys bool
	format   format.Format

	Color func(plist.Kind, ColorAttr, string) string
}

// Encode writes node to w in the format selected by the options, XML by
// default. Text formats end with a newline.
func Encode(node *plist.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrEncoding)
	}
	var (
		d   []byte
		err error
	)
	switch es.format {
	case format.XMLFormat:
		var s string
		s, err = node.ToXML()
		d = []byte(s)
	case format.BinaryFormat:
		d, err = node.ToBinary()
	case format.OpenStepFormat:
		var s string
		s, err = node.ToOpenStep()
		d = []byte(s)
	case format.JSONFormat:
		d, err = encodeJSON(node, es)
	case format.YAMLFormat:
		d, err = encodeYAML(node, es)
	case format.PrettyFormat:
		return encodePretty(node, w, es)
	default:
		return fmt.Errorf("%w: %s", ErrEncoding, es.format)
	}
	if err != nil {
		return err
	}
	if es.format.IsText() && !bytes.HasSuffix(d, []byte("\n")) {
		d = append(d, '\n')
	}
	_, err = w.Write(d)
	return err
}

// Bytes returns the encoding of node.
func Bytes(node *plist.Node, opts ...EncodeOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type entry struct {
	key  string
	node *plist.Node
}

// entries returns the children of a container, dictionary entries sorted
// by key when es.sortKeys is set.
func entries(node *plist.Node, es *EncState) ([]entry, error) {
	if !node.Valid() {
		return nil, fmt.Errorf("%w: %s node released", plist.ErrInvalidArg, node.Kind())
	}
	var res []entry
	for k, v := range node.All() {
		res = append(res, entry{key: k, node: v})
	}
	if es.sortKeys && node.Kind() == plist.DictKind {
		slices.SortFunc(res, func(a, b entry) int {
			switch {
			case a.key < b.key:
				return -1
			case a.key > b.key:
				return 1
			}
			return 0
		})
	}
	return res, nil
}
