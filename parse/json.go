package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/signadot/plist-format/go-plist/encode"
	"github.com/signadot/plist-format/go-plist/plist"

	j "github.com/goccy/go-json"
)

const maxDepth = 10000

type jsonParser struct {
	dec   *j.Decoder
	opts  *parseOpts
	depth int
}

func parseJSON(d []byte, opts *parseOpts) (*plist.Node, error) {
	dec := j.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	p := &jsonParser{dec: dec, opts: opts}
	res, err := p.value()
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		res.Free()
		if err == nil {
			err = errTrailing
		}
		return nil, parseErr(err)
	}
	return res, nil
}

func (p *jsonParser) value() (*plist.Node, error) {
	tok, err := p.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, parseErr(err)
	}
	h := p.opts.heap
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return p.object()
		case '[':
			return p.array()
		}
		return nil, parseErr(fmt.Errorf("unexpected %q", rune(v)))
	case string:
		return stringNode(h, v, p.opts)
	case bool:
		return h.NewBool(v), nil
	case j.Number:
		return numberNode(h, string(v))
	case float64:
		return h.NewReal(v), nil
	case nil:
		return nil, ErrNull
	}
	return nil, parseErr(fmt.Errorf("unexpected token %v", tok))
}

func (p *jsonParser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return parseErr(fmt.Errorf("nesting exceeds %d", maxDepth))
	}
	return nil
}

func (p *jsonParser) array() (*plist.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()
	a := p.opts.heap.NewArray()
	for p.dec.More() {
		v, err := p.value()
		if err != nil {
			a.Free()
			return nil, err
		}
		if err := a.ArrayAppendItem(v); err != nil {
			v.Free()
			a.Free()
			return nil, err
		}
	}
	if err := p.close(']'); err != nil {
		a.Free()
		return nil, err
	}
	return a, nil
}

func (p *jsonParser) object() (*plist.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()
	d := p.opts.heap.NewDict()
	for p.dec.More() {
		tok, err := p.dec.Token()
		if err != nil {
			d.Free()
			return nil, parseErr(err)
		}
		k, ok := tok.(string)
		if !ok {
			d.Free()
			return nil, parseErr(fmt.Errorf("object key %v", tok))
		}
		v, err := p.value()
		if err != nil {
			d.Free()
			return nil, fmt.Errorf("%q: %w", k, err)
		}
		if err := d.DictSetItem(k, v); err != nil {
			v.Free()
			d.Free()
			return nil, err
		}
	}
	if err := p.close('}'); err != nil {
		d.Free()
		return nil, err
	}
	return uidFromDict(d, p.opts)
}

func (p *jsonParser) close(want j.Delim) error {
	tok, err := p.dec.Token()
	if err != nil {
		return parseErr(err)
	}
	if tok != want {
		return parseErr(fmt.Errorf("expected %q, got %v", rune(want), tok))
	}
	return nil
}

func stringNode(h *plist.Heap, s string, opts *parseOpts) (*plist.Node, error) {
	if opts.dates {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return h.NewDateTime(t), nil
		}
	}
	return h.NewString(s)
}

// numberNode makes a non-negative integer unsigned, a negative one
// signed, and anything else, including integers beyond 64 bits, real.
func numberNode(h *plist.Heap, s string) (*plist.Node, error) {
	if !strings.ContainsAny(s, ".eE") {
		if strings.HasPrefix(s, "-") {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil {
				return h.NewInt(v), nil
			}
		} else if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			return h.NewUint(v), nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, parseErr(err)
	}
	return h.NewReal(v), nil
}

// uidFromDict replaces a dictionary holding only encode.UIDKey mapped to
// an unsigned integer with a uid.
func uidFromDict(d *plist.Node, opts *parseOpts) (*plist.Node, error) {
	if !opts.uidMaps {
		return d, nil
	}
	keys, err := d.DictKeys()
	if err != nil || len(keys) != 1 || keys[0] != encode.UIDKey {
		return d, err
	}
	item, err := d.DictItem(encode.UIDKey)
	if err != nil {
		return d, err
	}
	if item.Kind() != plist.IntegerKind {
		return d, nil
	}
	if signed, err := item.IsSigned(); err != nil || signed {
		return d, err
	}
	v, err := item.UintVal()
	if err != nil {
		return d, err
	}
	d.Free()
	return opts.heap.NewUID(v), nil
}
