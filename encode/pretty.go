package encode

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/plist-format/go-plist/plist"
)

const prettyDate = "2006-01-02 15:04:05 -0700"

type prettyPrinter struct {
	es  *EncState
	buf strings.Builder
}

func encodePretty(node *plist.Node, w io.Writer, es *EncState) error {
	p := &prettyPrinter{es: es}
	if err := p.value(node, 0); err != nil {
		return err
	}
	p.buf.WriteByte('\n')
	_, err := io.WriteString(w, p.buf.String())
	return err
}

func (p *prettyPrinter) color(k plist.Kind, a ColorAttr, s string) string {
	if p.es.Color == nil {
		return s
	}
	return p.es.Color(k, a, s)
}

func (p *prettyPrinter) pad(depth int) {
	p.buf.WriteString(strings.Repeat(" ", depth*p.es.indent))
}

func (p *prettyPrinter) value(node *plist.Node, depth int) error {
	k := node.Kind()
	if k.IsContainer() {
		return p.container(node, depth)
	}
	s, err := prettyScalar(node)
	if err != nil {
		return err
	}
	p.buf.WriteString(p.color(k, ValueColor, s))
	return nil
}

func (p *prettyPrinter) container(node *plist.Node, depth int) error {
	k := node.Kind()
	open, close := "[", "]"
	if k == plist.DictKind {
		open, close = "{", "}"
	}
	ents, err := entries(node, p.es)
	if err != nil {
		return err
	}
	p.buf.WriteString(p.color(k, SepColor, open))
	if len(ents) == 0 {
		p.buf.WriteString(p.color(k, SepColor, close))
		return nil
	}
	p.buf.WriteByte('\n')
	for i, e := range ents {
		p.pad(depth + 1)
		if k == plist.DictKind {
			p.buf.WriteString(p.color(k, KeyColor, strconv.Quote(e.key)))
		} else {
			p.buf.WriteString(p.color(k, IndexColor, strconv.Itoa(i)))
		}
		p.buf.WriteString(p.color(k, SepColor, " => "))
		if err := p.value(e.node, depth+1); err != nil {
			if k == plist.DictKind {
				return fmt.Errorf("%q: %w", e.key, err)
			}
			return fmt.Errorf("[%d]: %w", i, err)
		}
		p.buf.WriteByte('\n')
	}
	p.pad(depth)
	p.buf.WriteString(p.color(k, SepColor, close))
	return nil
}

func prettyScalar(node *plist.Node) (string, error) {
	switch node.Kind() {
	case plist.StringKind, plist.KeyKind:
		v, err := scalarValue(node)
		if err != nil {
			return "", err
		}
		return strconv.Quote(v.(string)), nil
	case plist.RealKind:
		v, err := node.RealVal()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case plist.DataKind:
		v, err := node.DataVal()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("{length = %d, bytes = 0x%s}", len(v), hex.EncodeToString(v)), nil
	case plist.DateKind:
		v, err := node.TimeVal()
		if err != nil {
			return "", err
		}
		return v.Format(prettyDate), nil
	case plist.UIDKind:
		v, err := node.UIDVal()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("UID(%d)", v), nil
	}
	v, err := scalarValue(node)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}
