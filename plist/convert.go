package plist

import (
	"fmt"
	"strings"

	"github.com/signadot/plist-format/go-plist/native"
)

// FromXML parses an XML property list. Text containing a NUL byte is
// rejected with ErrInvalidArg.
func (h *Heap) FromXML(text string) (*Node, error) {
	if strings.IndexByte(text, 0) >= 0 {
		h.log.Warn("plist: xml input contains NUL")
		return nil, fmt.Errorf("%w: xml contains NUL", ErrInvalidArg)
	}
	r, st := h.store.FromXML([]byte(text))
	if err := statusErr("from xml", st); err != nil {
		return nil, err
	}
	return h.owned(r, "from xml"), nil
}

// FromBinary parses a binary property list.
func (h *Heap) FromBinary(d []byte) (*Node, error) {
	r, st := h.store.FromBin(d)
	if err := statusErr("from binary", st); err != nil {
		return nil, err
	}
	return h.owned(r, "from binary"), nil
}

// FromMemory parses a property list in XML, binary or OpenStep format.
func (h *Heap) FromMemory(d []byte) (*Node, error) {
	r, st := h.store.FromMemory(d)
	if err := statusErr("from memory", st); err != nil {
		return nil, err
	}
	return h.owned(r, "from memory"), nil
}

// ToXML encodes the subtree rooted at n as an XML property list.
func (n *Node) ToXML() (string, error) {
	d, st := n.heap.store.ToXML(n.ref)
	if err := statusErr("to xml", st); err != nil {
		return "", err
	}
	return string(d), nil
}

// ToBinary encodes the subtree rooted at n as a binary property list.
func (n *Node) ToBinary() ([]byte, error) {
	d, st := n.heap.store.ToBin(n.ref)
	if err := statusErr("to binary", st); err != nil {
		return nil, err
	}
	return d, nil
}

// ToOpenStep encodes the subtree rooted at n as OpenStep text.
func (n *Node) ToOpenStep() (string, error) {
	d, st := n.heap.store.ToOpenStep(n.ref)
	if err := statusErr("to openstep", st); err != nil {
		return "", err
	}
	return string(d), nil
}

// String returns the XML encoding of n.
func (n *Node) String() string {
	s, err := n.ToXML()
	if err != nil {
		return fmt.Sprintf("<%s node %d: %v>", n.kind, n.id, err)
	}
	return s
}

// IsBinaryBlob reports whether n is a Data node whose bytes are themselves
// a binary property list.
func (n *Node) IsBinaryBlob() bool {
	if n.kind != DataKind {
		return false
	}
	d, st := n.heap.store.GetData(n.ref)
	if st != native.Success {
		return false
	}
	return native.IsBinary(d)
}
