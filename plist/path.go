package plist

import (
	"fmt"
	"strconv"

	"github.com/signadot/plist-format/go-plist/kpath"
)

// NavigatePath walks segments from n. A segment is a key for a dictionary
// and a decimal index for an array. The result is a Borrowed handle; with
// no segments it aliases n.
//
// It fails with ErrInvalidArg at the first segment that does not apply to
// the node reached so far, and with ErrNotFound (which is also
// ErrInvalidArg) for a missing key or an index out of range.
func (n *Node) NavigatePath(segments ...string) (*Node, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("%w: node released", ErrInvalidArg)
	}
	cur := n.borrowed(n.ref)
	for i, seg := range segments {
		var (
			next *Node
			err  error
		)
		switch cur.kind {
		case DictKind:
			next, err = cur.DictItem(seg)
		case ArrayKind:
			idx, perr := strconv.ParseUint(seg, 10, 32)
			if perr != nil {
				return nil, fmt.Errorf("%w: segment %d: %q is not an array index", ErrInvalidArg, i, seg)
			}
			next, err = cur.ArrayItem(uint32(idx))
		default:
			return nil, fmt.Errorf("%w: segment %d: %q applied to %s node", ErrInvalidArg, i, seg, cur.kind)
		}
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		cur = next
	}
	return cur, nil
}

// GetKPath navigates a path such as `apps[0].name` (see package kpath).
// Wildcards are not allowed.
func (n *Node) GetKPath(path string) (*Node, error) {
	kp, err := kpath.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArg, err)
	}
	if kp.HasWildcard() {
		return nil, fmt.Errorf("%w: wildcard in %q", ErrInvalidArg, path)
	}
	return n.navigateKPath(kp)
}

func (n *Node) navigateKPath(kp *kpath.KPath) (*Node, error) {
	cur := n
	for x := kp; x != nil; x = x.Next {
		var (
			next *Node
			err  error
		)
		switch {
		case x.Field != nil:
			if cur.kind != DictKind {
				return nil, fmt.Errorf("%w: key %q applied to %s node", ErrInvalidArg, *x.Field, cur.kind)
			}
			next, err = cur.DictItem(*x.Field)
		case x.Index != nil:
			if cur.kind != ArrayKind {
				return nil, fmt.Errorf("%w: index %d applied to %s node", ErrInvalidArg, *x.Index, cur.kind)
			}
			next, err = cur.ArrayItem(uint32(*x.Index))
		}
		if err != nil {
			return nil, err
		}
		cur = next
	}
	if cur == n {
		return n.borrowed(n.ref), nil
	}
	return cur, nil
}

// Walk calls fn for n and every node below it in depth first order, with
// the path from n. Returning an error from fn stops the walk.
func (n *Node) Walk(fn func(path *kpath.KPath, node *Node) error) error {
	return n.walk(nil, fn)
}

func (n *Node) walk(path *kpath.KPath, fn func(*kpath.KPath, *Node) error) error {
	if err := fn(path, n); err != nil {
		return err
	}
	switch n.kind {
	case ArrayKind:
		i := 0
		for v := range n.Values() {
			if err := v.walk(path.Append(kpath.Index(i)), fn); err != nil {
				return err
			}
			i++
		}
	case DictKind:
		for k, v := range n.All() {
			if err := v.walk(path.Append(kpath.Field(k)), fn); err != nil {
				return err
			}
		}
	}
	return nil
}
