package libdiff

import (
	"fmt"

	"github.com/signadot/plist-format/go-plist/kpath"
	"github.com/signadot/plist-format/go-plist/plist"
)

// DiffFunc compares two nodes found at path.
type DiffFunc func(path *kpath.KPath, from, to *plist.Node) ([]Change, error)

// Diff returns the changes turning from into to, depth first. Dictionary
// order is ignored. Paths of Delete changes inside arrays index the old
// array, all other paths index the new one.
func Diff(from, to *plist.Node) ([]Change, error) {
	if from == nil || to == nil {
		return nil, fmt.Errorf("%w: nil node", plist.ErrInvalidArg)
	}
	return diffNode(nil, from, to)
}

func diffNode(path *kpath.KPath, from, to *plist.Node) ([]Change, error) {
	if from.Kind() != to.Kind() {
		return single(path, Replace, from, to)
	}
	switch from.Kind() {
	case plist.DictKind:
		return DiffDict(path, from, to, diffNode)
	case plist.ArrayKind:
		return DiffArrayByIndex(path, from, to, diffNode)
	case plist.StringKind:
		return DiffString(path, from, to)
	}
	if plist.Equal(from, to) {
		return nil, nil
	}
	return single(path, Replace, from, to)
}

// DiffDict compares entries present in both dictionaries with df and
// reports the rest as deletions, in from order, then insertions, in to
// order.
func DiffDict(path *kpath.KPath, from, to *plist.Node, df DiffFunc) ([]Change, error) {
	fromKeys, err := from.DictKeys()
	if err != nil {
		return nil, err
	}
	toKeys, err := to.DictKeys()
	if err != nil {
		return nil, err
	}
	var res []Change
	for _, k := range fromKeys {
		f, err := from.DictItem(k)
		if err != nil {
			return nil, err
		}
		kp := path.Append(kpath.Field(k))
		t, err := to.DictItem(k)
		if err != nil {
			cs, err := single(kp, Delete, f, nil)
			if err != nil {
				return nil, err
			}
			res = append(res, cs...)
			continue
		}
		cs, err := df(kp, f, t)
		if err != nil {
			return nil, err
		}
		res = append(res, cs...)
	}
	for _, k := range toKeys {
		if _, err := from.DictItem(k); err == nil {
			continue
		}
		t, err := to.DictItem(k)
		if err != nil {
			return nil, err
		}
		cs, err := single(path.Append(kpath.Field(k)), Insert, nil, t)
		if err != nil {
			return nil, err
		}
		res = append(res, cs...)
	}
	return res, nil
}
